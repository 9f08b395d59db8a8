package highlight

import (
	"cmp"
	"regexp"
	"slices"

	"github.com/dshills/textlayout/internal/engine/style"
)

// Rule tags every match of Pattern with Token.
type Rule struct {
	Pattern *regexp.Regexp
	Token   style.Token
}

// Tokens used by GoRules.
const (
	Comment  = "comment"
	String   = "string"
	Keyword  = "keyword"
	Type     = "type"
	Number   = "number"
	Builtin  = "builtin"
	Constant = "constant"
)

// GoRules returns a small rule set for Go source.
func GoRules() []Rule {
	return []Rule{
		{Pattern: regexp.MustCompile(`//.*`), Token: Comment},
		{Pattern: regexp.MustCompile(`"(?:[^"\\\n]|\\.)*"|` + "`[^`]*`"), Token: String},
		{Pattern: regexp.MustCompile(`\b(var|const|if|else|range|for|switch|fallthrough|case|default|break|continue|go|func|return|defer|import|type|package|struct|interface|map|chan|select|goto)\b`), Token: Keyword},
		{Pattern: regexp.MustCompile(`\b(u?int(8|16|32|64)?|float(32|64)|rune|byte|string|bool|error|any)\b`), Token: Type},
		{Pattern: regexp.MustCompile(`\b([1-9][0-9]*|0[0-7]*|0[Xx][0-9A-Fa-f]+|0[Bb][01]+)\b`), Token: Number},
		{Pattern: regexp.MustCompile(`\b(len|cap|panic|make|copy|append|new|delete|min|max)\b`), Token: Builtin},
		{Pattern: regexp.MustCompile(`\b(nil|true|false|iota)\b`), Token: Constant},
	}
}

type match struct {
	begin, end int
	rule       int
}

// Scan replaces the spans in s with the matches of rules in text. Where
// matches overlap the leftmost wins, and between matches starting at the
// same offset the earlier rule wins.
func (s *Spans) Scan(text []byte, rules []Rule) error {
	var matches []match
	for i, r := range rules {
		if r.Pattern == nil {
			continue
		}
		for _, loc := range r.Pattern.FindAllIndex(text, -1) {
			if loc[1] > loc[0] {
				matches = append(matches, match{begin: loc[0], end: loc[1], rule: i})
			}
		}
	}
	slices.SortFunc(matches, func(a, b match) int {
		if c := cmp.Compare(a.begin, b.begin); c != 0 {
			return c
		}
		return cmp.Compare(a.rule, b.rule)
	})

	s.Clear()
	last := 0
	for _, m := range matches {
		if m.begin < last {
			continue
		}
		if err := s.Add(m.begin, m.end, rules[m.rule].Token); err != nil {
			return err
		}
		last = m.end
	}
	return nil
}

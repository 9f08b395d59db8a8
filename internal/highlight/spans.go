// Package highlight stores foreground style spans for the engine's segment
// iterator and produces them from pattern rules.
//
// Spans are half-open byte ranges [Begin, End) tagged with a style token.
// They never overlap and are kept in an interval search tree, so
// NextHighlight answers in logarithmic time regardless of how many spans
// the text carries.
package highlight

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/rdleal/intervalst/interval"

	"github.com/dshills/textlayout/internal/engine/style"
)

// ErrInvalidSpan is returned when a span is empty or starts before zero.
var ErrInvalidSpan = errors.New("invalid span")

// ErrOverlap is returned when a span overlaps one already in the set.
var ErrOverlap = errors.New("span overlaps an existing span")

// Span is one highlighted range.
type Span struct {
	Begin, End int
	Token      style.Token
}

// Spans is a set of non-overlapping highlight spans. It is not safe for
// concurrent use.
type Spans struct {
	tree   *interval.SearchTree[Span, int]
	byKey  map[[2]int]Span
	maxEnd int
}

// New creates an empty span set.
func New() *Spans {
	s := &Spans{}
	s.Clear()
	return s
}

// Add inserts the span [begin, end). A span with the same range is
// replaced; a span overlapping any other returns ErrOverlap.
func (s *Spans) Add(begin, end int, tok style.Token) error {
	if begin < 0 || end <= begin {
		return ErrInvalidSpan
	}
	sp := Span{Begin: begin, End: end, Token: tok}
	key := [2]int{begin, end}
	// The tree holds closed intervals, so [begin, end) is stored as
	// [begin, end-1].
	if _, ok := s.byKey[key]; ok {
		if err := s.tree.Delete(begin, end-1); err != nil {
			return err
		}
	} else if old, ok := s.tree.AnyIntersection(begin, end-1); ok {
		return fmt.Errorf("add [%d, %d): %w [%d, %d)", begin, end, ErrOverlap, old.Begin, old.End)
	}
	if err := s.tree.Insert(begin, end-1, sp); err != nil {
		return err
	}
	s.byKey[key] = sp
	s.maxEnd = max(s.maxEnd, end)
	return nil
}

// Remove deletes the span [begin, end). It returns false if there is none.
func (s *Spans) Remove(begin, end int) bool {
	key := [2]int{begin, end}
	if _, ok := s.byKey[key]; !ok {
		return false
	}
	if err := s.tree.Delete(begin, end-1); err != nil {
		return false
	}
	delete(s.byKey, key)
	if end == s.maxEnd {
		// Spans do not overlap, so the last span ends last.
		s.maxEnd = 0
		if last, ok := s.tree.Max(); ok {
			s.maxEnd = last.End
		}
	}
	return true
}

// Clear removes every span.
func (s *Spans) Clear() {
	s.tree = interval.NewSearchTreeWithOptions[Span, int](cmp.Compare[int], interval.TreeWithIntervalPoint())
	s.byKey = make(map[[2]int]Span)
	s.maxEnd = 0
}

// Len returns the number of spans.
func (s *Spans) Len() int {
	return len(s.byKey)
}

// All returns the spans ordered by begin, then end.
func (s *Spans) All() []Span {
	out := make([]Span, 0, len(s.byKey))
	for _, sp := range s.byKey {
		out = append(out, sp)
	}
	slices.SortFunc(out, compareSpans)
	return out
}

// NextHighlight returns the span containing iChar or, failing that, the
// first span after it. It implements the segment iterator's Highlighter.
func (s *Spans) NextHighlight(iChar int) (begin, end int, tok style.Token, ok bool) {
	if len(s.byKey) == 0 || iChar >= s.maxEnd {
		return 0, 0, nil, false
	}
	iChar = max(iChar, 0)
	sp, ok := s.tree.AnyIntersection(iChar, iChar)
	if !ok {
		// Every span starting after iChar sorts at or above [iChar+1, iChar+1].
		sp, ok = s.tree.Ceil(iChar+1, iChar+1)
	}
	if !ok {
		return 0, 0, nil, false
	}
	return sp.Begin, sp.End, sp.Token, true
}

func compareSpans(a, b Span) int {
	if c := cmp.Compare(a.Begin, b.Begin); c != 0 {
		return c
	}
	return cmp.Compare(a.End, b.End)
}

// Package segment splits a line into uniformly styled runs.
//
// The Iterator walks a line [begin, end) and yields three kinds of segment:
// a measured text run, a run of tabs expanded to the next tab stops, and the
// end-of-line terminator. A run ends at whichever comes first of the end of
// the line, a tab/non-tab transition, a highlight span boundary or a change
// in selection membership. Painting, hit-testing, caret placement and word
// wrap all walk lines through this one primitive, so they agree on where
// every character sits.
package segment

import (
	"bytes"

	"github.com/dshills/textlayout/internal/engine/style"
)

// Kind identifies a segment type.
type Kind uint8

const (
	// Text is a run of non-tab characters sharing a style.
	Text Kind = iota
	// Tab is a run of tab characters.
	Tab
	// EOL is the end-of-line terminator. It has no characters.
	EOL
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Tab:
		return "tab"
	case EOL:
		return "eol"
	default:
		return "unknown"
	}
}

// Segment is one run of a line.
type Segment struct {
	Kind     Kind
	Begin    int
	End      int
	X        float32
	Width    float32
	Token    style.Token
	Selected bool
}

// Highlighter supplies foreground style spans.
//
// NextHighlight returns the first span that ends after iChar: either the
// span containing iChar or the next one starting after it. ok is false when
// no such span exists.
type Highlighter interface {
	NextHighlight(iChar int) (begin, end int, tok style.Token, ok bool)
}

// Selector reports selection membership.
type Selector interface {
	// Selected reports whether the character at char is selected.
	Selected(char int) bool
	// NextBoundary returns the first offset after char where membership
	// changes, or a value <= char if it never changes again.
	NextBoundary(char int) int
}

// Config is the shared input to iteration and measurement.
type Config struct {
	Text        []byte
	Measurer    style.Measurer
	Default     style.Style
	TabSize     int
	Highlighter Highlighter
	Selector    Selector
}

// TabWidth returns the width of one tab column.
func (c *Config) TabWidth() float32 {
	w := c.Default.Metrics.SpaceWidth
	if w <= 0 {
		w = 1
	}
	n := c.TabSize
	if n < 1 {
		n = 1
	}
	return w * float32(n)
}

type span struct {
	begin, end int
	tok        style.Token
}

// Iterator yields the segments of one line.
type Iterator struct {
	cfg  *Config
	pos  int
	end  int
	x    float32
	done bool

	hl      span
	hlValid bool
	hlDone  bool
}

// New creates an iterator over [from, lineEnd) starting at x.
func New(cfg *Config, from, lineEnd int, x float32) *Iterator {
	if lineEnd > len(cfg.Text) {
		lineEnd = len(cfg.Text)
	}
	if from > lineEnd {
		from = lineEnd
	}
	if from < 0 {
		from = 0
	}
	return &Iterator{cfg: cfg, pos: from, end: lineEnd, x: x}
}

// X returns the running x position.
func (it *Iterator) X() float32 {
	return it.x
}

// Next returns the next segment. The EOL segment is always the last one.
func (it *Iterator) Next() (Segment, bool) {
	if it.done {
		return Segment{}, false
	}
	cfg := it.cfg

	if it.pos >= it.end {
		it.done = true
		seg := Segment{
			Kind:  EOL,
			Begin: it.end,
			End:   it.end,
			X:     it.x,
			Token: cfg.Default.Token,
		}
		if cfg.Selector != nil {
			seg.Selected = cfg.Selector.Selected(it.end)
		}
		return seg, true
	}

	limit := it.end
	tab := cfg.Text[it.pos] == '\t'
	if tab {
		n := it.pos
		for n < limit && cfg.Text[n] == '\t' {
			n++
		}
		limit = n
	} else if i := bytes.IndexByte(cfg.Text[it.pos:limit], '\t'); i >= 0 {
		limit = it.pos + i
	}

	tok := cfg.Default.Token
	if s, ok := it.highlight(); ok {
		if s.begin <= it.pos {
			tok = s.tok
			limit = min(limit, s.end)
		} else {
			limit = min(limit, s.begin)
		}
	}

	var selected bool
	if cfg.Selector != nil {
		selected = cfg.Selector.Selected(it.pos)
		if b := cfg.Selector.NextBoundary(it.pos); b > it.pos {
			limit = min(limit, b)
		}
	}

	seg := Segment{
		Begin:    it.pos,
		End:      limit,
		X:        it.x,
		Token:    tok,
		Selected: selected,
	}
	if tab {
		seg.Kind = Tab
		x := it.x
		for i := it.pos; i < limit; i++ {
			x = NextTabStop(x, cfg.TabWidth())
		}
		seg.Width = x - it.x
	} else {
		seg.Kind = Text
		if cfg.Measurer != nil {
			seg.Width, _ = cfg.Measurer.MeasureString(tok, cfg.Text[it.pos:limit])
		}
	}

	it.pos = limit
	it.x += seg.Width
	return seg, true
}

// highlight returns the first span ending after the current position,
// fetching from the highlighter only when the cached span is used up.
func (it *Iterator) highlight() (span, bool) {
	if it.cfg.Highlighter == nil || it.hlDone {
		return span{}, false
	}
	if it.hlValid && it.hl.end > it.pos {
		return it.hl, true
	}
	begin, end, tok, ok := it.cfg.Highlighter.NextHighlight(it.pos)
	if !ok || end <= it.pos || begin >= it.end {
		it.hlDone = !ok
		it.hlValid = false
		if ok && begin >= it.end {
			it.hlDone = true
		}
		return span{}, false
	}
	it.hl = span{begin: begin, end: end, tok: tok}
	it.hlValid = true
	return it.hl, true
}

// Package wrap computes soft-wrapped display rows.
//
// A view's Layout is either Unwrapped, in which case its display rows are the
// raw lines of the document, or Wrapped, in which case it owns a separate
// line cache with one entry per display row. Reflow rebuilds that cache from
// scratch for a given view width.
package wrap

import (
	"github.com/dshills/textlayout/internal/engine/linecache"
	"github.com/dshills/textlayout/internal/engine/segment"
	"github.com/dshills/textlayout/internal/engine/textutil"
)

// Layout is the row layout of a view.
// The zero value is Unwrapped.
type Layout struct {
	rows *linecache.Cache
}

// Unwrapped returns a layout whose rows are the raw lines.
func Unwrapped() Layout {
	return Layout{}
}

// Wrapped returns a layout over a wrapped row cache.
func Wrapped(rows *linecache.Cache) Layout {
	if rows == nil {
		return Layout{}
	}
	return Layout{rows: rows}
}

// Enabled reports whether the layout is wrapped.
func (l Layout) Enabled() bool {
	return l.rows != nil
}

// Lines returns the row cache to use: the wrapped rows when enabled, raw
// otherwise.
func (l Layout) Lines(raw *linecache.Cache) *linecache.Cache {
	if l.rows != nil {
		return l.rows
	}
	return raw
}

// Reflow builds the wrapped row cache of text for a view width.
// Every raw line contributes at least one row. A width of zero or less
// disables breaking and the result mirrors raw.
func Reflow(cfg *segment.Config, raw *linecache.Cache, width float32) *linecache.Cache {
	rows := linecache.New()
	for i := 0; i < raw.Count(); i++ {
		begin := raw.FirstChar(i)
		if i > 0 {
			rows.Append(begin)
		}
		if width <= 0 {
			continue
		}
		end := raw.LastChar(cfg.Text, i)
		for _, p := range BreakLine(cfg, begin, end, width) {
			rows.Append(p)
		}
	}
	return rows
}

// BreakLine returns the start offsets of the continuation rows of the line
// [begin, end) wrapped at width. The first row always starts at begin and
// is not included.
func BreakLine(cfg *segment.Config, begin, end int, width float32) []int {
	var breaks []int
	start := begin
	for start < end {
		c, ok := overflowChar(cfg, start, end, width)
		if !ok {
			break
		}
		p, ok := breakPoint(cfg.Text, start, end, c)
		if !ok {
			break
		}
		breaks = append(breaks, p)
		start = p
	}
	return breaks
}

// overflowChar returns the first character of [start, end) that does not
// fit within width when the row starts at start.
func overflowChar(cfg *segment.Config, start, end int, width float32) (int, bool) {
	it := segment.New(cfg, start, end, 0)
	for {
		seg, ok := it.Next()
		if !ok || seg.Kind == segment.EOL {
			return 0, false
		}
		if seg.X+seg.Width <= width {
			continue
		}

		if seg.Kind == segment.Tab {
			x := seg.X
			for i := seg.Begin; i < seg.End; i++ {
				x = segment.NextTabStop(x, cfg.TabWidth())
				if x > width {
					return i, true
				}
			}
			return seg.End, true
		}

		return textOverflow(cfg, seg, width), true
	}
}

// textOverflow finds the overflowing character inside a text segment that
// crosses width. The host is asked for the boundary nearest the edge and the
// answer is refined so that every character before it fits.
func textOverflow(cfg *segment.Config, seg segment.Segment, width float32) int {
	text := cfg.Text[seg.Begin:seg.End]
	_, idx := cfg.Measurer.CursorPosFromPoint(seg.Token, text, seg.Width, width-seg.X)
	c := seg.Begin + idx
	if c > seg.End {
		c = seg.End
	}

	right := func(i int) float32 {
		return seg.X + cfg.Measurer.CursorPosFromChar(seg.Token, text, textutil.NextBoundary(cfg.Text, i)-seg.Begin)
	}
	for c > seg.Begin && right(textutil.PrevBoundary(cfg.Text, seg.Begin, c)) > width {
		c = textutil.PrevBoundary(cfg.Text, seg.Begin, c)
	}
	for c < seg.End && right(c) <= width {
		c = textutil.NextBoundary(cfg.Text, c)
	}
	if c >= seg.End {
		c = textutil.PrevBoundary(cfg.Text, seg.Begin, seg.End)
	}
	return c
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}

// breakPoint decides where the row starting at start breaks given the
// overflowing character c. ok is false when the rest of the line stays on
// this row.
func breakPoint(text []byte, start, end, c int) (int, bool) {
	if isBlank(text[c]) {
		p := c
		for p < end && isBlank(text[p]) {
			p++
		}
		if p >= end {
			return 0, false
		}
		return p, true
	}

	w := c
	for w > start && !isBlank(text[w-1]) {
		w--
	}
	if w > start {
		return w, true
	}

	if c > start {
		return c, true
	}
	p := textutil.NextBoundary(text, start)
	if p >= end {
		return 0, false
	}
	return p, true
}

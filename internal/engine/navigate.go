package engine

import (
	"github.com/dshills/textlayout/internal/engine/linecache"
	"github.com/dshills/textlayout/internal/engine/segment"
	"github.com/dshills/textlayout/internal/engine/textutil"
)

// navigator computes cursor motion over the rows of one view.
type navigator struct {
	e    *Engine
	v    *View
	rows *linecache.Cache
	cfg  *segment.Config
}

func (e *Engine) navigator(v *View) *navigator {
	return &navigator{e: e, v: v, rows: e.rowsOf(v), cfg: e.layoutConfig()}
}

// place returns an unpinned cursor at char with its sticky x reset.
func (n *navigator) place(char int) Cursor {
	r := n.rows.FindLine(char)
	return Cursor{CharAbs: char, Line: r, StickyX: n.e.xOf(n.cfg, n.rows, r, char)}
}

// pin returns a cursor at char displayed at the end of row r.
func (n *navigator) pin(r, char int) Cursor {
	return Cursor{CharAbs: char, Line: r, StickyX: n.e.xOf(n.cfg, n.rows, r, char), Pinned: true}
}

// pinOrPlace pins char to row r when char is the soft start of row r+1.
func (n *navigator) pinOrPlace(r, char int) Cursor {
	if n.rows.FirstChar(r+1) == char && n.e.softStart(n.rows, r+1) {
		return n.pin(r, char)
	}
	return n.place(char)
}

func (n *navigator) left(c Cursor) Cursor {
	if n.e.pinned(n.rows, c) {
		begin := n.rows.FirstChar(c.Line)
		return n.place(textutil.PrevBoundary(n.e.text, begin, c.CharAbs))
	}
	return n.place(n.e.prevBoundary(c.CharAbs))
}

// right steps one grapheme cluster. Stepping onto the start of a
// soft-wrapped row pins the cursor to the end of the row before; the next
// step unpins it without moving.
func (n *navigator) right(c Cursor) Cursor {
	if n.e.pinned(n.rows, c) {
		return n.place(c.CharAbs)
	}
	next := textutil.NextBoundary(n.e.text, c.CharAbs)
	if next == c.CharAbs {
		return n.place(next)
	}
	return n.pinOrPlace(n.rows.FindLine(next)-1, next)
}

// vertical moves by delta rows keeping the sticky x. Moving past the first
// row goes to the start of the text and past the last row to the end,
// unless clamp is set and the cursor is not yet on the edge row.
func (n *navigator) vertical(c Cursor, delta int, clamp bool) Cursor {
	row := n.e.cursorRow(n.rows, c)
	last := n.rows.Count() - 1
	target := row + delta
	switch {
	case target < 0 && (!clamp || row == 0):
		return n.place(0)
	case target > last && (!clamp || row == last):
		return n.place(len(n.e.text))
	}
	target = min(max(target, 0), last)

	begin, end := n.e.rowRange(n.rows, target)
	char, _ := segment.CharFromX(n.cfg, begin, end, c.StickyX)
	out := n.pinOrPlace(target, char)
	out.StickyX = c.StickyX
	return out
}

func (n *navigator) lineStart(c Cursor) Cursor {
	return n.place(n.rows.FirstChar(n.e.cursorRow(n.rows, c)))
}

func (n *navigator) lineEnd(c Cursor) Cursor {
	row := n.e.cursorRow(n.rows, c)
	_, end := n.e.rowRange(n.rows, row)
	return n.pinOrPlace(row, end)
}

func (n *navigator) wordLeft(c Cursor) Cursor {
	return n.place(textutil.WordLeft(n.e.text, c.CharAbs))
}

func (n *navigator) wordRight(c Cursor) Cursor {
	return n.place(textutil.WordRight(n.e.text, c.CharAbs))
}

// pageRows returns the number of whole rows visible in the view.
func (n *navigator) pageRows() int {
	if n.v == nil {
		return 1
	}
	return max(int(n.v.height/n.v.LineHeight()), 1)
}

// ============================================================================
// Cursor movement
// ============================================================================

// MoveLeft moves every cursor one grapheme cluster left. Rows are those of
// v; a nil view uses raw lines. With extend set, the selection at each
// cursor grows instead of being cleared.
func (e *Engine) MoveLeft(v *View, extend bool) bool {
	return e.move(v, extend, (*navigator).left)
}

// MoveRight moves every cursor one grapheme cluster right.
func (e *Engine) MoveRight(v *View, extend bool) bool {
	return e.move(v, extend, (*navigator).right)
}

// MoveUp moves every cursor one row up, keeping its sticky x.
func (e *Engine) MoveUp(v *View, extend bool) bool {
	return e.move(v, extend, func(n *navigator, c Cursor) Cursor {
		return n.vertical(c, -1, false)
	})
}

// MoveDown moves every cursor one row down, keeping its sticky x.
func (e *Engine) MoveDown(v *View, extend bool) bool {
	return e.move(v, extend, func(n *navigator, c Cursor) Cursor {
		return n.vertical(c, 1, false)
	})
}

// MoveWordLeft moves every cursor to the previous word start.
func (e *Engine) MoveWordLeft(v *View, extend bool) bool {
	return e.move(v, extend, (*navigator).wordLeft)
}

// MoveWordRight moves every cursor past the current word and the
// whitespace after it.
func (e *Engine) MoveWordRight(v *View, extend bool) bool {
	return e.move(v, extend, (*navigator).wordRight)
}

// MoveLineStart moves every cursor to the start of its row.
func (e *Engine) MoveLineStart(v *View, extend bool) bool {
	return e.move(v, extend, (*navigator).lineStart)
}

// MoveLineEnd moves every cursor to the end of its row. On a soft-wrapped
// row the cursor stays displayed on that row.
func (e *Engine) MoveLineEnd(v *View, extend bool) bool {
	return e.move(v, extend, (*navigator).lineEnd)
}

// MoveDocStart moves every cursor to the start of the text.
func (e *Engine) MoveDocStart(v *View, extend bool) bool {
	return e.move(v, extend, func(n *navigator, _ Cursor) Cursor {
		return n.place(0)
	})
}

// MoveDocEnd moves every cursor to the end of the text.
func (e *Engine) MoveDocEnd(v *View, extend bool) bool {
	return e.move(v, extend, func(n *navigator, _ Cursor) Cursor {
		return n.place(len(e.text))
	})
}

// MovePageUp moves every cursor up by the number of rows visible in v and
// scrolls v by the same amount.
func (e *Engine) MovePageUp(v *View, extend bool) bool {
	return e.page(v, extend, -1)
}

// MovePageDown moves every cursor down by a page.
func (e *Engine) MovePageDown(v *View, extend bool) bool {
	return e.page(v, extend, 1)
}

func (e *Engine) page(v *View, extend bool, dir int) bool {
	var rows int
	moved := e.move(v, extend, func(n *navigator, c Cursor) Cursor {
		rows = n.pageRows()
		return n.vertical(c, dir*rows, true)
	})
	if moved && v != nil && !v.closed {
		x, y := v.Scroll()
		v.SetScroll(x, y+float32(dir*rows)*v.LineHeight())
	}
	return moved
}

// move applies f to every cursor. It reports whether any cursor moved.
func (e *Engine) move(v *View, extend bool, f func(*navigator, Cursor) Cursor) bool {
	if v != nil && v.closed {
		e.log.Debug("move: %v", ErrViewClosed)
		return false
	}
	e.useView(v)
	if v == nil {
		v = e.cursorView
	}

	e.BeginDirty()
	defer e.EndDirty()

	n := e.navigator(v)
	old := e.cursors.All()
	moved := make([]Cursor, len(old))
	for i, c := range old {
		moved[i] = f(n, c)
	}

	if extend {
		e.extendSelections(old, moved)
	} else {
		e.clearSelections()
	}
	e.cursors.Replace(moved)
	e.cursorsMoved(old)
	return !equalOffsets(old, moved)
}

// extendSelections grows, for every cursor, the selection whose end point
// sits at the cursor's old offset, or starts one there.
func (e *Engine) extendSelections(old, moved []Cursor) {
	before := e.sels.Ranges()
	items := e.sels.All()
	for i := range old {
		from, to := old[i].CharAbs, moved[i].CharAbs
		found := false
		for j := len(items) - 1; j >= 0; j-- {
			if items[j].End == from {
				items[j].End = to
				found = true
				break
			}
		}
		if !found {
			items = append(items, Selection{Begin: from, End: to})
		}
	}
	e.invalidateRanges(before)
	e.sels.Replace(items)
	e.invalidateRanges(e.sels.Ranges())
}

func equalOffsets(a, b []Cursor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].CharAbs != b[i].CharAbs || a[i].Line != b[i].Line {
			return false
		}
	}
	return true
}

// ============================================================================
// Cursor placement
// ============================================================================

// Cursors returns a copy of the cursors in ascending offset order.
func (e *Engine) Cursors() []Cursor {
	return e.cursors.All()
}

// SetCursor replaces every cursor with a single one at offset and clears
// the selections. Offsets outside the text are rejected.
func (e *Engine) SetCursor(offset int) bool {
	if offset < 0 || offset > len(e.text) {
		return false
	}
	e.BeginDirty()
	defer e.EndDirty()

	old := e.cursors.All()
	e.clearSelections()
	e.cursors.Replace([]Cursor{e.navigator(e.cursorView).place(e.snap(offset))})
	e.cursorsMoved(old)
	return true
}

// AddCursor adds a cursor at offset. It returns false if the offset is
// outside the text or already holds a cursor.
func (e *Engine) AddCursor(offset int) bool {
	if offset < 0 || offset > len(e.text) {
		return false
	}
	return e.addCursor(e.navigator(e.cursorView).place(e.snap(offset)))
}

// RemoveCursor removes the cursor at index i. The last cursor cannot be
// removed.
func (e *Engine) RemoveCursor(i int) bool {
	old := e.cursors.All()
	if !e.cursors.Remove(i) {
		return false
	}
	e.cursorsMoved(old)
	return true
}

// ClearExtraCursors keeps only the first cursor.
func (e *Engine) ClearExtraCursors() {
	old := e.cursors.All()
	e.cursors.ClearExtra()
	e.cursorsMoved(old)
}

// AddCursorAbove adds a cursor one row above the first cursor at its
// sticky x.
func (e *Engine) AddCursorAbove(v *View) bool {
	return e.addCursorRow(v, -1)
}

// AddCursorBelow adds a cursor one row below the last cursor at its
// sticky x.
func (e *Engine) AddCursorBelow(v *View) bool {
	return e.addCursorRow(v, 1)
}

func (e *Engine) addCursorRow(v *View, dir int) bool {
	if v != nil && v.closed {
		return false
	}
	e.useView(v)
	n := e.navigator(e.cursorView)

	c := e.cursors.Primary()
	if dir > 0 {
		c = e.cursors.At(e.cursors.Len() - 1)
	}
	row := e.cursorRow(n.rows, c)
	if row+dir < 0 || row+dir >= n.rows.Count() {
		return false
	}
	return e.addCursor(n.vertical(c, dir, true))
}

func (e *Engine) addCursor(c Cursor) bool {
	old := e.cursors.All()
	if !e.cursors.Add(c) {
		return false
	}
	e.cursorsMoved(old)
	return true
}

// snap moves off to the start of the grapheme cluster containing it.
func (e *Engine) snap(off int) int {
	from := e.lines.FirstChar(e.lines.FindLine(off))
	if textutil.IsBoundary(e.text, from, off) {
		return off
	}
	return textutil.PrevBoundary(e.text, from, off)
}

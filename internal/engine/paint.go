package engine

import (
	"github.com/chewxy/math32"

	"github.com/dshills/textlayout/internal/engine/segment"
)

// ============================================================================
// Painting
// ============================================================================

// Paint draws every row of the view that intersects clip, which is in view
// coordinates. Selected runs get the selection background and each caret
// is drawn as a one-unit-wide rectangle in the cursor style. The painted
// rows are no longer reported by DirtyLines.
func (v *View) Paint(p Painter, clip Rect) bool {
	if v.closed || p == nil {
		return false
	}
	clip = clip.Intersect(Rect{W: v.width, H: v.height})
	if clip.IsEmpty() {
		return false
	}

	e := v.e
	rows := e.rowsOf(v)
	lh := v.LineHeight()
	first := max(int(math32.Floor((clip.Y+v.scrollY)/lh)), 0)
	end := int(math32.Ceil((clip.Bottom() + v.scrollY) / lh))

	cfg := e.paintConfig()
	bg := e.token(e.defaultSlot)
	selBg := e.token(e.selectionSlot)
	carets := v.caretsByRow()

	for r := first; r < end; r++ {
		y := float32(r)*lh - v.scrollY
		if r >= rows.Count() {
			p.PaintRect(v, bg, Rect{X: 0, Y: y, W: v.width, H: lh})
			continue
		}

		begin, stop := e.rowRange(rows, r)
		it := segment.New(cfg, begin, stop, -v.scrollX)
		for {
			seg, ok := it.Next()
			if !ok {
				break
			}
			back := bg
			if seg.Selected {
				back = selBg
			}
			switch seg.Kind {
			case segment.Text:
				p.PaintText(v, seg.Token, back, e.text[seg.Begin:seg.End], seg.X, y)
			case segment.Tab:
				p.PaintRect(v, back, Rect{X: seg.X, Y: y, W: seg.Width, H: lh})
			case segment.EOL:
				x := seg.X
				if seg.Selected && stop < len(e.text) {
					w := cfg.Default.Metrics.SpaceWidth
					p.PaintRect(v, selBg, Rect{X: x, Y: y, W: w, H: lh})
					x += w
				}
				if x < v.width {
					p.PaintRect(v, bg, Rect{X: x, Y: y, W: v.width - x, H: lh})
				}
			}
		}

		for _, x := range carets[r] {
			p.PaintRect(v, e.token(e.cursorSlot), Rect{X: x - v.scrollX, Y: y, W: 1, H: lh})
		}
	}

	v.dirty.ClearRows(first, end)
	return true
}

// caretsByRow returns the content x of every caret keyed by row.
func (v *View) caretsByRow() map[int][]float32 {
	e := v.e
	rows := e.rowsOf(v)
	cfg := e.layoutConfig()
	out := make(map[int][]float32)
	for _, c := range e.cursors.All() {
		r := e.cursorRow(rows, c)
		out[r] = append(out[r], e.xOf(cfg, rows, r, c.CharAbs))
	}
	return out
}

// ============================================================================
// Hit testing
// ============================================================================

// PointFromChar returns the view position of the top-left corner of
// offset char.
func (v *View) PointFromChar(char int) (x, y float32) {
	e := v.e
	char = e.clamp(char)
	rows := e.rowsOf(v)
	r := rows.FindLine(char)
	x = e.xOf(e.layoutConfig(), rows, r, char)
	return x - v.scrollX, float32(r)*v.LineHeight() - v.scrollY
}

// CharFromPoint returns the character boundary nearest to the view
// position (x, y). Points above the text map to its first row and points
// below to its last.
func (v *View) CharFromPoint(x, y float32) int {
	c := v.hit(x, y)
	return c.CharAbs
}

// CaretRect returns the rectangle of the caret of cursor i in view
// coordinates, or the zero Rect if i is out of range.
func (v *View) CaretRect(i int) Rect {
	if i < 0 || i >= v.e.cursors.Len() {
		return Rect{}
	}
	r := v.caretContent(i)
	r.X -= v.scrollX
	r.Y -= v.scrollY
	return r
}

// caretContent returns the caret of cursor i in content coordinates.
func (v *View) caretContent(i int) Rect {
	e := v.e
	rows := e.rowsOf(v)
	c := e.cursors.At(i)
	r := e.cursorRow(rows, c)
	lh := v.LineHeight()
	return Rect{
		X: e.xOf(e.layoutConfig(), rows, r, c.CharAbs),
		Y: float32(r) * lh,
		W: 1,
		H: lh,
	}
}

// hit returns the cursor a click at (x, y) produces. A click past the end
// of a soft-wrapped row pins the cursor to that row.
func (v *View) hit(x, y float32) Cursor {
	e := v.e
	rows := e.rowsOf(v)
	lh := v.LineHeight()
	r := int(math32.Floor((y + v.scrollY) / lh))
	r = min(max(r, 0), rows.Count()-1)

	cx := x + v.scrollX
	begin, end := e.rowRange(rows, r)
	char, _ := segment.CharFromX(e.layoutConfig(), begin, end, cx)
	return e.navigator(v).pinOrPlace(r, char)
}

// SetCursorFromPoint replaces every cursor with one at the character
// nearest to (x, y) in v and clears the selections.
func (e *Engine) SetCursorFromPoint(v *View, x, y float32) bool {
	if v == nil || v.closed {
		return false
	}
	e.useView(v)
	e.BeginDirty()
	defer e.EndDirty()

	old := e.cursors.All()
	e.clearSelections()
	e.cursors.Replace([]Cursor{v.hit(x, y)})
	e.cursorsMoved(old)
	return true
}

// AddCursorFromPoint adds a cursor at the character nearest to (x, y) in
// v. It returns false if a cursor is already there.
func (e *Engine) AddCursorFromPoint(v *View, x, y float32) bool {
	if v == nil || v.closed {
		return false
	}
	e.useView(v)
	return e.addCursor(v.hit(x, y))
}

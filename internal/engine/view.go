package engine

import (
	"slices"

	"github.com/chewxy/math32"
	"github.com/google/uuid"

	"github.com/dshills/textlayout/internal/engine/dirty"
	"github.com/dshills/textlayout/internal/engine/wrap"
	"github.com/dshills/textlayout/internal/logging"
)

// View is one viewport onto an Engine. It owns its size, scroll offset,
// row layout and dirty accumulator; the text is shared with every other
// view of the same engine.
type View struct {
	e      *Engine
	id     uuid.UUID
	log    *logging.Logger
	closed bool

	width, height    float32
	scrollX, scrollY float32

	wordWrap bool
	layout   wrap.Layout
	dirty    *dirty.Accumulator
}

// NewView creates a view of the given size and links it to the engine.
func (e *Engine) NewView(width, height float32) *View {
	v := &View{
		e:      e,
		id:     uuid.New(),
		width:  math32.Max(width, 0),
		height: math32.Max(height, 0),
		dirty:  dirty.New(),
	}
	v.log = e.log.WithComponent("view").WithField("view", v.id.String()[:8])

	for i := 0; i < e.dirtyDepth; i++ {
		v.dirty.Begin()
	}
	e.views = append(e.views, v)
	if e.cursorView == nil {
		e.cursorView = v
	}
	if e.wordWrap {
		v.wordWrap = true
		v.reflow()
	}
	e.repin()
	v.invalidateFrom(0)
	v.log.Debug("created %gx%g", v.width, v.height)
	return v
}

// Close unlinks the view from its engine. A closed view ignores every
// call.
func (v *View) Close() {
	if v.closed {
		return
	}
	e := v.e
	v.closed = true
	e.views = slices.DeleteFunc(e.views, func(o *View) bool { return o == v })
	if e.cursorView == v {
		e.cursorView = nil
		if len(e.views) > 0 {
			e.cursorView = e.views[0]
		}
		e.unpin()
		e.repin()
	}
	v.log.Debug("closed")
}

// ID returns the view's unique id.
func (v *View) ID() uuid.UUID {
	return v.id
}

// Engine returns the engine the view belongs to.
func (v *View) Engine() *Engine {
	return v.e
}

// ============================================================================
// Geometry
// ============================================================================

// SetSize resizes the view. A width change reflows a wrapped view.
func (v *View) SetSize(width, height float32) bool {
	if v.closed {
		return false
	}
	width, height = math32.Max(width, 0), math32.Max(height, 0)
	if width == v.width && height == v.height {
		return true
	}

	v.BeginDirty()
	defer v.EndDirty()

	widthChanged := width != v.width
	v.width, v.height = width, height
	if widthChanged && v.wordWrap {
		v.reflow()
		if v.e.cursorView == v {
			v.e.repin()
		}
	}
	v.SetScroll(v.scrollX, v.scrollY)
	v.invalidateFrom(0)
	return true
}

// Size returns the view size.
func (v *View) Size() (width, height float32) {
	return v.width, v.height
}

// SetScroll sets the scroll offset. It is clamped so that the last row can
// reach the top of the view. A wrapped view never scrolls horizontally.
func (v *View) SetScroll(x, y float32) bool {
	if v.closed {
		return false
	}
	maxY := float32(v.LineCount()-1) * v.LineHeight()
	y = math32.Max(0, math32.Min(y, maxY))
	x = math32.Max(0, x)
	if v.wordWrap {
		x = 0
	}
	if x == v.scrollX && y == v.scrollY {
		return true
	}
	v.scrollX, v.scrollY = x, y
	v.invalidateFrom(0)
	return true
}

// Scroll returns the scroll offset.
func (v *View) Scroll() (x, y float32) {
	return v.scrollX, v.scrollY
}

// ScrollToCursor scrolls the smallest distance that makes the first
// cursor's caret fully visible.
func (v *View) ScrollToCursor() bool {
	if v.closed {
		return false
	}
	r := v.caretContent(0)
	x, y := v.scrollX, v.scrollY
	if r.Y < y {
		y = r.Y
	} else if r.Bottom() > y+v.height {
		y = r.Bottom() - v.height
	}
	if !v.wordWrap {
		if r.X < x {
			x = r.X
		} else if r.Right() > x+v.width {
			x = r.Right() - v.width
		}
	}
	return v.SetScroll(x, y)
}

// LineHeight returns the height of one row: the height of the default
// style.
func (v *View) LineHeight() float32 {
	if h := v.e.defaultStyle().Metrics.Height; h > 0 {
		return h
	}
	return 1
}

// ============================================================================
// Word wrap
// ============================================================================

// SetWordWrap enables or disables word wrap at the view width.
func (v *View) SetWordWrap(enabled bool) bool {
	if v.closed {
		return false
	}
	if enabled == v.wordWrap {
		return true
	}

	v.BeginDirty()
	defer v.EndDirty()

	v.wordWrap = enabled
	v.reflow()
	if enabled {
		v.scrollX = 0
	}
	if v.e.cursorView == v {
		v.e.repin()
	}
	v.SetScroll(v.scrollX, v.scrollY)
	v.invalidateFrom(0)
	v.log.Debug("word wrap %t, %d rows", enabled, v.LineCount())
	return true
}

// WordWrap reports whether word wrap is enabled.
func (v *View) WordWrap() bool {
	return v.wordWrap
}

// reflow rebuilds the wrapped rows, or drops them when wrap is off.
func (v *View) reflow() {
	if !v.wordWrap {
		v.layout = wrap.Unwrapped()
		return
	}
	v.layout = wrap.Wrapped(wrap.Reflow(v.e.layoutConfig(), v.e.lines, v.width))
}

// ============================================================================
// Rows
// ============================================================================

// LineCount returns the number of display rows.
func (v *View) LineCount() int {
	return v.e.rowsOf(v).Count()
}

// LineFirstChar returns the offset of the first character of row i, or 0
// if i is out of range.
func (v *View) LineFirstChar(i int) int {
	return v.e.rowsOf(v).FirstChar(i)
}

// LineLastChar returns the offset just past the last character of row i,
// excluding a line terminator, or 0 if i is out of range.
func (v *View) LineLastChar(i int) int {
	rows := v.e.rowsOf(v)
	if i < 0 || i >= rows.Count() {
		return 0
	}
	_, end := v.e.rowRange(rows, i)
	return end
}

// LineOfChar returns the row containing offset char. Offsets outside the
// text return 0.
func (v *View) LineOfChar(char int) int {
	if char < 0 || char > len(v.e.text) {
		return 0
	}
	return v.e.rowsOf(v).FindLine(char)
}

// ============================================================================
// Dirty tracking
// ============================================================================

// BeginDirty opens a repaint batch on this view.
func (v *View) BeginDirty() {
	v.dirty.Begin()
}

// EndDirty closes a batch. When the outermost batch closes the union of
// everything invalidated is delivered through OnDirty.
func (v *View) EndDirty() {
	if r, ok := v.dirty.End(); ok && !v.closed {
		v.e.listener.OnDirty(v, r)
	}
}

// DirtyLines returns the rows invalidated since they were last painted.
func (v *View) DirtyLines() []int {
	return v.dirty.Rows()
}

// visibleRows returns the row range [first, end) intersecting the view.
func (v *View) visibleRows() (int, int) {
	lh := v.LineHeight()
	first := int(math32.Floor(v.scrollY / lh))
	end := int(math32.Ceil((v.scrollY + v.height) / lh))
	return max(first, 0), max(end, first)
}

// invalidateRows marks rows [from, to) dirty and reports the visible part.
func (v *View) invalidateRows(from, to int) {
	if v.closed || to <= from {
		return
	}
	v.dirty.MarkRows(from, to)

	lh := v.LineHeight()
	r := Rect{X: 0, Y: float32(from)*lh - v.scrollY, W: v.width, H: float32(to-from) * lh}
	r = r.Intersect(Rect{W: v.width, H: v.height})
	if r.IsEmpty() {
		return
	}
	if out, ok := v.dirty.Add(r); ok {
		v.e.listener.OnDirty(v, out)
	}
}

// invalidateFrom marks every visible row from row down to the bottom of
// the view. Rows below the view are repainted when scrolled into it.
func (v *View) invalidateFrom(row int) {
	first, end := v.visibleRows()
	v.invalidateRows(max(row, first), end)
}

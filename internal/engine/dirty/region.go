// Package dirty accumulates the parts of a view that need repainting.
//
// Invalidated areas are unioned into a single bounding rectangle and the
// affected display rows are recorded in a row set. An Accumulator can be
// held open with Begin/End so that a compound operation reports one
// rectangle when the outermost End is reached.
package dirty

import "github.com/chewxy/math32"

// Rect is an axis-aligned rectangle in view coordinates.
type Rect struct {
	X, Y float32
	W, H float32
}

// IsEmpty returns true if the rectangle covers no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Right returns the x coordinate just past the rectangle.
func (r Rect) Right() float32 {
	return r.X + r.W
}

// Bottom returns the y coordinate just past the rectangle.
func (r Rect) Bottom() float32 {
	return r.Y + r.H
}

// Union returns the smallest rectangle containing both r and other.
// Empty rectangles are ignored.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x := math32.Min(r.X, other.X)
	y := math32.Min(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: math32.Max(r.Right(), other.Right()) - x,
		H: math32.Max(r.Bottom(), other.Bottom()) - y,
	}
}

// Intersect returns the overlap of r and other, or the zero Rect.
func (r Rect) Intersect(other Rect) Rect {
	x := math32.Max(r.X, other.X)
	y := math32.Max(r.Y, other.Y)
	right := math32.Min(r.Right(), other.Right())
	bottom := math32.Min(r.Bottom(), other.Bottom())
	if right <= x || bottom <= y {
		return Rect{}
	}
	return Rect{X: x, Y: y, W: right - x, H: bottom - y}
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

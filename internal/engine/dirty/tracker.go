package dirty

import "github.com/bits-and-blooms/bitset"

// Accumulator collects dirty areas for one view.
type Accumulator struct {
	depth   int
	pending Rect
	rows    *bitset.BitSet
}

// New creates an empty accumulator.
func New() *Accumulator {
	return &Accumulator{rows: bitset.New(64)}
}

// Begin opens a batch. Batches nest.
func (a *Accumulator) Begin() {
	a.depth++
}

// End closes a batch. When the outermost batch closes, the accumulated
// rectangle is returned and reset; ok is false if nothing was added.
// Unbalanced calls are ignored.
func (a *Accumulator) End() (Rect, bool) {
	if a.depth == 0 {
		return Rect{}, false
	}
	a.depth--
	return a.flush()
}

// Depth returns the current batch nesting depth.
func (a *Accumulator) Depth() int {
	return a.depth
}

// Add unions r into the pending rectangle. Outside a batch the rectangle is
// returned immediately for delivery.
func (a *Accumulator) Add(r Rect) (Rect, bool) {
	a.pending = a.pending.Union(r)
	return a.flush()
}

// Pending returns the rectangle accumulated so far.
func (a *Accumulator) Pending() Rect {
	return a.pending
}

func (a *Accumulator) flush() (Rect, bool) {
	if a.depth > 0 || a.pending.IsEmpty() {
		return Rect{}, false
	}
	r := a.pending
	a.pending = Rect{}
	return r, true
}

// MarkRows records display rows [from, to) as dirty.
func (a *Accumulator) MarkRows(from, to int) {
	if from < 0 {
		from = 0
	}
	for i := from; i < to; i++ {
		a.rows.Set(uint(i))
	}
}

// IsRowDirty reports whether row i is marked.
func (a *Accumulator) IsRowDirty(i int) bool {
	if i < 0 {
		return false
	}
	return a.rows.Test(uint(i))
}

// Rows returns the marked rows in ascending order.
func (a *Accumulator) Rows() []int {
	var out []int
	for i, ok := a.rows.NextSet(0); ok; i, ok = a.rows.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// ClearRows unmarks rows [from, to).
func (a *Accumulator) ClearRows(from, to int) {
	if from < 0 {
		from = 0
	}
	for i := from; i < to; i++ {
		a.rows.Clear(uint(i))
	}
}

// Reset clears the row set and the pending rectangle. The batch depth is
// kept.
func (a *Accumulator) Reset() {
	a.rows.ClearAll()
	a.pending = Rect{}
}

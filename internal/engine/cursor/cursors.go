package cursor

import "slices"

// Set manages multiple cursors.
// Cursors are kept sorted by offset with no two at the same offset.
// A Set always holds at least one cursor.
type Set struct {
	cursors []Cursor
}

// NewSet creates a set from the given cursors. An empty call creates a set
// with a single cursor at offset 0.
func NewSet(cursors ...Cursor) *Set {
	cs := &Set{}
	cs.Replace(cursors)
	return cs
}

// All returns a copy of all cursors.
func (cs *Set) All() []Cursor {
	return slices.Clone(cs.cursors)
}

// Len returns the number of cursors.
func (cs *Set) Len() int {
	return len(cs.cursors)
}

// IsMulti returns true if there is more than one cursor.
func (cs *Set) IsMulti() bool {
	return len(cs.cursors) > 1
}

// At returns the cursor at index i, or the zero cursor if i is out of range.
func (cs *Set) At(i int) Cursor {
	if i < 0 || i >= len(cs.cursors) {
		return Cursor{}
	}
	return cs.cursors[i]
}

// Primary returns the first cursor.
func (cs *Set) Primary() Cursor {
	return cs.cursors[0]
}

// Add inserts a cursor. It reports false if a cursor already sits at the
// same offset.
func (cs *Set) Add(c Cursor) bool {
	for _, existing := range cs.cursors {
		if existing.CharAbs == c.CharAbs {
			return false
		}
	}
	cs.cursors = append(cs.cursors, c)
	cs.normalize()
	return true
}

// Remove deletes the cursor at index i. The last cursor cannot be removed.
func (cs *Set) Remove(i int) bool {
	if i < 0 || i >= len(cs.cursors) || len(cs.cursors) == 1 {
		return false
	}
	cs.cursors = slices.Delete(cs.cursors, i, i+1)
	return true
}

// Update replaces the cursor at index i and re-sorts the set.
func (cs *Set) Update(i int, c Cursor) bool {
	if i < 0 || i >= len(cs.cursors) {
		return false
	}
	cs.cursors[i] = c
	cs.normalize()
	return true
}

// Replace sets the cursors wholesale.
func (cs *Set) Replace(cursors []Cursor) {
	if len(cursors) == 0 {
		cs.cursors = []Cursor{{}}
		return
	}
	cs.cursors = slices.Clone(cursors)
	cs.normalize()
}

// ClearExtra keeps only the primary cursor.
func (cs *Set) ClearExtra() {
	cs.cursors = cs.cursors[:1]
}

// MapInPlace applies f to each cursor and re-sorts the set.
func (cs *Set) MapInPlace(f func(c Cursor) Cursor) {
	for i, c := range cs.cursors {
		cs.cursors[i] = f(c)
	}
	cs.normalize()
}

// Offsets returns the CharAbs of every cursor in order.
func (cs *Set) Offsets() []int {
	out := make([]int, len(cs.cursors))
	for i, c := range cs.cursors {
		out[i] = c.CharAbs
	}
	return out
}

// Clamp limits every cursor to [0, max].
func (cs *Set) Clamp(max int) {
	cs.MapInPlace(func(c Cursor) Cursor { return c.Clamp(max) })
}

// AdjustForDelete repositions every cursor after the removal of r.
func (cs *Set) AdjustForDelete(r Range) {
	if r.IsEmpty() {
		return
	}
	cs.MapInPlace(func(c Cursor) Cursor {
		c.CharAbs = AdjustOffset(c.CharAbs, r)
		return c
	})
}

// AdjustForInsert shifts every cursor at or after at by n.
func (cs *Set) AdjustForInsert(at, n int) {
	if n == 0 {
		return
	}
	cs.MapInPlace(func(c Cursor) Cursor {
		c.CharAbs = ShiftForInsert(c.CharAbs, at, n)
		return c
	})
}

// Clone returns a deep copy of the set.
func (cs *Set) Clone() *Set {
	return &Set{cursors: slices.Clone(cs.cursors)}
}

// Equals returns true if two sets hold the same cursors.
func (cs *Set) Equals(other *Set) bool {
	if other == nil {
		return false
	}
	return slices.Equal(cs.cursors, other.cursors)
}

// normalize sorts cursors and drops duplicates.
func (cs *Set) normalize() {
	if len(cs.cursors) <= 1 {
		return
	}

	slices.SortStableFunc(cs.cursors, Cursor.Compare)

	// Keep the first cursor at each offset.
	cs.cursors = slices.CompactFunc(cs.cursors, func(a, b Cursor) bool {
		return a.CharAbs == b.CharAbs
	})
}

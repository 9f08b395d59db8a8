package cursor

import "fmt"

// Cursor is an insertion point.
type Cursor struct {
	// CharAbs is the byte offset of the cursor in the text.
	CharAbs int

	// Line is the display line the cursor is rendered on.
	Line int

	// StickyX is the x column preserved across vertical moves.
	StickyX float32

	// Pinned shows a cursor at the start of a soft-wrapped row at the end
	// of the row before it. Only cursor motion sets it; edits clear it.
	Pinned bool
}

// At returns a cursor at offset with no line information.
func At(offset int) Cursor {
	if offset < 0 {
		offset = 0
	}
	return Cursor{CharAbs: offset}
}

// Clamp returns the cursor with CharAbs limited to [0, max].
func (c Cursor) Clamp(max int) Cursor {
	if c.CharAbs < 0 {
		c.CharAbs = 0
	}
	if c.CharAbs > max {
		c.CharAbs = max
	}
	return c
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	if c.Pinned {
		return fmt.Sprintf("Cursor(%d@%d pinned)", c.CharAbs, c.Line)
	}
	return fmt.Sprintf("Cursor(%d@%d)", c.CharAbs, c.Line)
}

// Compare returns -1 if c is before other, 1 if after and 0 if they share
// an offset.
func (c Cursor) Compare(other Cursor) int {
	switch {
	case c.CharAbs < other.CharAbs:
		return -1
	case c.CharAbs > other.CharAbs:
		return 1
	default:
		return 0
	}
}

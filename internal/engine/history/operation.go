package history

import (
	"fmt"
	"slices"

	"github.com/dshills/textlayout/internal/engine/cursor"
)

// Kind is the type of a recorded change.
type Kind uint8

const (
	// Insert records text inserted at Begin; End is Begin+len(Text).
	Insert Kind = iota
	// Delete records text removed from [Begin, End).
	Delete
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is a single recorded text mutation.
type Change struct {
	Kind  Kind
	Begin int
	End   int
	Text  []byte
}

// InsertChange returns the change for text inserted at offset.
func InsertChange(offset int, text []byte) Change {
	return Change{Kind: Insert, Begin: offset, End: offset + len(text), Text: text}
}

// DeleteChange returns the change for text removed from [begin, end).
func DeleteChange(begin, end int, text []byte) Change {
	return Change{Kind: Delete, Begin: begin, End: end, Text: text}
}

// Invert returns the change that undoes c.
func (c Change) Invert() Change {
	inv := c
	if c.Kind == Insert {
		inv.Kind = Delete
	} else {
		inv.Kind = Insert
	}
	return inv
}

// Apply replays the change through r.
func (c Change) Apply(r Replayer) bool {
	if c.Kind == Insert {
		return r.ReplayInsert(c.Begin, c.Text)
	}
	return r.ReplayDelete(c.Begin, c.End)
}

// String returns a string representation of the change.
func (c Change) String() string {
	return fmt.Sprintf("%s[%d,%d)%q", c.Kind, c.Begin, c.End, c.Text)
}

// Replayer applies changes to a document during undo and redo.
type Replayer interface {
	ReplayInsert(at int, text []byte) bool
	ReplayDelete(begin, end int) bool
}

// State is the editing state captured around an undo point.
type State struct {
	Cursors    []cursor.Cursor
	Selections []cursor.Selection
	AppData    []byte
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	return State{
		Cursors:    slices.Clone(s.Cursors),
		Selections: slices.Clone(s.Selections),
		AppData:    slices.Clone(s.AppData),
	}
}

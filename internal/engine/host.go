package engine

import (
	"github.com/dshills/textlayout/internal/engine/cursor"
	"github.com/dshills/textlayout/internal/engine/dirty"
	"github.com/dshills/textlayout/internal/engine/segment"
	"github.com/dshills/textlayout/internal/engine/style"
)

// Re-export commonly used types for convenience.
type (
	// Rect is a rectangle in view coordinates.
	Rect = dirty.Rect

	// Cursor is an insertion point.
	Cursor = cursor.Cursor

	// Selection is a selected region.
	Selection = cursor.Selection

	// Token is an opaque host style handle.
	Token = style.Token

	// Slot is the index of a registered style.
	Slot = style.Slot

	// Style is a registered style with its metrics.
	Style = style.Style

	// Measurer measures text for the engine.
	Measurer = style.Measurer

	// Highlighter supplies foreground style spans.
	Highlighter = segment.Highlighter
)

// InvalidSlot is returned for styles that could not be registered.
const InvalidSlot = style.InvalidSlot

// Painter draws a view. Coordinates are in view space.
type Painter interface {
	// PaintText draws text with foreground fg on background bg at (x, y),
	// the top-left corner of the run.
	PaintText(v *View, fg, bg Token, text []byte, x, y float32)

	// PaintRect fills r with the background of tok.
	PaintRect(v *View, tok Token, r Rect)
}

// Listener receives engine notifications.
type Listener interface {
	// OnDirty reports an area of v that needs repainting.
	OnDirty(v *View, r Rect)

	// OnTextChanged reports that the text was modified.
	OnTextChanged()

	// OnCursorMove reports that the carets of v moved.
	OnCursorMove(v *View)

	// OnUndoPointChanged reports the new number of applied undo points.
	OnUndoPointChanged(index int)
}

// UndoStateProvider supplies host data saved with every undo point and
// restored by Undo and Redo.
type UndoStateProvider interface {
	UndoState() []byte
	ApplyUndoState(state []byte)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) OnDirty(*View, Rect)    {}
func (NopListener) OnTextChanged()         {}
func (NopListener) OnCursorMove(*View)     {}
func (NopListener) OnUndoPointChanged(int) {}

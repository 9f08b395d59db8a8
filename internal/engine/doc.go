// Package engine is the text layout and editing engine.
//
// An Engine owns a UTF-8 text buffer together with everything derived from
// it: the raw line table, the style table, the cursors, the selections and
// the undo history. It performs no rendering or I/O. Measuring, painting and
// highlighting are delegated to the host through the Measurer, Painter and
// Highlighter interfaces, and the host learns about changes through a
// Listener.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - linecache: sorted line-start table with binary search
//   - segment: splits a line into text, tab and end-of-line runs
//   - cursor: multi-cursor set, selections and edit adjustment
//   - wrap: soft-wrapped row tables for views
//   - history: linear undo/redo log in stack arenas
//   - dirty: repaint accumulation per view
//   - style: dense style table and the Measurer contract
//
// # Views
//
// A View is one viewport onto the engine. It owns its size, scroll offset,
// word-wrap layout and dirty accumulator; the text itself is shared. Every
// paint or hit-test call goes through a View:
//
//	e := engine.New(engine.WithText("Hello\nWorld"))
//	v := e.NewView(80, 24)
//	v.SetWordWrap(true)
//	v.Paint(painter, engine.Rect{W: 80, H: 24})
//
// # Threading
//
// The engine is single-threaded. Every call must come from the host's UI
// thread and runs to completion before returning.
//
// # Editing
//
// Mutators return false when nothing could be done. Offsets are byte offsets
// and are clamped to the text. Cursor motion and deletion step over whole
// grapheme clusters.
//
//	e.SetCursor(5)
//	e.InsertAtCursors("X")  // "HelloX\nWorld"
//	e.DeleteBackward()      // "Hello\nWorld"
//
// # Undo/Redo
//
// Changes are grouped into undo points. A host groups a compound edit
// explicitly:
//
//	e.PrepareUndoPoint()
//	e.InsertAtCursors("abc")
//	e.MoveRight(v, false)
//	e.InsertAtCursors("def")
//	e.CommitUndoPoint()
//	e.Undo() // removes both insertions
//
// An edit made while no point is open gets a point of its own.
//
// # Dirty Batching
//
// BeginDirty and EndDirty nest. While a batch is open no OnDirty,
// OnTextChanged or OnCursorMove notification is sent; the outermost EndDirty
// delivers one of each.
package engine

// Package cursor provides the cursor and selection model of the engine.
//
// The cursor package handles:
//
//   - Cursor positions with a display line and a sticky x column
//   - Multi-cursor sets kept sorted and de-duplicated
//   - Independent, insertion-ordered selections
//   - Repositioning after edits by interval case analysis
//
// Cursor Model:
//
// A Cursor stores an absolute byte offset (CharAbs), the display line it is
// rendered on and the x column vertical motion tries to return to. Line is
// normally the line containing CharAbs. The one exception is a cursor pinned
// to the end of a soft-wrapped row: CharAbs equals the first character of
// row Line+1 while Line still names the row above. The engine owns that
// state; this package only stores it.
//
// Selection Model:
//
// A Selection is a pair of offsets. Begin is where the selection was opened
// and End is the moving end point, so Begin may be greater than End. Use
// Normalize (or Low/High) before treating it as a range. A zero-length
// selection selects nothing.
//
// Edit Adjustment:
//
// When a range is deleted every other offset is classified against it:
//
//	before        |sel|  [del]           unchanged
//	overlap-left  |sel [|del]            end clipped to the deletion start
//	inside           [|sel|]             collapses to the deletion start
//	contains      |sel [del] sel|        shrinks by the deletion length
//	overlap-right    [del |sel]          start moved to the deletion start
//	after            [del]  |sel|        shifted left by the deletion length
//
// Basic usage:
//
//	cs := cursor.NewSet(cursor.Cursor{CharAbs: 2}, cursor.Cursor{CharAbs: 9})
//	cs.AdjustForDelete(cursor.Range{Begin: 2, End: 3})
//
//	var sels cursor.Selections
//	sels.Begin(0)
//	sels.SetEndPoint(5)
//
// Nothing in this package is safe for concurrent use. The engine is single
// threaded and owns every set.
package cursor

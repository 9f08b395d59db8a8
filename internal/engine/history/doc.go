// Package history provides linear undo/redo for the text layout engine.
//
// Edits are grouped into undo points. A point is opened with Prepare, which
// snapshots the cursor and selection state (plus opaque host data), and
// closed with Commit, which snapshots the state again. Every text mutation
// made in between is recorded as a Change.
//
// # Storage
//
// Committed points live in FILO arenas (see package stack): one for the
// literal text of changes and host data, one each for change records,
// cursors and selections, and one for node headers. Nodes refer to their
// neighbours and payloads by arena mark, never by pointer. Discarding the
// redo tail or a failed commit is a single rewind of every arena.
//
// # Linearity
//
// The history is strictly linear. Committing after an undo discards every
// point that could have been redone.
//
//	h := history.New(history.Options{})
//	h.Prepare(before)
//	h.Record(history.Change{Kind: history.Insert, Begin: 0, End: 3, Text: []byte("abc")})
//	h.Commit(after)
//
//	state, err := h.Undo(doc) // doc implements Replayer
//
// # Budgets
//
// Options.MaxBytes bounds the byte arena and Options.MaxPoints the number
// of nodes. A commit that would exceed either fails with
// stack.ErrExhausted and leaves no partial node behind.
package history

package engine

import (
	"errors"
	"slices"

	"github.com/dshills/textlayout/internal/engine/history"
	"github.com/dshills/textlayout/internal/engine/stack"
)

// ============================================================================
// Undo/Redo
// ============================================================================

// PrepareUndoPoint opens an undo point. Every edit until CommitUndoPoint
// is undone as one step. It returns false if a point is already open.
func (e *Engine) PrepareUndoPoint() bool {
	if err := e.history.Prepare(e.captureState()); err != nil {
		e.log.Debug("prepare undo point: %v", err)
		return false
	}
	return true
}

// CommitUndoPoint closes the open undo point. It returns false if no point
// is open or the point could not be stored. Reaching the undo limits drops
// the oldest points; a point larger than the byte limit is not stored, its
// edits stay applied and the history is emptied.
func (e *Engine) CommitUndoPoint() bool {
	if !e.history.IsOpen() {
		e.log.Debug("commit undo point: %v", history.ErrNotPrepared)
		return false
	}
	return e.commit()
}

// AbortUndoPoint closes the open undo point without recording it. Edits
// already made stay applied.
func (e *Engine) AbortUndoPoint() {
	e.history.Abort()
}

// Undo reverts the most recent undo point and restores the cursors,
// selections and host state from before it.
func (e *Engine) Undo() bool {
	return e.step("undo", e.history.Undo)
}

// Redo reapplies the next undo point and restores the state from after it.
func (e *Engine) Redo() bool {
	return e.step("redo", e.history.Redo)
}

// CanUndo returns true if there is something to undo.
func (e *Engine) CanUndo() bool {
	return !e.history.IsOpen() && e.history.CanUndo()
}

// CanRedo returns true if there is something to redo.
func (e *Engine) CanRedo() bool {
	return !e.history.IsOpen() && e.history.CanRedo()
}

// UndoIndex returns the number of applied undo points.
func (e *Engine) UndoIndex() int {
	return e.history.Index()
}

// ClearUndo discards the whole history, including an open point.
func (e *Engine) ClearUndo() {
	e.history.Clear()
	e.listener.OnUndoPointChanged(0)
}

// SetUndoLimits changes the history budgets. Points over a lowered limit
// are dropped on the next commit.
func (e *Engine) SetUndoLimits(maxBytes, maxPoints int) {
	e.undoOpts = history.Options{MaxBytes: max(maxBytes, 0), MaxPoints: max(maxPoints, 0)}
	e.history.SetOptions(e.undoOpts)
}

// commit stores the open point with the current state as its after-state.
func (e *Engine) commit() bool {
	index := e.history.Index()
	if err := e.history.Commit(e.captureState()); err != nil {
		if errors.Is(err, stack.ErrExhausted) {
			e.log.Warn("undo point discarded: %v", err)
		} else {
			e.log.Error("commit undo point: %v", err)
		}
		if e.history.Index() != index {
			e.listener.OnUndoPointChanged(e.history.Index())
		}
		return false
	}
	if e.history.Index() != index {
		e.listener.OnUndoPointChanged(e.history.Index())
	}
	return true
}

func (e *Engine) step(name string, fn func(history.Replayer) (history.State, error)) bool {
	e.BeginDirty()
	defer e.EndDirty()

	old := e.cursors.All()
	oldSels := slices.Clone(e.sels.Ranges())
	st, err := fn(replayer{e: e})
	if err != nil {
		if errors.Is(err, history.ErrReplayFailed) {
			e.log.Error("%s: %v", name, err)
		} else {
			e.log.Debug("%s: %v", name, err)
		}
		return false
	}

	e.invalidateRanges(oldSels)
	e.restoreState(st)
	e.invalidateRanges(e.sels.Ranges())
	e.cursorsMoved(old)
	e.listener.OnUndoPointChanged(e.history.Index())
	return true
}

// captureState snapshots the state saved around an undo point.
func (e *Engine) captureState() history.State {
	st := history.State{
		Cursors:    e.cursors.All(),
		Selections: e.sels.All(),
	}
	if e.undoState != nil {
		st.AppData = e.undoState.UndoState()
	}
	return st
}

// restoreState applies a snapshot. Cursors whose stored row no longer
// matches the layout are repinned; the rest are restored exactly.
func (e *Engine) restoreState(st history.State) {
	e.cursors.Replace(st.Cursors)
	e.cursors.Clamp(len(e.text))
	cfg := e.layoutConfig()
	rows := e.rowsOf(e.cursorView)
	e.cursors.MapInPlace(func(c Cursor) Cursor {
		if c.Line == e.cursorRow(rows, c) {
			return c
		}
		return e.placeCursor(cfg, rows, c)
	})

	e.sels.Replace(st.Selections)
	e.sels.Clamp(len(e.text))

	if e.undoState != nil {
		e.undoState.ApplyUndoState(st.AppData)
	}
}

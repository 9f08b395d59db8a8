package engine

import (
	"fmt"
	"slices"

	"github.com/dshills/textlayout/internal/engine/cursor"
	"github.com/dshills/textlayout/internal/engine/history"
	"github.com/dshills/textlayout/internal/engine/linecache"
	"github.com/dshills/textlayout/internal/engine/textutil"
)

// ============================================================================
// Write Operations
// ============================================================================

// SetText replaces the whole text. The cursors collapse to offset 0, the
// selections are cleared and the undo history is emptied.
func (e *Engine) SetText(text string) bool {
	if len(text) > e.maxTextLength {
		e.log.Debug("set text: %d bytes: %v", len(text), ErrTextTooLong)
		return false
	}

	e.BeginDirty()
	defer e.EndDirty()

	old := e.cursors.All()
	e.history.Clear()
	e.text = append(e.text[:0], text...)
	e.lines = linecache.Build(e.text)
	e.cursors.Replace(nil)
	e.sels.Clear()
	e.relayout()
	e.notifyText()
	e.cursorsMoved(old)
	e.listener.OnUndoPointChanged(0)
	return true
}

// Insert inserts text at offset at. An offset inside a grapheme cluster
// moves to the start of the cluster. Cursors at or after at shift past
// the inserted text.
func (e *Engine) Insert(at int, text string) bool {
	at = e.snap(e.clamp(at))
	return e.edit("insert", func() error {
		return e.insert(at, []byte(text))
	})
}

// Delete removes the text in [begin, end). Offsets are clamped and may be
// given in either order.
func (e *Engine) Delete(begin, end int) bool {
	begin, end = e.clampRange(begin, end)
	return e.edit("delete", func() error {
		if begin == end {
			return ErrNoChange
		}
		return e.delete(begin, end)
	})
}

// InsertAtCursors types text at every cursor. Selected text is deleted
// first. Every cursor ends up after its copy of the text.
func (e *Engine) InsertAtCursors(text string) bool {
	return e.edit("insert at cursors", func() error {
		var removed int
		for _, r := range e.sels.Ranges() {
			removed += r.Len()
		}
		grow := len(text)*e.cursors.Len() - removed
		if len(e.text)+grow > e.maxTextLength {
			return ErrTextTooLong
		}

		if removed > 0 {
			if err := e.deleteSelection(); err != nil {
				return err
			}
		}
		if text == "" {
			return nil
		}

		b := []byte(text)
		offsets := e.cursors.Offsets()
		for i := len(offsets) - 1; i >= 0; i-- {
			if err := e.insert(offsets[i], b); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteBackward deletes the selection if there is one, otherwise the
// grapheme cluster before every cursor.
func (e *Engine) DeleteBackward() bool {
	return e.edit("delete backward", func() error {
		if e.sels.HasSelection() {
			return e.deleteSelection()
		}
		offsets := e.cursors.Offsets()
		changed := false
		for i := len(offsets) - 1; i >= 0; i-- {
			end := offsets[i]
			if end == 0 {
				continue
			}
			if err := e.delete(e.prevBoundary(end), end); err != nil {
				return err
			}
			changed = true
		}
		if !changed {
			return ErrNoChange
		}
		return nil
	})
}

// DeleteForward deletes the selection if there is one, otherwise the
// grapheme cluster after every cursor.
func (e *Engine) DeleteForward() bool {
	return e.edit("delete forward", func() error {
		if e.sels.HasSelection() {
			return e.deleteSelection()
		}
		offsets := e.cursors.Offsets()
		changed := false
		for i := len(offsets) - 1; i >= 0; i-- {
			begin := offsets[i]
			if begin >= len(e.text) {
				continue
			}
			if err := e.delete(begin, textutil.NextBoundary(e.text, begin)); err != nil {
				return err
			}
			changed = true
		}
		if !changed {
			return ErrNoChange
		}
		return nil
	})
}

// DeleteSelection deletes every selected region and clears the selections.
func (e *Engine) DeleteSelection() bool {
	return e.edit("delete selection", e.deleteSelection)
}

// edit runs op as one edit. Without an open undo point, op gets a point of
// its own. Notifications are batched until op returns.
func (e *Engine) edit(name string, op func() error) bool {
	implicit := !e.history.IsOpen()
	if implicit {
		if err := e.history.Prepare(e.captureState()); err != nil {
			e.log.Debug("%s: %v", name, err)
		}
	}

	e.BeginDirty()
	defer e.EndDirty()

	err := op()
	if err != nil {
		e.log.Debug("%s: %v", name, err)
	}

	if implicit {
		if e.history.Pending() > 0 {
			e.commit()
		} else {
			e.history.Abort()
		}
	}
	return err == nil
}

// insert is the single insertion primitive. It records the change in the
// open undo point and updates every derived structure.
func (e *Engine) insert(at int, text []byte) error {
	if at < 0 || at > len(e.text) {
		return fmt.Errorf("insert at %d of %d: %w", at, len(e.text), ErrOffsetOutOfRange)
	}
	if len(text) == 0 {
		return nil
	}
	if len(e.text)+len(text) > e.maxTextLength {
		return ErrTextTooLong
	}

	e.text = slices.Insert(e.text, at, text...)
	e.lines.ApplyInsert(at, text)
	e.history.Record(history.InsertChange(at, text))
	e.cursors.AdjustForInsert(at, len(text))
	e.sels.AdjustForInsert(at, len(text))
	e.textChanged(at)
	return nil
}

// delete is the single deletion primitive.
func (e *Engine) delete(begin, end int) error {
	if begin < 0 || end > len(e.text) || begin > end {
		return fmt.Errorf("delete [%d,%d) of %d: %w", begin, end, len(e.text), ErrOffsetOutOfRange)
	}
	if begin == end {
		return nil
	}

	removed := slices.Clone(e.text[begin:end])
	e.text = slices.Delete(e.text, begin, end)
	e.lines.ApplyDelete(begin, end)
	e.history.Record(history.DeleteChange(begin, end, removed))

	del := cursor.Range{Begin: begin, End: end}
	e.cursors.AdjustForDelete(del)
	e.sels.AdjustForDelete(del)
	e.textChanged(begin)
	return nil
}

// deleteSelection removes the selected regions from last to first so that
// earlier offsets stay valid.
func (e *Engine) deleteSelection() error {
	ranges := slices.Clone(e.sels.Ranges())
	if len(ranges) == 0 {
		return ErrNoSelection
	}
	e.invalidateRanges(ranges)
	for i := len(ranges) - 1; i >= 0; i-- {
		if err := e.delete(ranges[i].Begin, ranges[i].End); err != nil {
			return err
		}
	}
	e.sels.Clear()
	return nil
}

// prevBoundary returns the start of the grapheme cluster before i.
func (e *Engine) prevBoundary(i int) int {
	if i <= 0 {
		return 0
	}
	from := e.lines.FirstChar(e.lines.FindLine(i - 1))
	return textutil.PrevBoundary(e.text, from, i)
}

// replayer applies undo and redo changes to the engine.
type replayer struct {
	e *Engine
}

func (r replayer) ReplayInsert(at int, text []byte) bool {
	return r.e.insert(at, text) == nil
}

func (r replayer) ReplayDelete(begin, end int) bool {
	return r.e.delete(begin, end) == nil
}

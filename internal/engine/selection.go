package engine

import (
	"slices"
	"strings"

	"github.com/dshills/textlayout/internal/engine/textutil"
)

// ============================================================================
// Selections
// ============================================================================

// Selections returns a copy of the selections in the order they were
// opened.
func (e *Engine) Selections() []Selection {
	return e.sels.All()
}

// HasSelection returns true if any selection is non-empty.
func (e *Engine) HasSelection() bool {
	return e.sels.HasSelection()
}

// BeginSelection opens a new empty selection anchored at offset.
func (e *Engine) BeginSelection(offset int) bool {
	if offset < 0 || offset > len(e.text) {
		return false
	}
	e.sels.Begin(offset)
	return true
}

// SetSelectionEndPoint moves the end of the most recently opened
// selection. It returns false if there is none.
func (e *Engine) SetSelectionEndPoint(offset int) bool {
	if offset < 0 || offset > len(e.text) {
		return false
	}
	last, ok := e.sels.Last()
	if !ok {
		return false
	}
	e.BeginDirty()
	defer e.EndDirty()
	e.invalidateChars(min(last.Low(), offset), max(last.High(), offset))
	return e.sels.SetEndPoint(offset)
}

// AddSelection adds the selection [begin, end). Offsets are clamped.
func (e *Engine) AddSelection(begin, end int) bool {
	begin, end = e.clamp(begin), e.clamp(end)
	s := Selection{Begin: begin, End: end}
	e.sels.Add(s)
	e.invalidateChars(s.Low(), s.High())
	return true
}

// ClearSelections removes every selection.
func (e *Engine) ClearSelections() {
	e.BeginDirty()
	defer e.EndDirty()
	e.clearSelections()
}

func (e *Engine) clearSelections() {
	if e.sels.Len() == 0 {
		return
	}
	e.invalidateRanges(e.sels.Ranges())
	e.sels.Clear()
}

// SelectWord replaces the selections with the word around every cursor and
// moves each cursor to the end of its word. It returns false if no cursor
// touches a word.
func (e *Engine) SelectWord() bool {
	return e.selectAround(func(off int) (int, int) {
		return textutil.WordAt(e.text, off)
	})
}

// SelectLine replaces the selections with the raw line of every cursor,
// including its terminator.
func (e *Engine) SelectLine() bool {
	return e.selectAround(func(off int) (int, int) {
		line := e.lines.FindLine(off)
		end := len(e.text)
		if line+1 < e.lines.Count() {
			end = e.lines.FirstChar(line + 1)
		}
		return e.lines.FirstChar(line), end
	})
}

// SelectAll selects the whole text and leaves one cursor at its end.
func (e *Engine) SelectAll() bool {
	e.BeginDirty()
	defer e.EndDirty()

	old := e.cursors.All()
	e.clearSelections()
	e.sels.Add(Selection{Begin: 0, End: len(e.text)})
	e.cursors.Replace([]Cursor{e.navigator(e.cursorView).place(len(e.text))})
	e.invalidateAll()
	e.cursorsMoved(old)
	return len(e.text) > 0
}

// SelectedText returns the selected text. Disjoint regions are joined
// with newlines in text order.
func (e *Engine) SelectedText() string {
	ranges := e.sels.Ranges()
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = string(e.text[r.Begin:r.End])
	}
	return strings.Join(parts, "\n")
}

func (e *Engine) selectAround(span func(off int) (int, int)) bool {
	e.BeginDirty()
	defer e.EndDirty()

	old := e.cursors.All()
	e.clearSelections()

	n := e.navigator(e.cursorView)
	moved := slices.Clone(old)
	found := false
	for i, c := range old {
		begin, end := span(c.CharAbs)
		if begin == end {
			continue
		}
		found = true
		e.sels.Add(Selection{Begin: begin, End: end})
		moved[i] = n.place(end)
	}
	e.cursors.Replace(moved)
	e.invalidateRanges(e.sels.Ranges())
	e.cursorsMoved(old)
	return found
}

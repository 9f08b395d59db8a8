package cursor

import (
	"fmt"
	"slices"
	"sort"
)

// Selection is a selected region. Begin is where the selection was opened
// and End is the moving end point; Begin may be greater than End.
type Selection struct {
	Begin int
	End   int
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Begin == s.End
}

// Low returns the lower bound of the selection.
func (s Selection) Low() int {
	return min(s.Begin, s.End)
}

// High returns the upper bound of the selection.
func (s Selection) High() int {
	return max(s.Begin, s.End)
}

// Normalize returns a forward selection (Begin <= End).
func (s Selection) Normalize() Selection {
	if s.Begin <= s.End {
		return s
	}
	return Selection{Begin: s.End, End: s.Begin}
}

// Range returns the selection as a normalized range.
func (s Selection) Range() Range {
	return Range{Begin: s.Low(), End: s.High()}
}

// Contains reports whether offset is selected. Empty selections contain
// nothing.
func (s Selection) Contains(offset int) bool {
	return offset >= s.Low() && offset < s.High()
}

// Clamp limits both ends to [0, max].
func (s Selection) Clamp(max int) Selection {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > max {
			return max
		}
		return v
	}
	return Selection{Begin: clamp(s.Begin), End: clamp(s.End)}
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	return fmt.Sprintf("Selection(%d..%d)", s.Begin, s.End)
}

// Selections is an insertion-ordered list of independent selections.
// Begin and SetEndPoint operate on the most recently opened selection.
// The zero value is an empty list.
type Selections struct {
	items []Selection

	// merged caches the union of non-empty selections, sorted.
	merged []Range
	stale  bool
}

// Begin opens a new zero-length selection at offset.
func (ss *Selections) Begin(offset int) {
	ss.items = append(ss.items, Selection{Begin: offset, End: offset})
	ss.stale = true
}

// SetEndPoint moves the end point of the most recently opened selection.
// It reports false if there is no selection.
func (ss *Selections) SetEndPoint(offset int) bool {
	if len(ss.items) == 0 {
		return false
	}
	ss.items[len(ss.items)-1].End = offset
	ss.stale = true
	return true
}

// Add appends a selection.
func (ss *Selections) Add(s Selection) {
	ss.items = append(ss.items, s)
	ss.stale = true
}

// Replace sets the selections wholesale, preserving the given order.
func (ss *Selections) Replace(items []Selection) {
	ss.items = slices.Clone(items)
	ss.stale = true
}

// Clear removes every selection.
func (ss *Selections) Clear() {
	ss.items = nil
	ss.merged = nil
	ss.stale = false
}

// Len returns the number of selections, including empty ones.
func (ss *Selections) Len() int {
	return len(ss.items)
}

// All returns a copy of the selections in insertion order.
func (ss *Selections) All() []Selection {
	return slices.Clone(ss.items)
}

// Last returns the most recently opened selection.
func (ss *Selections) Last() (Selection, bool) {
	if len(ss.items) == 0 {
		return Selection{}, false
	}
	return ss.items[len(ss.items)-1], true
}

// HasSelection returns true if any selection is non-empty.
func (ss *Selections) HasSelection() bool {
	return len(ss.Ranges()) > 0
}

// Ranges returns the union of all non-empty selections as sorted,
// non-overlapping ranges.
func (ss *Selections) Ranges() []Range {
	if ss.stale {
		ss.merged = mergeRanges(ss.items)
		ss.stale = false
	}
	return ss.merged
}

// Selected reports whether offset lies in any selection.
func (ss *Selections) Selected(offset int) bool {
	ranges := ss.Ranges()
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].End > offset })
	return i < len(ranges) && ranges[i].Begin <= offset
}

// NextBoundary returns the first offset after offset where selection
// membership changes, or -1 if it never does.
func (ss *Selections) NextBoundary(offset int) int {
	ranges := ss.Ranges()
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].End > offset })
	if i == len(ranges) {
		return -1
	}
	if ranges[i].Begin > offset {
		return ranges[i].Begin
	}
	return ranges[i].End
}

// AdjustForDelete repositions every selection after del is removed.
// Selections whose text was entirely removed are dropped.
func (ss *Selections) AdjustForDelete(del Range) {
	if del.IsEmpty() {
		return
	}
	kept := ss.items[:0]
	for _, s := range ss.items {
		if adjusted, ok := AdjustSelection(s, del); ok {
			kept = append(kept, adjusted)
		}
	}
	ss.items = kept
	ss.stale = true
}

// AdjustForInsert shifts every selection for n bytes inserted at at.
func (ss *Selections) AdjustForInsert(at, n int) {
	if n == 0 {
		return
	}
	for i, s := range ss.items {
		ss.items[i] = ShiftSelectionForInsert(s, at, n)
	}
	ss.stale = true
}

// Clamp limits every selection to [0, max].
func (ss *Selections) Clamp(max int) {
	for i, s := range ss.items {
		ss.items[i] = s.Clamp(max)
	}
	ss.stale = true
}

func mergeRanges(items []Selection) []Range {
	var ranges []Range
	for _, s := range items {
		if !s.IsEmpty() {
			ranges = append(ranges, s.Range())
		}
	}
	if len(ranges) <= 1 {
		return ranges
	}

	slices.SortFunc(ranges, func(a, b Range) int { return a.Begin - b.Begin })

	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Begin <= last.End {
			last.End = max(last.End, r.End)
		} else {
			merged = append(merged, r)
		}
	}
	return merged
}

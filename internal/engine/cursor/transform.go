package cursor

// Range is a half-open byte range [Begin, End).
type Range struct {
	Begin int
	End   int
}

// Len returns the length of the range.
func (r Range) Len() int {
	if r.End < r.Begin {
		return 0
	}
	return r.End - r.Begin
}

// IsEmpty returns true if the range has no extent.
func (r Range) IsEmpty() bool {
	return r.End <= r.Begin
}

// Contains reports whether offset lies in [Begin, End).
func (r Range) Contains(offset int) bool {
	return offset >= r.Begin && offset < r.End
}

// Relation classifies a range against a deleted range.
type Relation uint8

const (
	// RelBefore: the range ends at or before the deletion start.
	RelBefore Relation = iota
	// RelOverlapLeft: the range starts before the deletion and ends inside it.
	RelOverlapLeft
	// RelInside: the range lies entirely within the deletion.
	RelInside
	// RelContains: the range strictly surrounds the deletion.
	RelContains
	// RelOverlapRight: the range starts inside the deletion and ends after it.
	RelOverlapRight
	// RelAfter: the range starts at or after the deletion end.
	RelAfter
)

// String returns the relation name.
func (r Relation) String() string {
	switch r {
	case RelBefore:
		return "before"
	case RelOverlapLeft:
		return "overlap-left"
	case RelInside:
		return "inside"
	case RelContains:
		return "contains"
	case RelOverlapRight:
		return "overlap-right"
	case RelAfter:
		return "after"
	default:
		return "unknown"
	}
}

// Classify returns how r relates to the deleted range del.
// r must be normalized. An empty r is treated as a point.
func Classify(r, del Range) Relation {
	switch {
	case r.End <= del.Begin && r.Begin < del.Begin:
		return RelBefore
	case r.Begin == r.End && r.Begin <= del.Begin:
		return RelBefore
	case r.Begin >= del.End:
		return RelAfter
	case r.Begin >= del.Begin && r.End <= del.End:
		return RelInside
	case r.Begin < del.Begin && r.End > del.End:
		return RelContains
	case r.Begin < del.Begin:
		return RelOverlapLeft
	default:
		return RelOverlapRight
	}
}

// AdjustOffset returns where offset lands after del is removed.
// Offsets inside the deletion collapse to its start.
func AdjustOffset(offset int, del Range) int {
	switch {
	case offset <= del.Begin:
		return offset
	case offset >= del.End:
		return offset - del.Len()
	default:
		return del.Begin
	}
}

// ShiftForInsert returns where offset lands after n bytes are inserted at
// at. Offsets at the insertion point move with the text.
func ShiftForInsert(offset, at, n int) int {
	if offset >= at {
		return offset + n
	}
	return offset
}

// AdjustSelection repositions s after del is removed. The orientation of s
// is preserved. ok is false when a non-empty selection lost all its text.
func AdjustSelection(s Selection, del Range) (adjusted Selection, ok bool) {
	if del.IsEmpty() {
		return s, true
	}
	r := s.Range()
	n := del.Len()

	switch Classify(r, del) {
	case RelBefore:
	case RelAfter:
		r.Begin -= n
		r.End -= n
	case RelInside:
		r.Begin = del.Begin
		r.End = del.Begin
	case RelContains:
		r.End -= n
	case RelOverlapLeft:
		r.End = del.Begin
	case RelOverlapRight:
		r.Begin = del.Begin
		r.End -= n
	}

	wasEmpty := s.IsEmpty()
	if s.Begin <= s.End {
		adjusted = Selection{Begin: r.Begin, End: r.End}
	} else {
		adjusted = Selection{Begin: r.End, End: r.Begin}
	}
	return adjusted, wasEmpty || !adjusted.IsEmpty()
}

// ShiftSelectionForInsert repositions s after n bytes are inserted at at.
// An insertion exactly at the high end does not grow the selection.
func ShiftSelectionForInsert(s Selection, at, n int) Selection {
	if s.IsEmpty() {
		p := ShiftForInsert(s.Begin, at, n)
		return Selection{Begin: p, End: p}
	}
	lo, hi := s.Low(), s.High()
	if lo >= at {
		lo += n
	}
	if hi > at {
		hi += n
	}
	if s.Begin <= s.End {
		return Selection{Begin: lo, End: hi}
	}
	return Selection{Begin: hi, End: lo}
}

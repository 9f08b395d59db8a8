// Package stack provides a generic FILO arena.
//
// A Stack hands out offsets (Marks) instead of pointers so that records
// stored in it can refer to each other by position. Space is reclaimed only
// from the top, either by Pop or by rewinding to a previously taken Mark.
// The undo history keeps its change literals, snapshots and node headers in
// stacks of this type.
//
// A Stack may be given a capacity limit. A Push that would exceed it fails
// with ErrExhausted and leaves the stack unchanged, which lets callers model
// allocation failure and roll back a partially written record.
package stack

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned when a push would exceed the stack's limit.
var ErrExhausted = errors.New("stack capacity exhausted")

// Mark is a position in a Stack.
type Mark int

// Stack is a growable FILO arena of T.
// The zero value is an empty, unlimited stack.
type Stack[T any] struct {
	items []T
	limit int
}

// New creates a stack holding at most limit items.
// A limit of zero or less means unlimited.
func New[T any](limit int) *Stack[T] {
	if limit < 0 {
		limit = 0
	}
	return &Stack[T]{limit: limit}
}

// Len returns the number of items on the stack.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Limit returns the capacity limit (0 = unlimited).
func (s *Stack[T]) Limit() int {
	return s.limit
}

// SetLimit changes the capacity limit. Items already stored are kept even
// if they exceed the new limit; only later pushes are affected.
func (s *Stack[T]) SetLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	s.limit = limit
}

// Mark returns the current top of the stack.
func (s *Stack[T]) Mark() Mark {
	return Mark(len(s.items))
}

// Push appends items and returns the mark of the first one.
func (s *Stack[T]) Push(items ...T) (Mark, error) {
	at := Mark(len(s.items))
	if s.limit > 0 && len(s.items)+len(items) > s.limit {
		return at, fmt.Errorf("push %d onto %d/%d: %w", len(items), len(s.items), s.limit, ErrExhausted)
	}
	s.items = append(s.items, items...)
	return at, nil
}

// Pop removes the top n items and returns them.
// n is clamped to the stack length.
func (s *Stack[T]) Pop(n int) []T {
	if n <= 0 {
		return nil
	}
	if n > len(s.items) {
		n = len(s.items)
	}
	top := len(s.items) - n
	out := make([]T, n)
	copy(out, s.items[top:])
	s.truncate(top)
	return out
}

// Rewind discards everything above m. Rewinding to a mark above the
// current top is a no-op.
func (s *Stack[T]) Rewind(m Mark) {
	if m < 0 {
		m = 0
	}
	if int(m) >= len(s.items) {
		return
	}
	s.truncate(int(m))
}

// At returns the item at m. The zero value is returned for an out of
// range mark.
func (s *Stack[T]) At(m Mark) T {
	var zero T
	if m < 0 || int(m) >= len(s.items) {
		return zero
	}
	return s.items[m]
}

// Set overwrites the item at m. It reports whether m was in range.
func (s *Stack[T]) Set(m Mark, v T) bool {
	if m < 0 || int(m) >= len(s.items) {
		return false
	}
	s.items[m] = v
	return true
}

// Slice returns a copy of n items starting at m.
// Out of range requests are clamped.
func (s *Stack[T]) Slice(m Mark, n int) []T {
	if m < 0 || n <= 0 || int(m) >= len(s.items) {
		return nil
	}
	end := int(m) + n
	if end > len(s.items) {
		end = len(s.items)
	}
	out := make([]T, end-int(m))
	copy(out, s.items[m:end])
	return out
}

// Drop removes the bottom n items and moves the rest down. Marks taken
// before the call are n lower afterwards. n is clamped to the stack length.
func (s *Stack[T]) Drop(n int) {
	if n <= 0 {
		return
	}
	n = min(n, len(s.items))
	s.truncate(copy(s.items, s.items[n:]))
}

// Reset empties the stack.
func (s *Stack[T]) Reset() {
	s.truncate(0)
}

func (s *Stack[T]) truncate(n int) {
	var zero T
	for i := n; i < len(s.items); i++ {
		s.items[i] = zero
	}
	s.items = s.items[:n]
}

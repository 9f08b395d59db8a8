package stack

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPushReturnsMarkOfFirstItem(t *testing.T) {
	s := New[byte](0)

	m1, err := s.Push('a', 'b')
	if err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	m2, err := s.Push('c')
	if err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	if m1 != 0 || m2 != 2 {
		t.Errorf("marks = %d, %d, want 0, 2", m1, m2)
	}
	if got := string(s.Slice(m1, 3)); got != "abc" {
		t.Errorf("Slice = %q, want %q", got, "abc")
	}
}

func TestPushBeyondLimit(t *testing.T) {
	s := New[int](3)

	if _, err := s.Push(1, 2); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	_, err := s.Push(3, 4)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("Push over limit error = %v, want ErrExhausted", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len after failed push = %d, want 2", s.Len())
	}
	if _, err := s.Push(3); err != nil {
		t.Errorf("Push within limit failed: %v", err)
	}
}

func TestRewind(t *testing.T) {
	s := New[string](0)
	_, _ = s.Push("a", "b")
	m := s.Mark()
	_, _ = s.Push("c", "d", "e")

	s.Rewind(m)
	if s.Len() != 2 {
		t.Errorf("Len after rewind = %d, want 2", s.Len())
	}

	// Rewinding above the top does nothing.
	s.Rewind(10)
	if s.Len() != 2 {
		t.Errorf("Len after rewind above top = %d, want 2", s.Len())
	}

	if diff := cmp.Diff([]string{"a", "b"}, s.Slice(0, 10)); diff != "" {
		t.Errorf("Slice mismatch (-want +got):\n%s", diff)
	}
}

func TestDrop(t *testing.T) {
	s := New[string](4)
	_, _ = s.Push("a", "b", "c", "d")

	s.Drop(3)
	if diff := cmp.Diff([]string{"d"}, s.Slice(0, 10)); diff != "" {
		t.Errorf("Slice after Drop mismatch (-want +got):\n%s", diff)
	}
	if m, err := s.Push("e", "f", "g"); err != nil || m != 1 {
		t.Errorf("Push after Drop = (%d, %v), want (1, nil)", m, err)
	}

	s.Drop(0)
	if s.Len() != 4 {
		t.Errorf("Len after Drop(0) = %d, want 4", s.Len())
	}
	s.Drop(10)
	if s.Len() != 0 {
		t.Errorf("Len after Drop(10) = %d, want 0", s.Len())
	}
}

func TestPop(t *testing.T) {
	s := New[int](0)
	_, _ = s.Push(1, 2, 3, 4)

	got := s.Pop(2)
	if diff := cmp.Diff([]int{3, 4}, got); diff != "" {
		t.Errorf("Pop mismatch (-want +got):\n%s", diff)
	}
	if got := s.Pop(10); len(got) != 2 {
		t.Errorf("Pop(10) returned %d items, want 2", len(got))
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestAtAndSet(t *testing.T) {
	s := New[int](0)
	_, _ = s.Push(10, 20)

	if !s.Set(1, 25) {
		t.Fatal("Set(1) should succeed")
	}
	if got := s.At(1); got != 25 {
		t.Errorf("At(1) = %d, want 25", got)
	}
	if s.Set(5, 1) {
		t.Error("Set out of range should fail")
	}
	if got := s.At(-1); got != 0 {
		t.Errorf("At(-1) = %d, want 0", got)
	}
}

func TestSliceIsACopy(t *testing.T) {
	s := New[byte](0)
	m, _ := s.Push([]byte("hello")...)

	b := s.Slice(m, 5)
	b[0] = 'j'

	if got := string(s.Slice(m, 5)); got != "hello" {
		t.Errorf("arena modified through slice: %q", got)
	}
}

func TestSetLimitKeepsExistingItems(t *testing.T) {
	s := New[int](0)
	_, _ = s.Push(1, 2, 3)
	s.SetLimit(2)

	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
	if _, err := s.Push(4); !errors.Is(err, ErrExhausted) {
		t.Errorf("Push after lowering limit error = %v, want ErrExhausted", err)
	}
	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", s.Len())
	}
}

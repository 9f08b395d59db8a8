package history

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dshills/textlayout/internal/engine/cursor"
	"github.com/dshills/textlayout/internal/engine/stack"
)

// testDoc is a minimal document that records through a History.
type testDoc struct {
	text []byte
	h    *History
}

func (d *testDoc) ReplayInsert(at int, text []byte) bool {
	if at < 0 || at > len(d.text) {
		return false
	}
	d.text = slices.Insert(d.text, at, text...)
	return true
}

func (d *testDoc) ReplayDelete(begin, end int) bool {
	if begin < 0 || end > len(d.text) || begin > end {
		return false
	}
	d.text = slices.Delete(d.text, begin, end)
	return true
}

func (d *testDoc) insert(at int, s string) {
	d.ReplayInsert(at, []byte(s))
	d.h.Record(InsertChange(at, []byte(s)))
}

func (d *testDoc) delete(begin, end int) {
	removed := slices.Clone(d.text[begin:end])
	d.ReplayDelete(begin, end)
	d.h.Record(DeleteChange(begin, end, removed))
}

func state(offsets ...int) State {
	var s State
	for _, o := range offsets {
		s.Cursors = append(s.Cursors, cursor.At(o))
	}
	return s
}

func newDoc(text string, opts Options) *testDoc {
	return &testDoc{text: []byte(text), h: New(opts)}
}

var equateEmpty = cmpopts.EquateEmpty()

// Change Tests

func TestChangeInvert(t *testing.T) {
	ins := InsertChange(3, []byte("abc"))
	if ins.End != 6 {
		t.Errorf("InsertChange End = %d, want 6", ins.End)
	}

	inv := ins.Invert()
	if inv.Kind != Delete || inv.Begin != 3 || inv.End != 6 {
		t.Errorf("Invert = %v, want delete[3,6)", inv)
	}
	if inv.Invert().Kind != Insert {
		t.Error("double Invert should be an insert")
	}
}

// History Tests

func TestUndoRestoresTextAndCursor(t *testing.T) {
	d := newDoc("", Options{})

	if err := d.h.Prepare(state(0)); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	d.insert(0, "abc")
	if err := d.h.Commit(state(3)); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	got, err := d.h.Undo(d)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if string(d.text) != "" {
		t.Errorf("text after undo = %q, want empty", d.text)
	}
	if diff := cmp.Diff(state(0), got, equateEmpty); diff != "" {
		t.Errorf("restored state mismatch (-want +got):\n%s", diff)
	}

	got, err = d.h.Redo(d)
	if err != nil {
		t.Fatalf("Redo failed: %v", err)
	}
	if string(d.text) != "abc" {
		t.Errorf("text after redo = %q, want %q", d.text, "abc")
	}
	if diff := cmp.Diff(state(3), got, equateEmpty); diff != "" {
		t.Errorf("redo state mismatch (-want +got):\n%s", diff)
	}
}

func TestUndoReplaysInReverse(t *testing.T) {
	d := newDoc("xyz", Options{})

	d.h.Prepare(state(0))
	d.insert(0, "ab")
	d.delete(1, 3)
	d.insert(1, "Q")
	d.h.Commit(state(2))

	if string(d.text) != "aQyz" {
		t.Fatalf("text = %q, want %q", d.text, "aQyz")
	}
	if _, err := d.h.Undo(d); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if string(d.text) != "xyz" {
		t.Errorf("text after undo = %q, want %q", d.text, "xyz")
	}
	if _, err := d.h.Redo(d); err != nil {
		t.Fatalf("Redo failed: %v", err)
	}
	if string(d.text) != "aQyz" {
		t.Errorf("text after redo = %q, want %q", d.text, "aQyz")
	}
}

func TestRoundTripManyPoints(t *testing.T) {
	d := newDoc("", Options{})

	type snapshot struct {
		text  string
		state State
	}
	snaps := []snapshot{{"", state(0)}}

	edits := []func(){
		func() { d.insert(0, "hello") },
		func() { d.insert(5, " world") },
		func() { d.delete(0, 1) },
		func() { d.insert(0, "J") },
		func() { d.delete(5, 11) },
		func() { d.insert(5, "\nnext line") },
	}
	for i, edit := range edits {
		before := snaps[len(snaps)-1].state
		after := state(i+1, 2*i)
		after.Selections = []cursor.Selection{{Begin: i, End: 0}}
		after.AppData = []byte{byte(i)}

		d.h.Prepare(before)
		edit()
		if err := d.h.Commit(after); err != nil {
			t.Fatalf("Commit %d failed: %v", i, err)
		}
		snaps = append(snaps, snapshot{string(d.text), after})
	}

	for i := len(edits); i > 0; i-- {
		got, err := d.h.Undo(d)
		if err != nil {
			t.Fatalf("Undo %d failed: %v", i, err)
		}
		want := snaps[i-1]
		if string(d.text) != want.text {
			t.Errorf("undo %d text = %q, want %q", i, d.text, want.text)
		}
		if diff := cmp.Diff(want.state, got, equateEmpty); diff != "" {
			t.Errorf("undo %d state mismatch (-want +got):\n%s", i, diff)
		}
	}
	if _, err := d.h.Undo(d); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("extra Undo error = %v, want ErrNothingToUndo", err)
	}

	for i := 1; i <= len(edits); i++ {
		got, err := d.h.Redo(d)
		if err != nil {
			t.Fatalf("Redo %d failed: %v", i, err)
		}
		if string(d.text) != snaps[i].text {
			t.Errorf("redo %d text = %q, want %q", i, d.text, snaps[i].text)
		}
		if diff := cmp.Diff(snaps[i].state, got, equateEmpty); diff != "" {
			t.Errorf("redo %d state mismatch (-want +got):\n%s", i, diff)
		}
	}
	if _, err := d.h.Redo(d); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("extra Redo error = %v, want ErrNothingToRedo", err)
	}
}

func TestCommitAfterUndoDiscardsRedoTail(t *testing.T) {
	d := newDoc("", Options{})

	for _, s := range []string{"a", "b", "c"} {
		d.h.Prepare(state())
		d.insert(len(d.text), s)
		d.h.Commit(state())
	}
	d.h.Undo(d)
	d.h.Undo(d)

	d.h.Prepare(state())
	d.insert(1, "X")
	d.h.Commit(state())

	if d.h.Len() != 2 || d.h.Index() != 2 {
		t.Errorf("Len/Index = %d/%d, want 2/2", d.h.Len(), d.h.Index())
	}
	if d.h.CanRedo() {
		t.Error("CanRedo should be false after a commit")
	}
	if d.h.Bytes() != 2 {
		t.Errorf("Bytes = %d, want 2 (tail reclaimed)", d.h.Bytes())
	}
	if diff := cmp.Diff([]Change{InsertChange(1, []byte("X"))}, d.h.Changes(1)); diff != "" {
		t.Errorf("Changes(1) mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyCommitAddsNothing(t *testing.T) {
	h := New(Options{})

	h.Prepare(state(1))
	if err := h.Commit(state(1)); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if h.Len() != 0 || h.CanUndo() {
		t.Errorf("Len = %d, CanUndo = %v, want 0, false", h.Len(), h.CanUndo())
	}
	if h.IsOpen() {
		t.Error("point should be closed after Commit")
	}
}

func TestPrepareWhileOpen(t *testing.T) {
	d := newDoc("", Options{})

	d.h.Prepare(state(0))
	d.insert(0, "a")
	if err := d.h.Prepare(state(9)); !errors.Is(err, ErrAlreadyPrepared) {
		t.Errorf("second Prepare error = %v, want ErrAlreadyPrepared", err)
	}
	if d.h.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", d.h.Pending())
	}
	d.h.Commit(state(1))

	got, _ := d.h.Undo(d)
	if diff := cmp.Diff(state(0), got, equateEmpty); diff != "" {
		t.Errorf("first before-state should be kept (-want +got):\n%s", diff)
	}
}

func TestCommitWithoutPrepare(t *testing.T) {
	h := New(Options{})
	if err := h.Commit(state()); !errors.Is(err, ErrNotPrepared) {
		t.Errorf("Commit error = %v, want ErrNotPrepared", err)
	}
	if h.Record(InsertChange(0, []byte("x"))) {
		t.Error("Record without an open point should be rejected")
	}
}

func TestAbort(t *testing.T) {
	d := newDoc("", Options{})

	d.h.Prepare(state())
	d.insert(0, "abc")
	d.h.Abort()

	if d.h.IsOpen() || d.h.Len() != 0 {
		t.Errorf("IsOpen = %v, Len = %d, want false, 0", d.h.IsOpen(), d.h.Len())
	}
	if string(d.text) != "abc" {
		t.Errorf("Abort should not touch text, got %q", d.text)
	}
}

func TestUndoWhileOpen(t *testing.T) {
	d := newDoc("", Options{})
	d.h.Prepare(state())
	if _, err := d.h.Undo(d); !errors.Is(err, ErrAlreadyPrepared) {
		t.Errorf("Undo error = %v, want ErrAlreadyPrepared", err)
	}
}

func TestCommitTooLargeEmptiesHistory(t *testing.T) {
	d := newDoc("", Options{MaxBytes: 8})

	d.h.Prepare(state())
	d.insert(0, "abcd")
	if err := d.h.Commit(state()); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	d.h.Prepare(state())
	d.insert(4, "0123456789")
	err := d.h.Commit(state())
	if !errors.Is(err, stack.ErrExhausted) {
		t.Fatalf("Commit error = %v, want ErrExhausted", err)
	}

	if d.h.Len() != 0 || d.h.Index() != 0 || d.h.Bytes() != 0 {
		t.Errorf("Len/Index/Bytes = %d/%d/%d, want 0/0/0", d.h.Len(), d.h.Index(), d.h.Bytes())
	}
	if string(d.text) != "abcd0123456789" {
		t.Errorf("text = %q, mutation should be kept", d.text)
	}
	if d.h.IsOpen() {
		t.Error("failed commit should close the point")
	}
	if _, err := d.h.Undo(d); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo error = %v, want ErrNothingToUndo", err)
	}

	// A small point fits again.
	d.h.Prepare(state())
	d.insert(0, "z")
	if err := d.h.Commit(state()); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	// Oversized host data is refused the same way.
	d.h.Prepare(state())
	d.insert(0, "y")
	err = d.h.Commit(State{AppData: []byte("0123456789")})
	if !errors.Is(err, stack.ErrExhausted) {
		t.Fatalf("Commit error = %v, want ErrExhausted", err)
	}
	if d.h.Bytes() != 0 || d.h.Len() != 0 {
		t.Errorf("Bytes/Len = %d/%d, want 0/0", d.h.Bytes(), d.h.Len())
	}
}

func TestMaxPointsDropsOldest(t *testing.T) {
	d := newDoc("", Options{MaxPoints: 2})

	for i, s := range []string{"a", "b", "c"} {
		d.h.Prepare(state(i))
		d.insert(0, s)
		if err := d.h.Commit(state(i + 1)); err != nil {
			t.Fatalf("Commit %d failed: %v", i, err)
		}
	}
	if d.h.Len() != 2 || d.h.Index() != 2 {
		t.Fatalf("Len/Index = %d/%d, want 2/2", d.h.Len(), d.h.Index())
	}

	for i, want := range []struct {
		text   string
		cursor int
	}{{"ba", 2}, {"a", 1}} {
		st, err := d.h.Undo(d)
		if err != nil {
			t.Fatalf("Undo %d failed: %v", i, err)
		}
		if string(d.text) != want.text {
			t.Errorf("Undo %d text = %q, want %q", i, d.text, want.text)
		}
		if diff := cmp.Diff(state(want.cursor), st, equateEmpty); diff != "" {
			t.Errorf("Undo %d state mismatch (-want +got):\n%s", i, diff)
		}
	}
	if _, err := d.h.Undo(d); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo error = %v, want ErrNothingToUndo", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := d.h.Redo(d); err != nil {
			t.Fatalf("Redo %d failed: %v", i, err)
		}
	}
	if string(d.text) != "cba" {
		t.Errorf("text after redo = %q, want %q", d.text, "cba")
	}
}

func TestMaxBytesDropsOldest(t *testing.T) {
	d := newDoc("", Options{MaxBytes: 8})

	for _, s := range []string{"abcd", "efgh", "ij"} {
		d.h.Prepare(state())
		d.insert(len(d.text), s)
		if err := d.h.Commit(state()); err != nil {
			t.Fatalf("Commit %q failed: %v", s, err)
		}
	}
	if d.h.Len() != 2 || d.h.Bytes() != 6 {
		t.Fatalf("Len/Bytes = %d/%d, want 2/6", d.h.Len(), d.h.Bytes())
	}
	if got := string(d.h.Changes(0)[0].Text); got != "efgh" {
		t.Errorf("oldest kept change = %q, want %q", got, "efgh")
	}

	for d.h.CanUndo() {
		if _, err := d.h.Undo(d); err != nil {
			t.Fatalf("Undo failed: %v", err)
		}
	}
	if string(d.text) != "abcd" {
		t.Errorf("text = %q, want %q", d.text, "abcd")
	}
}

func TestEvictionAfterUndo(t *testing.T) {
	d := newDoc("", Options{MaxPoints: 2})

	for _, s := range []string{"a", "b"} {
		d.h.Prepare(state())
		d.insert(len(d.text), s)
		d.h.Commit(state())
	}
	d.h.Undo(d)

	// The redo tail goes first, so nothing old needs evicting.
	d.h.Prepare(state())
	d.insert(1, "c")
	d.h.Commit(state())
	d.h.Prepare(state())
	d.insert(2, "d")
	if err := d.h.Commit(state()); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	if d.h.Len() != 2 || d.h.Index() != 2 || d.h.CanRedo() {
		t.Errorf("Len/Index/CanRedo = %d/%d/%v, want 2/2/false", d.h.Len(), d.h.Index(), d.h.CanRedo())
	}
	d.h.Undo(d)
	d.h.Undo(d)
	if string(d.text) != "a" {
		t.Errorf("text = %q, want %q", d.text, "a")
	}
}

func TestClear(t *testing.T) {
	d := newDoc("", Options{})
	d.h.Prepare(state())
	d.insert(0, "abc")
	d.h.Commit(state())
	d.h.Prepare(state())

	d.h.Clear()

	if d.h.Len() != 0 || d.h.Index() != 0 || d.h.Bytes() != 0 {
		t.Errorf("Len/Index/Bytes = %d/%d/%d, want 0/0/0", d.h.Len(), d.h.Index(), d.h.Bytes())
	}
	if d.h.IsOpen() || d.h.CanUndo() || d.h.CanRedo() {
		t.Error("Clear should leave an empty closed history")
	}
}

func TestRecordCopiesText(t *testing.T) {
	d := newDoc("", Options{})
	buf := []byte("abc")

	d.h.Prepare(state())
	d.ReplayInsert(0, buf)
	d.h.Record(InsertChange(0, buf))
	buf[0] = 'z'
	d.h.Commit(state())

	if got := string(d.h.Changes(0)[0].Text); got != "abc" {
		t.Errorf("recorded text = %q, want %q", got, "abc")
	}
}

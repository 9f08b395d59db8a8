package history

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dshills/textlayout/internal/engine/cursor"
	"github.com/dshills/textlayout/internal/engine/stack"
)

// Common errors for history operations.
var (
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNothingToRedo   = errors.New("nothing to redo")
	ErrNotPrepared     = errors.New("no undo point is open")
	ErrAlreadyPrepared = errors.New("an undo point is already open")
	ErrReplayFailed    = errors.New("replaying a change failed")
)

// Options bounds the history arenas. Zero values mean unlimited. When a
// bound is reached the oldest points are dropped.
type Options struct {
	// MaxBytes bounds the bytes of change text and host data kept.
	MaxBytes int

	// MaxPoints bounds the number of undo points kept.
	MaxPoints int
}

// changeRec is a change whose text lives in the byte arena.
type changeRec struct {
	kind  Kind
	begin int
	end   int
	text  stack.Mark
	n     int
}

// stateRec locates a State in the arenas.
type stateRec struct {
	cursors  stack.Mark
	nCursors int
	sels     stack.Mark
	nSels    int
	app      stack.Mark
	nApp     int
}

// marks is the top of every arena at one moment.
type marks struct {
	bytes   stack.Mark
	changes stack.Mark
	cursors stack.Mark
	sels    stack.Mark
	nodes   stack.Mark
}

func (m marks) sub(o marks) marks {
	return marks{
		bytes:   m.bytes - o.bytes,
		changes: m.changes - o.changes,
		cursors: m.cursors - o.cursors,
		sels:    m.sels - o.sels,
		nodes:   m.nodes - o.nodes,
	}
}

func (r stateRec) sub(o marks) stateRec {
	r.cursors -= o.cursors
	r.sels -= o.sels
	r.app -= o.bytes
	return r
}

// node is one committed undo point.
type node struct {
	prev, next int
	base       marks
	before     stateRec
	after      stateRec
	changes    stack.Mark
	nChanges   int
}

// History is a linear undo/redo log.
type History struct {
	bytes   *stack.Stack[byte]
	changes *stack.Stack[changeRec]
	cursors *stack.Stack[cursor.Cursor]
	sels    *stack.Stack[cursor.Selection]
	nodes   *stack.Stack[node]

	// current is the number of applied nodes.
	current int

	open    bool
	before  State
	pending []Change
}

// New creates an empty history.
func New(opts Options) *History {
	return &History{
		bytes:   stack.New[byte](opts.MaxBytes),
		changes: stack.New[changeRec](0),
		cursors: stack.New[cursor.Cursor](0),
		sels:    stack.New[cursor.Selection](0),
		nodes:   stack.New[node](opts.MaxPoints),
	}
}

// SetOptions changes the budgets for later commits.
func (h *History) SetOptions(opts Options) {
	h.bytes.SetLimit(opts.MaxBytes)
	h.nodes.SetLimit(opts.MaxPoints)
}

// Prepare opens an undo point with the given before-state.
// Opening a point while one is already open fails and keeps the first.
func (h *History) Prepare(before State) error {
	if h.open {
		return ErrAlreadyPrepared
	}
	h.open = true
	h.before = before.Clone()
	h.pending = h.pending[:0]
	return nil
}

// IsOpen reports whether an undo point is open.
func (h *History) IsOpen() bool {
	return h.open
}

// Record appends a change to the open point. It reports false when no
// point is open.
func (h *History) Record(c Change) bool {
	if !h.open {
		return false
	}
	c.Text = slices.Clone(c.Text)
	h.pending = append(h.pending, c)
	return true
}

// Pending returns the number of changes recorded in the open point.
func (h *History) Pending() int {
	return len(h.pending)
}

// Abort discards the open point without touching the log.
func (h *History) Abort() {
	h.open = false
	h.before = State{}
	h.pending = h.pending[:0]
}

// Commit closes the open point with the given after-state. A point with no
// changes adds nothing. When a budget is reached the oldest points are
// dropped until the new one fits. A point larger than a whole budget
// cannot be stored: the history is left empty, since older points no
// longer line up with the text, and the error wraps stack.ErrExhausted.
func (h *History) Commit(after State) error {
	if !h.open {
		return ErrNotPrepared
	}
	before, pending := h.before, h.pending
	h.Abort()

	if len(pending) == 0 {
		return nil
	}

	h.truncate()
	for {
		err := h.push(before, after, pending)
		if err == nil {
			break
		}
		if !errors.Is(err, stack.ErrExhausted) || h.nodes.Len() == 0 {
			return fmt.Errorf("commit undo point %d: %w", h.current, err)
		}
		h.evictOldest()
	}

	if h.current > 0 {
		prev := h.nodes.At(stack.Mark(h.current - 1))
		prev.next = h.current
		h.nodes.Set(stack.Mark(h.current-1), prev)
	}
	h.current++
	return nil
}

// push writes one node on top of the arenas. On failure every arena is
// rewound to where it stood before the call.
func (h *History) push(before, after State, pending []Change) error {
	base := h.mark()
	n := node{prev: h.current - 1, next: -1, base: base}
	err := func() error {
		var err error
		if n.changes, n.nChanges, err = h.pushChanges(pending); err != nil {
			return err
		}
		if n.before, err = h.pushState(before); err != nil {
			return err
		}
		if n.after, err = h.pushState(after); err != nil {
			return err
		}
		_, err = h.nodes.Push(n)
		return err
	}()
	if err != nil {
		h.rewind(base)
	}
	return err
}

// evictOldest drops the oldest point and rebases the marks of every
// remaining record. The oldest point always starts at the bottom of every
// arena.
func (h *History) evictOldest() {
	if h.nodes.Len() == 0 {
		return
	}
	end := h.mark()
	if h.nodes.Len() > 1 {
		end = h.nodes.At(1).base
	}

	h.bytes.Drop(int(end.bytes))
	h.changes.Drop(int(end.changes))
	h.cursors.Drop(int(end.cursors))
	h.sels.Drop(int(end.sels))
	h.nodes.Drop(int(end.nodes))

	for i := 0; i < h.changes.Len(); i++ {
		rec := h.changes.At(stack.Mark(i))
		rec.text -= end.bytes
		h.changes.Set(stack.Mark(i), rec)
	}
	for i := 0; i < h.nodes.Len(); i++ {
		n := h.nodes.At(stack.Mark(i))
		n.prev--
		if n.next >= 0 {
			n.next--
		}
		n.base = n.base.sub(end)
		n.changes -= end.changes
		n.before = n.before.sub(end)
		n.after = n.after.sub(end)
		h.nodes.Set(stack.Mark(i), n)
	}
	h.current = max(h.current-1, 0)
}

// Undo reverts the most recently applied point and returns its
// before-state. Changes are replayed newest first, each inverted.
func (h *History) Undo(r Replayer) (State, error) {
	if h.open {
		return State{}, ErrAlreadyPrepared
	}
	if h.current == 0 {
		return State{}, ErrNothingToUndo
	}

	n := h.nodes.At(stack.Mark(h.current - 1))
	changes := h.loadChanges(n)
	for i := len(changes) - 1; i >= 0; i-- {
		if !changes[i].Invert().Apply(r) {
			return State{}, fmt.Errorf("undo %s: %w", changes[i], ErrReplayFailed)
		}
	}

	h.current--
	return h.loadState(n.before), nil
}

// Redo reapplies the next point and returns its after-state.
func (h *History) Redo(r Replayer) (State, error) {
	if h.open {
		return State{}, ErrAlreadyPrepared
	}
	if h.current >= h.nodes.Len() {
		return State{}, ErrNothingToRedo
	}

	n := h.nodes.At(stack.Mark(h.current))
	for _, c := range h.loadChanges(n) {
		if !c.Apply(r) {
			return State{}, fmt.Errorf("redo %s: %w", c, ErrReplayFailed)
		}
	}

	h.current++
	return h.loadState(n.after), nil
}

// CanUndo returns true if there is a point to undo.
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true if there is a point to redo.
func (h *History) CanRedo() bool {
	return h.current < h.nodes.Len()
}

// Index returns the number of applied points.
func (h *History) Index() int {
	return h.current
}

// Len returns the number of stored points, including the redo tail.
func (h *History) Len() int {
	return h.nodes.Len()
}

// Bytes returns the number of bytes held in the byte arena.
func (h *History) Bytes() int {
	return h.bytes.Len()
}

// Changes returns the changes of point i (0-based, oldest first).
func (h *History) Changes(i int) []Change {
	if i < 0 || i >= h.nodes.Len() {
		return nil
	}
	return h.loadChanges(h.nodes.At(stack.Mark(i)))
}

// Clear removes every point and aborts any open one.
func (h *History) Clear() {
	h.Abort()
	h.rewind(marks{})
	h.current = 0
}

// truncate drops the redo tail.
func (h *History) truncate() {
	if h.current >= h.nodes.Len() {
		return
	}
	h.rewind(h.nodes.At(stack.Mark(h.current)).base)
	if h.current > 0 {
		prev := h.nodes.At(stack.Mark(h.current - 1))
		prev.next = -1
		h.nodes.Set(stack.Mark(h.current-1), prev)
	}
}

func (h *History) mark() marks {
	return marks{
		bytes:   h.bytes.Mark(),
		changes: h.changes.Mark(),
		cursors: h.cursors.Mark(),
		sels:    h.sels.Mark(),
		nodes:   h.nodes.Mark(),
	}
}

func (h *History) rewind(m marks) {
	h.bytes.Rewind(m.bytes)
	h.changes.Rewind(m.changes)
	h.cursors.Rewind(m.cursors)
	h.sels.Rewind(m.sels)
	h.nodes.Rewind(m.nodes)
}

func (h *History) pushChanges(changes []Change) (stack.Mark, int, error) {
	recs := make([]changeRec, len(changes))
	for i, c := range changes {
		m, err := h.bytes.Push(c.Text...)
		if err != nil {
			return 0, 0, err
		}
		recs[i] = changeRec{kind: c.Kind, begin: c.Begin, end: c.End, text: m, n: len(c.Text)}
	}
	m, err := h.changes.Push(recs...)
	return m, len(recs), err
}

func (h *History) pushState(s State) (stateRec, error) {
	var rec stateRec
	var err error
	if rec.cursors, err = h.cursors.Push(s.Cursors...); err != nil {
		return rec, err
	}
	rec.nCursors = len(s.Cursors)
	if rec.sels, err = h.sels.Push(s.Selections...); err != nil {
		return rec, err
	}
	rec.nSels = len(s.Selections)
	if rec.app, err = h.bytes.Push(s.AppData...); err != nil {
		return rec, err
	}
	rec.nApp = len(s.AppData)
	return rec, nil
}

func (h *History) loadChanges(n node) []Change {
	recs := h.changes.Slice(n.changes, n.nChanges)
	out := make([]Change, len(recs))
	for i, rec := range recs {
		out[i] = Change{
			Kind:  rec.kind,
			Begin: rec.begin,
			End:   rec.end,
			Text:  h.bytes.Slice(rec.text, rec.n),
		}
	}
	return out
}

func (h *History) loadState(rec stateRec) State {
	return State{
		Cursors:    h.cursors.Slice(rec.cursors, rec.nCursors),
		Selections: h.sels.Slice(rec.sels, rec.nSels),
		AppData:    h.bytes.Slice(rec.app, rec.nApp),
	}
}

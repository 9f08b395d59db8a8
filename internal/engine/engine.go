package engine

import (
	"slices"

	"github.com/dshills/textlayout/internal/engine/cursor"
	"github.com/dshills/textlayout/internal/engine/history"
	"github.com/dshills/textlayout/internal/engine/linecache"
	"github.com/dshills/textlayout/internal/engine/segment"
	"github.com/dshills/textlayout/internal/engine/style"
	"github.com/dshills/textlayout/internal/logging"
)

// Tokens registered for the built-in styles until the host replaces them.
const (
	DefaultStyleToken   = "default"
	SelectionStyleToken = "selection"
	CursorStyleToken    = "cursor"
)

// Engine is the aggregate root of a document: text, line table, styles,
// cursors, selections, undo history and the views onto it.
type Engine struct {
	text    []byte
	lines   *linecache.Cache
	styles  *style.Table
	cursors *cursor.Set
	sels    cursor.Selections
	history *history.History
	views   []*View

	defaultSlot   Slot
	selectionSlot Slot
	cursorSlot    Slot

	// cursorView is the view whose rows Cursor.Line counts. Nil means raw
	// lines.
	cursorView *View

	// Batching state. Notifications queue while depth > 0.
	dirtyDepth     int
	pendingText    bool
	pendingCursors bool

	// Configuration
	tabSize       int
	maxTextLength int
	undoOpts      history.Options
	wordWrap      bool
	measurer      Measurer
	highlighter   Highlighter
	listener      Listener
	undoState     UndoStateProvider
	log           *logging.Logger

	// Initialization
	initText string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		tabSize:       DefaultTabSize,
		maxTextLength: DefaultMaxTextLength,
		measurer:      style.CellMeasurer{},
		listener:      NopListener{},
		log:           logging.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.log = e.log.WithComponent("engine")
	e.styles = style.NewTable(e.measurer)
	e.defaultSlot = e.RegisterStyle(DefaultStyleToken)
	e.selectionSlot = e.RegisterStyle(SelectionStyleToken)
	e.cursorSlot = e.RegisterStyle(CursorStyleToken)

	if len(e.initText) > e.maxTextLength {
		e.log.Warn("initial text of %d bytes exceeds limit %d, truncated", len(e.initText), e.maxTextLength)
		e.initText = e.initText[:e.maxTextLength]
	}
	e.text = []byte(e.initText)
	e.initText = ""
	e.lines = linecache.Build(e.text)
	e.cursors = cursor.NewSet()
	e.history = history.New(e.undoOpts)
	e.repin()

	return e
}

// ============================================================================
// Text
// ============================================================================

// Text returns the full text.
func (e *Engine) Text() string {
	return string(e.text)
}

// TextLength returns the text length in bytes.
func (e *Engine) TextLength() int {
	return len(e.text)
}

// TextRange returns the text in [begin, end). Offsets are clamped and may
// be given in either order.
func (e *Engine) TextRange(begin, end int) string {
	begin, end = e.clampRange(begin, end)
	return string(e.text[begin:end])
}

// ============================================================================
// Lines
// ============================================================================

// LineCount returns the number of raw lines. It is at least 1.
func (e *Engine) LineCount() int {
	return e.lines.Count()
}

// LineFirstChar returns the offset of the first character of raw line i,
// or 0 if i is out of range.
func (e *Engine) LineFirstChar(i int) int {
	return e.lines.FirstChar(i)
}

// LineLastChar returns the offset of the line terminator of raw line i
// (the end of the text for the last line), or 0 if i is out of range.
func (e *Engine) LineLastChar(i int) int {
	return e.lines.LastChar(e.text, i)
}

// LineOfChar returns the raw line containing offset char.
// Offsets outside the text return 0.
func (e *Engine) LineOfChar(char int) int {
	if char < 0 || char > len(e.text) {
		return 0
	}
	return e.lines.FindLine(char)
}

// ============================================================================
// Styles
// ============================================================================

// RegisterStyle registers tok and returns its slot. Registering a known
// token refreshes its metrics and returns the same slot. Invalid tokens
// return InvalidSlot.
func (e *Engine) RegisterStyle(tok Token) Slot {
	slot, err := e.styles.Register(tok)
	if err != nil {
		e.log.Debug("register style %v: %v", tok, err)
		return InvalidSlot
	}
	return slot
}

// Style returns the style registered at slot.
func (e *Engine) Style(slot Slot) (Style, bool) {
	return e.styles.Get(slot)
}

// StyleCount returns the number of registered styles.
func (e *Engine) StyleCount() int {
	return e.styles.Len()
}

// SetDefaultStyle makes tok the style of unhighlighted text. Its space
// width drives tab expansion and its height is the row height.
func (e *Engine) SetDefaultStyle(tok Token) bool {
	slot := e.RegisterStyle(tok)
	if !slot.Valid() {
		return false
	}
	e.defaultSlot = slot
	e.relayout()
	return true
}

// SetSelectionStyle makes tok the background of selected text.
func (e *Engine) SetSelectionStyle(tok Token) bool {
	slot := e.RegisterStyle(tok)
	if !slot.Valid() {
		return false
	}
	e.selectionSlot = slot
	e.invalidateAll()
	return true
}

// SetCursorStyle makes tok the style carets are painted with.
func (e *Engine) SetCursorStyle(tok Token) bool {
	slot := e.RegisterStyle(tok)
	if !slot.Valid() {
		return false
	}
	e.cursorSlot = slot
	e.invalidateAll()
	return true
}

// SetTabSize sets the number of space widths per tab column.
func (e *Engine) SetTabSize(size int) bool {
	if size < 1 {
		return false
	}
	if size == e.tabSize {
		return true
	}
	e.tabSize = size
	e.relayout()
	return true
}

// TabSize returns the number of space widths per tab column.
func (e *Engine) TabSize() int {
	return e.tabSize
}

// SetMeasurer replaces the measurer and remeasures every style.
func (e *Engine) SetMeasurer(m Measurer) bool {
	if m == nil {
		return false
	}
	e.measurer = m
	e.styles.SetMeasurer(m)
	e.relayout()
	return true
}

// SetHighlighter replaces the highlight source. Nil disables highlighting.
func (e *Engine) SetHighlighter(h Highlighter) {
	e.highlighter = h
	e.relayout()
}

// Refresh reflows every wrapped view and repaints everything. Hosts call it
// after their highlighter's spans change.
func (e *Engine) Refresh() {
	e.relayout()
}

// ============================================================================
// Dirty batching
// ============================================================================

// BeginDirty opens a batch on the engine and every view. Batches nest;
// notifications are held until the outermost EndDirty.
func (e *Engine) BeginDirty() {
	e.dirtyDepth++
	for _, v := range e.views {
		v.dirty.Begin()
	}
}

// EndDirty closes a batch opened by BeginDirty. Unbalanced calls are
// ignored.
func (e *Engine) EndDirty() {
	if e.dirtyDepth == 0 {
		return
	}
	e.dirtyDepth--
	for _, v := range e.views {
		v.EndDirty()
	}
	if e.dirtyDepth == 0 {
		e.flush()
	}
}

// flush delivers queued text and cursor notifications.
func (e *Engine) flush() {
	if e.pendingText {
		e.pendingText = false
		e.listener.OnTextChanged()
	}
	if e.pendingCursors {
		e.pendingCursors = false
		for _, v := range e.views {
			e.listener.OnCursorMove(v)
		}
	}
}

func (e *Engine) notifyText() {
	e.pendingText = true
	if e.dirtyDepth == 0 {
		e.flush()
	}
}

func (e *Engine) notifyCursors() {
	e.pendingCursors = true
	if e.dirtyDepth == 0 {
		e.flush()
	}
}

// ============================================================================
// Internal layout helpers
// ============================================================================

func (e *Engine) defaultStyle() style.Style {
	st, _ := e.styles.Get(e.defaultSlot)
	return st
}

func (e *Engine) token(slot Slot) Token {
	st, ok := e.styles.Get(slot)
	if !ok {
		return nil
	}
	return st.Token
}

// layoutConfig returns the segment configuration used for measurement.
// Selection membership does not affect layout, so none is set.
func (e *Engine) layoutConfig() *segment.Config {
	return &segment.Config{
		Text:        e.text,
		Measurer:    e.measurer,
		Default:     e.defaultStyle(),
		TabSize:     e.tabSize,
		Highlighter: e.highlighter,
	}
}

// paintConfig is layoutConfig with selection boundaries.
func (e *Engine) paintConfig() *segment.Config {
	cfg := e.layoutConfig()
	cfg.Selector = &e.sels
	return cfg
}

// rowsOf returns the row table of v, or the raw lines when v is nil.
func (e *Engine) rowsOf(v *View) *linecache.Cache {
	if v == nil {
		return e.lines
	}
	return v.layout.Lines(e.lines)
}

// rowRange returns the character range [begin, end) of row r, excluding a
// line terminator.
func (e *Engine) rowRange(rows *linecache.Cache, r int) (int, int) {
	return rows.FirstChar(r), rows.LastChar(e.text, r)
}

// softStart reports whether row r begins in the middle of a raw line.
func (e *Engine) softStart(rows *linecache.Cache, r int) bool {
	if r <= 0 || r >= rows.Count() {
		return false
	}
	start := rows.FirstChar(r)
	return start > 0 && start <= len(e.text) && e.text[start-1] != '\n'
}

// cursorRow returns the row a cursor is displayed on. A pinned cursor at
// the soft start of a row reports the row before; every other cursor is on
// the row containing its offset.
func (e *Engine) cursorRow(rows *linecache.Cache, c Cursor) int {
	r := rows.FindLine(c.CharAbs)
	if c.Pinned && rows.FirstChar(r) == c.CharAbs && e.softStart(rows, r) {
		return r - 1
	}
	return r
}

// pinned reports whether c sits at the end of the row above its offset.
func (e *Engine) pinned(rows *linecache.Cache, c Cursor) bool {
	return e.cursorRow(rows, c) != rows.FindLine(c.CharAbs)
}

// xOf returns the x position of char on row r.
func (e *Engine) xOf(cfg *segment.Config, rows *linecache.Cache, r, char int) float32 {
	begin, end := e.rowRange(rows, r)
	return segment.XFromChar(cfg, begin, end, char)
}

// placeCursor recomputes the row and sticky x of c. A pin that no longer
// lands on a soft row start is dropped.
func (e *Engine) placeCursor(cfg *segment.Config, rows *linecache.Cache, c Cursor) Cursor {
	c.Line = e.cursorRow(rows, c)
	c.Pinned = c.Line != rows.FindLine(c.CharAbs)
	c.StickyX = e.xOf(cfg, rows, c.Line, c.CharAbs)
	return c
}

// repin recomputes the row and sticky x of every cursor from its offset.
// A pinned cursor that is still valid stays pinned.
func (e *Engine) repin() {
	cfg := e.layoutConfig()
	rows := e.rowsOf(e.cursorView)
	e.cursors.Clamp(len(e.text))
	e.cursors.MapInPlace(func(c Cursor) Cursor {
		return e.placeCursor(cfg, rows, c)
	})
}

// useView makes v the view cursor rows refer to. Pins belong to the rows
// of the previous view and are dropped.
func (e *Engine) useView(v *View) {
	if v == nil || v.closed || v == e.cursorView {
		return
	}
	e.cursorView = v
	e.unpin()
	e.repin()
}

// unpin clears the pin of every cursor.
func (e *Engine) unpin() {
	e.cursors.MapInPlace(func(c Cursor) Cursor {
		c.Pinned = false
		return c
	})
}

// relayout reflows every wrapped view and repaints everything.
func (e *Engine) relayout() {
	e.BeginDirty()
	defer e.EndDirty()
	for _, v := range e.views {
		v.reflow()
	}
	e.repin()
	e.invalidateAll()
}

func (e *Engine) invalidateAll() {
	for _, v := range e.views {
		v.invalidateFrom(0)
	}
}

// invalidateChars marks the rows spanning [begin, end] dirty in every view.
func (e *Engine) invalidateChars(begin, end int) {
	for _, v := range e.views {
		rows := e.rowsOf(v)
		v.invalidateRows(rows.FindLine(begin), rows.FindLine(end)+1)
	}
}

// invalidateCursors marks the caret rows of cs dirty in every view.
func (e *Engine) invalidateCursors(cs []Cursor) {
	for _, v := range e.views {
		rows := e.rowsOf(v)
		for _, c := range cs {
			r := e.cursorRow(rows, c)
			v.invalidateRows(r, r+1)
		}
	}
}

// invalidateRanges marks the rows spanning every range dirty.
func (e *Engine) invalidateRanges(ranges []cursor.Range) {
	for _, r := range ranges {
		e.invalidateChars(r.Begin, r.End)
	}
}

// textChanged updates every view after the text changed at offset from.
func (e *Engine) textChanged(from int) {
	lineStart := e.lines.FirstChar(e.lines.FindLine(from))
	for _, v := range e.views {
		v.reflow()
		v.invalidateFrom(e.rowsOf(v).FindLine(lineStart))
	}
	e.unpin()
	e.repin()
	e.notifyText()
	e.notifyCursors()
}

// cursorsMoved repaints the old and new caret rows.
func (e *Engine) cursorsMoved(old []Cursor) {
	if slices.Equal(old, e.cursors.All()) {
		return
	}
	e.invalidateCursors(old)
	e.invalidateCursors(e.cursors.All())
	e.notifyCursors()
}

func (e *Engine) clamp(off int) int {
	return min(max(off, 0), len(e.text))
}

func (e *Engine) clampRange(begin, end int) (int, int) {
	begin, end = e.clamp(begin), e.clamp(end)
	if begin > end {
		begin, end = end, begin
	}
	return begin, end
}

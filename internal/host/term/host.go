// Package term is a terminal host for the engine: it measures text in
// cells, paints views onto a tcell screen and maps keys to editing
// operations.
package term

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/textlayout/internal/engine"
	"github.com/dshills/textlayout/internal/highlight"
	"github.com/dshills/textlayout/internal/logging"
)

// Host owns one engine and one full-screen view. The bottom row of the
// screen is a status line.
type Host struct {
	screen tcell.Screen
	theme  *Theme
	log    *logging.Logger
	rules  []highlight.Rule

	e     *engine.Engine
	v     *engine.View
	spans *highlight.Spans

	pending     engine.Rect
	statusDirty bool
	textChanged bool
	cursorMoved bool
	undoIndex   int
	quit        bool
}

// Option configures a Host.
type Option func(*Host)

// WithTheme sets the color theme.
func WithTheme(t *Theme) Option {
	return func(h *Host) {
		if t != nil {
			h.theme = t
		}
	}
}

// WithRules sets the highlight rules. Nil disables highlighting.
func WithRules(rules []highlight.Rule) Option {
	return func(h *Host) {
		h.rules = rules
	}
}

// WithLogger sets the logger shared by the host and its engine.
func WithLogger(l *logging.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// New creates a host drawing on screen, which must already be
// initialized. engineOpts configure the engine; the host supplies its
// measurer, highlighter and listener.
func New(screen tcell.Screen, engineOpts []engine.Option, opts ...Option) *Host {
	h := &Host{
		screen: screen,
		theme:  DefaultTheme(),
		log:    logging.Nop(),
		rules:  highlight.GoRules(),
		spans:  highlight.New(),
	}
	for _, opt := range opts {
		opt(h)
	}

	all := append([]engine.Option{}, engineOpts...)
	all = append(all,
		engine.WithMeasurer(Measurer{}),
		engine.WithHighlighter(h.spans),
		engine.WithListener(h),
		engine.WithLogger(h.log),
	)
	h.e = engine.New(all...)
	h.rehighlight()

	w, ht := screen.Size()
	h.v = h.e.NewView(float32(w), float32(max(ht-1, 0)))
	h.statusDirty = true
	h.log.WithComponent("host").Debug("screen %dx%d", w, ht)
	return h
}

// Engine returns the host's engine.
func (h *Host) Engine() *engine.Engine {
	return h.e
}

// View returns the host's view.
func (h *Host) View() *engine.View {
	return h.v
}

// Run draws the screen and processes events until quit is requested or
// the screen is finalized.
func (h *Host) Run() {
	h.Draw()
	for !h.quit {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		h.HandleEvent(ev)
		h.Sync()
	}
}

// Quit reports whether the user asked to quit.
func (h *Host) Quit() bool {
	return h.quit
}

// Sync refreshes highlighting, keeps the caret visible and repaints what
// the engine invalidated.
func (h *Host) Sync() {
	if h.textChanged {
		h.textChanged = false
		h.rehighlight()
		h.e.Refresh()
	}
	if h.cursorMoved {
		h.cursorMoved = false
		h.v.ScrollToCursor()
		h.statusDirty = true
	}
	if !h.pending.IsEmpty() || h.statusDirty {
		h.Draw()
	}
}

// Draw paints the pending area of the view and the status line.
func (h *Host) Draw() {
	w, ht := h.screen.Size()
	clip := h.pending
	if clip.IsEmpty() {
		clip = engine.Rect{W: float32(w), H: float32(ht - 1)}
	}
	h.pending = engine.Rect{}
	h.v.Paint(h, clip)
	h.drawStatus(w, ht)

	caret := h.v.CaretRect(0)
	x, y := int(math32.Floor(caret.X)), int(math32.Floor(caret.Y))
	if x >= 0 && y >= 0 && x < w && y < ht-1 {
		h.screen.ShowCursor(x, y)
	} else {
		h.screen.HideCursor()
	}
	h.screen.Show()
}

func (h *Host) rehighlight() {
	if len(h.rules) == 0 {
		h.spans.Clear()
		return
	}
	if err := h.spans.Scan([]byte(h.e.Text()), h.rules); err != nil {
		h.log.Warn("highlight: %v", err)
	}
}

// status returns the text of the status line.
func (h *Host) status() string {
	c := h.e.Cursors()[0]
	line := h.e.LineOfChar(c.CharAbs)
	first := h.e.LineFirstChar(line)
	col := uniseg.GraphemeClusterCount(h.e.TextRange(first, c.CharAbs))

	wrap := "nowrap"
	if h.v.WordWrap() {
		wrap = "wrap"
	}
	s := fmt.Sprintf(" Ln %d, Col %d  %s  undo %d", line+1, col+1, wrap, h.undoIndex)
	if n := len(h.e.Cursors()); n > 1 {
		s += fmt.Sprintf("  %d cursors", n)
	}
	return s
}

func (h *Host) drawStatus(w, ht int) {
	h.statusDirty = false
	if ht < 1 {
		return
	}
	y := ht - 1
	for x := 0; x < w; x++ {
		h.screen.SetContent(x, y, ' ', nil, h.theme.Status)
	}
	x := 0
	for _, r := range h.status() {
		if x >= w {
			break
		}
		h.screen.SetContent(x, y, r, nil, h.theme.Status)
		x++
	}
}

// ============================================================================
// engine.Painter
// ============================================================================

// PaintText implements engine.Painter.
func (h *Host) PaintText(_ *engine.View, fg, bg engine.Token, text []byte, x, y float32) {
	st := h.theme.Style(fg, bg)
	w, _ := h.screen.Size()
	cx, cy := int(math32.Floor(x)), int(math32.Floor(y))
	cond := Measurer{}.condition()

	g := uniseg.NewGraphemes(string(text))
	for g.Next() && cx < w {
		runes := g.Runes()
		cw := cond.StringWidth(g.Str())
		if cx >= 0 && cw > 0 {
			h.screen.SetContent(cx, cy, runes[0], runes[1:], st)
		}
		cx += cw
	}
}

// PaintRect implements engine.Painter. The cursor token reverses the cell
// under each caret so that every caret of a multi-cursor set is visible.
func (h *Host) PaintRect(_ *engine.View, tok engine.Token, r engine.Rect) {
	x0 := int(math32.Floor(r.X))
	y0 := int(math32.Floor(r.Y))
	x1 := int(math32.Ceil(r.Right()))
	y1 := int(math32.Ceil(r.Bottom()))

	if tok == engine.CursorStyleToken {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				mainc, combc, st, _ := h.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
				h.screen.SetContent(x, y, mainc, combc, st.Reverse(true))
			}
		}
		return
	}

	st := tcell.StyleDefault.Foreground(h.theme.Foreground).Background(h.theme.Bg(tok))
	for y := y0; y < y1; y++ {
		for x := max(x0, 0); x < x1; x++ {
			h.screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

// ============================================================================
// engine.Listener
// ============================================================================

// OnDirty implements engine.Listener.
func (h *Host) OnDirty(_ *engine.View, r engine.Rect) {
	h.pending = h.pending.Union(r)
}

// OnTextChanged implements engine.Listener.
func (h *Host) OnTextChanged() {
	h.textChanged = true
}

// OnCursorMove implements engine.Listener.
func (h *Host) OnCursorMove(*engine.View) {
	h.cursorMoved = true
}

// OnUndoPointChanged implements engine.Listener.
func (h *Host) OnUndoPointChanged(index int) {
	h.undoIndex = index
	h.statusDirty = true
}

var (
	_ engine.Painter  = (*Host)(nil)
	_ engine.Listener = (*Host)(nil)
)

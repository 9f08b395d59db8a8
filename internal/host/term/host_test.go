package term

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textlayout/internal/engine"
	"github.com/dshills/textlayout/internal/highlight"
)

func newTestHost(t *testing.T, text string, w, h int) (*Host, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)

	host := New(s, []engine.Option{engine.WithText(text)})
	host.Draw()
	return host, s
}

func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		mainc, _, _, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		b.WriteRune(mainc)
	}
	return strings.TrimRight(b.String(), " ")
}

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mod)
}

func typeText(h *Host, text string) {
	for _, r := range text {
		h.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		h.Sync()
	}
}

func TestHostPaintsText(t *testing.T) {
	h, s := newTestHost(t, "hello\nworld", 20, 4)

	for y, want := range []string{"hello", "world", ""} {
		if got := row(s, y); got != want {
			t.Errorf("row %d = %q, want %q", y, got, want)
		}
	}
	if got := row(s, 3); !strings.HasPrefix(got, " Ln 1, Col 1  nowrap") {
		t.Errorf("status = %q", got)
	}
	if x, y, vis := s.GetCursor(); x != 0 || y != 0 || !vis {
		t.Errorf("GetCursor() = (%d, %d, %v), want (0, 0, true)", x, y, vis)
	}
	if w, ht := h.View().Size(); w != 20 || ht != 3 {
		t.Errorf("View().Size() = (%g, %g), want (20, 3)", w, ht)
	}
}

func TestHostTyping(t *testing.T) {
	h, s := newTestHost(t, "hello\nworld", 20, 4)

	typeText(h, "xy")
	if got := h.Engine().Text(); got != "xyhello\nworld" {
		t.Errorf("Text() = %q, want %q", got, "xyhello\nworld")
	}
	if got := row(s, 0); got != "xyhello" {
		t.Errorf("row 0 = %q, want %q", got, "xyhello")
	}
	if x, y, _ := s.GetCursor(); x != 2 || y != 0 {
		t.Errorf("GetCursor() = (%d, %d), want (2, 0)", x, y)
	}
	if got := row(s, 3); !strings.HasPrefix(got, " Ln 1, Col 3") {
		t.Errorf("status = %q", got)
	}

	h.HandleEvent(key(tcell.KeyEnter, tcell.ModNone))
	h.HandleEvent(key(tcell.KeyBackspace2, tcell.ModNone))
	h.HandleEvent(key(tcell.KeyDelete, tcell.ModNone))
	h.Sync()
	if got := h.Engine().Text(); got != "xyello\nworld" {
		t.Errorf("Text() = %q, want %q", got, "xyello\nworld")
	}
}

func TestHostUndoRedo(t *testing.T) {
	h, s := newTestHost(t, "hello", 20, 3)

	typeText(h, "x")
	h.HandleEvent(key(tcell.KeyCtrlZ, tcell.ModCtrl))
	h.Sync()
	if got := row(s, 0); got != "hello" {
		t.Errorf("after undo row 0 = %q, want %q", got, "hello")
	}

	h.HandleEvent(key(tcell.KeyCtrlY, tcell.ModCtrl))
	h.Sync()
	if got := row(s, 0); got != "xhello" {
		t.Errorf("after redo row 0 = %q, want %q", got, "xhello")
	}
	if !strings.Contains(row(s, 2), "undo 1") {
		t.Errorf("status = %q, want undo 1", row(s, 2))
	}
}

func TestHostNavigationKeys(t *testing.T) {
	h, _ := newTestHost(t, "one two\nthree", 20, 4)
	e := h.Engine()

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want int
	}{
		{"right", key(tcell.KeyRight, tcell.ModNone), 1},
		{"word right", key(tcell.KeyRight, tcell.ModCtrl), 4},
		{"end", key(tcell.KeyEnd, tcell.ModNone), 7},
		{"down", key(tcell.KeyDown, tcell.ModNone), 13},
		{"home", key(tcell.KeyHome, tcell.ModNone), 8},
		{"up", key(tcell.KeyUp, tcell.ModNone), 0},
		{"doc end", key(tcell.KeyEnd, tcell.ModCtrl), 13},
		{"word left", key(tcell.KeyLeft, tcell.ModCtrl), 8},
		{"left", key(tcell.KeyLeft, tcell.ModNone), 7},
		{"doc start", key(tcell.KeyHome, tcell.ModCtrl), 0},
	}
	for _, tt := range tests {
		h.HandleEvent(tt.ev)
		h.Sync()
		if got := e.Cursors()[0].CharAbs; got != tt.want {
			t.Errorf("%s: CharAbs = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestHostSelectionKeys(t *testing.T) {
	h, _ := newTestHost(t, "one two", 20, 3)
	e := h.Engine()

	h.HandleEvent(key(tcell.KeyRight, tcell.ModShift))
	h.HandleEvent(key(tcell.KeyRight, tcell.ModShift))
	if got := e.SelectedText(); got != "on" {
		t.Errorf("SelectedText() = %q, want %q", got, "on")
	}

	h.HandleEvent(key(tcell.KeyCtrlA, tcell.ModCtrl))
	if got := e.SelectedText(); got != "one two" {
		t.Errorf("SelectedText() = %q, want %q", got, "one two")
	}

	typeText(h, "z")
	if got := e.Text(); got != "z" {
		t.Errorf("Text() = %q, want %q", got, "z")
	}
}

func TestHostEscape(t *testing.T) {
	h, _ := newTestHost(t, "ab\ncd", 20, 4)

	h.HandleEvent(key(tcell.KeyDown, tcell.ModAlt))
	if n := len(h.Engine().Cursors()); n != 2 {
		t.Fatalf("len(Cursors()) = %d, want 2", n)
	}

	h.HandleEvent(key(tcell.KeyEscape, tcell.ModNone))
	if n := len(h.Engine().Cursors()); n != 1 {
		t.Errorf("len(Cursors()) = %d, want 1", n)
	}
	if h.Quit() {
		t.Error("first Escape quit with extra cursors")
	}

	h.HandleEvent(key(tcell.KeyEscape, tcell.ModNone))
	if !h.Quit() {
		t.Error("Quit() = false after Escape")
	}
}

func TestHostWordWrapToggle(t *testing.T) {
	h, s := newTestHost(t, "aaaa bbbb cccc dddd eeee", 20, 4)

	if got := row(s, 1); got != "" {
		t.Errorf("row 1 = %q, want empty before wrap", got)
	}
	h.HandleEvent(key(tcell.KeyCtrlW, tcell.ModCtrl))
	h.Sync()
	if !h.View().WordWrap() {
		t.Fatal("WordWrap() = false after ctrl+w")
	}
	if got := row(s, 1); !strings.HasSuffix(got, "eeee") {
		t.Errorf("row 1 = %q, want the wrapped tail", got)
	}
	if got := row(s, 3); !strings.HasPrefix(got, " Ln 1, Col 1  wrap") {
		t.Errorf("status = %q", got)
	}
}

func TestHostHighlightsKeywords(t *testing.T) {
	h, s := newTestHost(t, "x := 1\nfunc f() {}", 20, 4)

	_, _, st, _ := s.GetContent(0, 1) //nolint:staticcheck // GetContent is the correct API
	fg, _, _ := st.Decompose()
	if want := h.theme.Tokens[highlight.Keyword]; fg != want {
		t.Errorf("keyword fg = %v, want %v", fg, want)
	}

	_, _, st, _ = s.GetContent(0, 0) //nolint:staticcheck // GetContent is the correct API
	if _, _, attrs := st.Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Error("caret cell is not reversed")
	}
}

func TestHostMouse(t *testing.T) {
	h, _ := newTestHost(t, "hello\nworld", 20, 4)
	e := h.Engine()

	h.HandleEvent(tcell.NewEventMouse(3, 1, tcell.Button1, tcell.ModNone))
	if got := e.Cursors()[0].CharAbs; got != 9 {
		t.Errorf("CharAbs = %d, want 9", got)
	}

	h.HandleEvent(tcell.NewEventMouse(1, 0, tcell.Button1, tcell.ModCtrl))
	if n := len(e.Cursors()); n != 2 {
		t.Errorf("len(Cursors()) = %d, want 2", n)
	}

	if h.HandleEvent(tcell.NewEventMouse(1, 3, tcell.Button1, tcell.ModNone)) {
		t.Error("click on the status line was consumed")
	}
}

func TestHostResize(t *testing.T) {
	h, s := newTestHost(t, "hello", 20, 4)

	s.SetSize(10, 3)
	h.HandleEvent(tcell.NewEventResize(10, 3))
	h.Sync()
	if w, ht := h.View().Size(); w != 10 || ht != 2 {
		t.Errorf("View().Size() = (%g, %g), want (10, 2)", w, ht)
	}
	if got := row(s, 0); got != "hello" {
		t.Errorf("row 0 = %q, want %q", got, "hello")
	}
}

func TestHostPost(t *testing.T) {
	h, s := newTestHost(t, "a\tb", 20, 3)

	if err := h.Post(func(h *Host) { h.Engine().SetTabSize(2) }); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if !h.HandleEvent(s.PollEvent()) {
		t.Fatal("interrupt event not consumed")
	}
	if got := h.Engine().TabSize(); got != 2 {
		t.Errorf("TabSize() = %d, want 2", got)
	}
}

package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/textlayout/internal/engine"
	"github.com/dshills/textlayout/internal/highlight"
)

// Theme maps engine style tokens to terminal colors.
type Theme struct {
	Foreground tcell.Color
	Background tcell.Color
	Selection  tcell.Color
	Status     tcell.Style

	// Tokens holds the foreground of each highlight token.
	Tokens map[string]tcell.Color
}

// NewTheme builds a theme from hex colors. The selection background is
// the accent blended halfway into the background in Lab space.
func NewTheme(fg, bg, accent string) (*Theme, error) {
	f, err := parseHex(fg)
	if err != nil {
		return nil, err
	}
	b, err := parseHex(bg)
	if err != nil {
		return nil, err
	}
	a, err := parseHex(accent)
	if err != nil {
		return nil, err
	}
	return &Theme{
		Foreground: f,
		Background: b,
		Selection:  Blend(b, a, 0.5),
		Status:     tcell.StyleDefault.Foreground(b).Background(f),
		Tokens:     make(map[string]tcell.Color),
	}, nil
}

// DefaultTheme returns a dark theme with colors for the Go rules.
func DefaultTheme() *Theme {
	t, err := NewTheme("#d0d0d0", "#1c1c1c", "#3a6ea5")
	if err != nil {
		panic(err)
	}
	for tok, hex := range map[string]string{
		highlight.Keyword:  "#c678dd",
		highlight.String:   "#98c379",
		highlight.Comment:  "#5c6370",
		highlight.Number:   "#d19a66",
		highlight.Type:     "#e5c07b",
		highlight.Builtin:  "#61afef",
		highlight.Constant: "#56b6c2",
	} {
		c, _ := parseHex(hex)
		t.Tokens[tok] = c
	}
	return t
}

// Fg returns the foreground color of tok.
func (t *Theme) Fg(tok engine.Token) tcell.Color {
	if name, ok := tok.(string); ok {
		if c, ok := t.Tokens[name]; ok {
			return c
		}
	}
	return t.Foreground
}

// Bg returns the background color of tok.
func (t *Theme) Bg(tok engine.Token) tcell.Color {
	if tok == engine.SelectionStyleToken {
		return t.Selection
	}
	return t.Background
}

// Style returns the cell style for text drawn with fg on bg.
func (t *Theme) Style(fg, bg engine.Token) tcell.Style {
	return tcell.StyleDefault.Foreground(t.Fg(fg)).Background(t.Bg(bg))
}

// Blend mixes a toward b by f in Lab space. f is clamped to [0, 1].
func Blend(a, b tcell.Color, f float64) tcell.Color {
	f = min(max(f, 0), 1)
	return fromColorful(toColorful(a).BlendLab(toColorful(b), f))
}

func parseHex(s string) (tcell.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

package term

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/textlayout/internal/engine"
)

// Measurer measures text in terminal cells. Every grapheme cluster is as
// wide as runewidth reports for it and every row is one cell tall.
type Measurer struct {
	// EastAsianAmbiguousWide counts ambiguous-width runes as two cells.
	EastAsianAmbiguousWide bool
}

func (m Measurer) condition() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = m.EastAsianAmbiguousWide
	return c
}

func (m Measurer) clusterWidth(c *runewidth.Condition, cluster string) float32 {
	return float32(c.StringWidth(cluster))
}

// MeasureString implements engine.Measurer.
func (m Measurer) MeasureString(_ engine.Token, text []byte) (w, h float32) {
	return float32(m.condition().StringWidth(string(text))), 1
}

// CursorPosFromPoint implements engine.Measurer. Clusters split at their
// midpoint.
func (m Measurer) CursorPosFromPoint(_ engine.Token, text []byte, _, x float32) (float32, int) {
	c := m.condition()
	var pos float32
	i := 0
	g := uniseg.NewGraphemes(string(text))
	for g.Next() {
		w := m.clusterWidth(c, g.Str())
		if x < pos+w/2 {
			return pos, i
		}
		pos += w
		_, to := g.Positions()
		i = to
	}
	return pos, len(text)
}

// CursorPosFromChar implements engine.Measurer.
func (m Measurer) CursorPosFromChar(_ engine.Token, text []byte, charIndex int) float32 {
	c := m.condition()
	var pos float32
	g := uniseg.NewGraphemes(string(text))
	for g.Next() {
		from, _ := g.Positions()
		if from >= charIndex {
			break
		}
		pos += m.clusterWidth(c, g.Str())
	}
	return pos
}

var _ engine.Measurer = Measurer{}

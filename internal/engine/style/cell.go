package style

import "github.com/rivo/uniseg"

// CellMeasurer measures text in fixed-size cells. Each grapheme cluster is
// as wide as its East Asian width (1 or 2 cells, 0 for control clusters)
// and every line is one cell tall. It is the engine's default measurer and
// suits terminal hosts and tests.
type CellMeasurer struct{}

// MeasureString implements Measurer.
func (CellMeasurer) MeasureString(_ Token, text []byte) (w, h float32) {
	return float32(uniseg.StringWidth(string(text))), 1
}

// CursorPosFromPoint implements Measurer. The returned boundary is the
// one nearest to x; clusters split at their midpoint.
func (CellMeasurer) CursorPosFromPoint(_ Token, text []byte, _, x float32) (float32, int) {
	var pos float32
	i := 0
	state := -1
	for i < len(text) {
		cluster, _, width, newState := uniseg.FirstGraphemeCluster(text[i:], state)
		w := float32(width)
		if x < pos+w/2 {
			return pos, i
		}
		pos += w
		i += len(cluster)
		state = newState
	}
	return pos, len(text)
}

// CursorPosFromChar implements Measurer.
func (CellMeasurer) CursorPosFromChar(_ Token, text []byte, charIndex int) float32 {
	if charIndex > len(text) {
		charIndex = len(text)
	}
	var pos float32
	i := 0
	state := -1
	for i < charIndex {
		cluster, _, width, newState := uniseg.FirstGraphemeCluster(text[i:], state)
		pos += float32(width)
		i += len(cluster)
		state = newState
	}
	return pos
}

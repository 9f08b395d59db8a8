package segment

import "github.com/chewxy/math32"

// NextTabStop returns the first tab stop strictly after x.
func NextTabStop(x, tabWidth float32) float32 {
	if tabWidth <= 0 {
		return x
	}
	return (math32.Floor(x/tabWidth) + 1) * tabWidth
}

// tabStops returns the x position after each tab in a run starting at x.
func tabStops(x, tabWidth float32, n int) []float32 {
	stops := make([]float32, n)
	for i := range stops {
		x = NextTabStop(x, tabWidth)
		stops[i] = x
	}
	return stops
}

package segment

// CharFromX returns the character boundary of line [begin, end) nearest to
// x, and the x position of that boundary. Points past the end of the line
// map to end.
func CharFromX(cfg *Config, begin, end int, x float32) (int, float32) {
	it := New(cfg, begin, end, 0)
	for {
		seg, ok := it.Next()
		if !ok {
			return end, it.X()
		}
		if seg.Kind == EOL {
			return seg.Begin, seg.X
		}
		if x >= seg.X+seg.Width {
			continue
		}
		if x < seg.X {
			return seg.Begin, seg.X
		}

		switch seg.Kind {
		case Tab:
			prev := seg.X
			for i, stop := range tabStops(seg.X, cfg.TabWidth(), seg.End-seg.Begin) {
				if x < stop {
					if x-prev < stop-x {
						return seg.Begin + i, prev
					}
					return seg.Begin + i + 1, stop
				}
				prev = stop
			}
			return seg.End, prev
		default:
			if cfg.Measurer == nil {
				return seg.Begin, seg.X
			}
			posX, idx := cfg.Measurer.CursorPosFromPoint(seg.Token, cfg.Text[seg.Begin:seg.End], seg.Width, x-seg.X)
			return seg.Begin + idx, seg.X + posX
		}
	}
}

// XFromChar returns the x position of char within line [begin, end).
// Characters past the end of the line map to the end-of-line position.
func XFromChar(cfg *Config, begin, end, char int) float32 {
	it := New(cfg, begin, end, 0)
	for {
		seg, ok := it.Next()
		if !ok {
			return it.X()
		}
		if seg.Kind == EOL || char < seg.Begin {
			return seg.X
		}
		if char >= seg.End {
			continue
		}

		switch seg.Kind {
		case Tab:
			n := char - seg.Begin
			if n == 0 {
				return seg.X
			}
			return tabStops(seg.X, cfg.TabWidth(), n)[n-1]
		default:
			if cfg.Measurer == nil {
				return seg.X
			}
			return seg.X + cfg.Measurer.CursorPosFromChar(seg.Token, cfg.Text[seg.Begin:seg.End], char-seg.Begin)
		}
	}
}

// Width returns the total width of line [begin, end).
func Width(cfg *Config, begin, end int) float32 {
	it := New(cfg, begin, end, 0)
	for {
		if _, ok := it.Next(); !ok {
			return it.X()
		}
	}
}

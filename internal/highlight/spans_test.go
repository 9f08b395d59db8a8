package highlight

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/textlayout/internal/engine/segment"
	"github.com/dshills/textlayout/internal/engine/style"
)

func TestSpansAdd(t *testing.T) {
	s := New()
	if err := s.Add(8, 10, "str"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(2, 5, "kw"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(2, 5, "type"); err != nil {
		t.Fatalf("Add replacing: %v", err)
	}

	want := []Span{{Begin: 2, End: 5, Token: "type"}, {Begin: 8, End: 10, Token: "str"}}
	if diff := cmp.Diff(want, s.All()); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestSpansAddInvalid(t *testing.T) {
	s := New()
	tests := []struct {
		name       string
		begin, end int
	}{
		{"empty", 3, 3},
		{"reversed", 5, 2},
		{"negative", -1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Add(tt.begin, tt.end, "x"); !errors.Is(err, ErrInvalidSpan) {
				t.Errorf("Add(%d, %d) = %v, want ErrInvalidSpan", tt.begin, tt.end, err)
			}
		})
	}
}

func TestSpansAddOverlap(t *testing.T) {
	s := New()
	if err := s.Add(2, 5, "kw"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	tests := []struct {
		name       string
		begin, end int
		want       error
	}{
		{"overlap right", 4, 8, ErrOverlap},
		{"overlap left", 0, 3, ErrOverlap},
		{"contains", 0, 10, ErrOverlap},
		{"inside", 3, 4, ErrOverlap},
		{"adjacent after", 5, 8, nil},
		{"adjacent before", 0, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Add(tt.begin, tt.end, "x"); !errors.Is(err, tt.want) {
				t.Errorf("Add(%d, %d) = %v, want %v", tt.begin, tt.end, err, tt.want)
			}
		})
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestNextHighlight(t *testing.T) {
	s := New()
	s.Add(2, 5, "kw")
	s.Add(8, 10, "str")
	s.Add(12, 13, "num")

	type result struct {
		Begin, End int
		Token      style.Token
		OK         bool
	}
	tests := []struct {
		iChar int
		want  result
	}{
		{-3, result{2, 5, "kw", true}},
		{0, result{2, 5, "kw", true}},
		{1, result{2, 5, "kw", true}},
		{2, result{2, 5, "kw", true}},
		{4, result{2, 5, "kw", true}},
		{5, result{8, 10, "str", true}},
		{9, result{8, 10, "str", true}},
		{7, result{8, 10, "str", true}},
		{10, result{12, 13, "num", true}},
		{12, result{12, 13, "num", true}},
		{13, result{}},
		{100, result{}},
	}
	for _, tt := range tests {
		b, e, tok, ok := s.NextHighlight(tt.iChar)
		got := result{b, e, tok, ok}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("NextHighlight(%d) mismatch (-want +got):\n%s", tt.iChar, diff)
		}
	}
}

func TestSpansRemoveAndClear(t *testing.T) {
	s := New()
	s.Add(0, 3, "a")
	s.Add(4, 6, "b")

	if !s.Remove(0, 3) {
		t.Error("Remove(0, 3) = false, want true")
	}
	if s.Remove(0, 3) {
		t.Error("second Remove(0, 3) = true, want false")
	}
	if b, _, _, ok := s.NextHighlight(0); !ok || b != 4 {
		t.Errorf("NextHighlight(0) begin = %d, %v, want 4, true", b, ok)
	}

	if !s.Remove(4, 6) {
		t.Error("Remove(4, 6) = false, want true")
	}
	if s.maxEnd != 0 {
		t.Errorf("maxEnd after removing every span = %d, want 0", s.maxEnd)
	}
	s.Add(1, 2, "c")
	s.Add(7, 9, "d")
	s.Remove(7, 9)
	if s.maxEnd != 2 {
		t.Errorf("maxEnd = %d, want 2", s.maxEnd)
	}
	if _, _, _, ok := s.NextHighlight(2); ok {
		t.Error("NextHighlight(2) past the last span returned ok")
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", s.Len())
	}
	if _, _, _, ok := s.NextHighlight(0); ok {
		t.Error("NextHighlight on empty set returned ok")
	}
}

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Span
	}{
		{
			name: "builtin and comment",
			text: "x := len(s) // note",
			want: []Span{
				{Begin: 5, End: 8, Token: Builtin},
				{Begin: 12, End: 19, Token: Comment},
			},
		},
		{
			name: "leftmost match wins",
			text: `"func" // func`,
			want: []Span{
				{Begin: 0, End: 6, Token: String},
				{Begin: 7, End: 14, Token: Comment},
			},
		},
		{
			name: "no matches",
			text: "x + y",
			want: []Span{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			if err := s.Scan([]byte(tt.text), GoRules()); err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if diff := cmp.Diff(tt.want, s.All()); diff != "" {
				t.Errorf("spans mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSpansDriveSegments(t *testing.T) {
	text := []byte("x := len(s)")
	s := New()
	s.Scan(text, GoRules())

	cfg := &segment.Config{
		Text:        text,
		Measurer:    style.CellMeasurer{},
		Default:     style.Style{Token: "default", Metrics: style.Metrics{Height: 1, SpaceWidth: 1}},
		TabSize:     4,
		Highlighter: s,
	}

	type run struct {
		Begin, End int
		Token      style.Token
	}
	var got []run
	it := segment.New(cfg, 0, len(text), 0)
	for {
		seg, ok := it.Next()
		if !ok {
			break
		}
		if seg.Kind == segment.Text {
			got = append(got, run{seg.Begin, seg.End, seg.Token})
		}
	}

	want := []run{{0, 5, "default"}, {5, 8, Builtin}, {8, 11, "default"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func BenchmarkNextHighlight(b *testing.B) {
	s := New()
	const n = 100000
	for i := 0; i < n; i++ {
		if err := s.Add(i*10, i*10+4, "kw"); err != nil {
			b.Fatalf("Add: %v", err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Alternate between offsets inside spans and in the gaps.
		if _, _, _, ok := s.NextHighlight((i * 7) % ((n - 1) * 10)); !ok {
			b.Fatal("NextHighlight returned no span")
		}
	}
}

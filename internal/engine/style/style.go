// Package style manages the engine's style table.
//
// A style is an opaque host token (a font/colour handle the host understands)
// together with metrics measured once at registration: line height and the
// width of a space, which drives tab expansion. Styles live in a dense
// vector indexed by Slot; a token-to-slot map makes re-registration find the
// existing slot. Slots are never reused or renumbered.
package style

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNilToken is returned when registering a nil token.
	ErrNilToken = errors.New("nil style token")

	// ErrUncomparableToken is returned when a token cannot be used as a map key.
	ErrUncomparableToken = errors.New("style token is not comparable")
)

// Token is an opaque style handle supplied by the host.
// Tokens must be comparable.
type Token = any

// Slot is the dense index of a registered style.
type Slot int

// InvalidSlot is returned for unknown tokens.
const InvalidSlot Slot = -1

// Valid reports whether the slot refers to a style.
func (s Slot) Valid() bool {
	return s >= 0
}

// Measurer measures text on behalf of the engine.
// All widths are in host units.
type Measurer interface {
	// MeasureString returns the extent of text drawn with tok.
	MeasureString(tok Token, text []byte) (w, h float32)

	// CursorPosFromPoint returns the character boundary in text nearest to x
	// and its x position. maxWidth is the width of the whole run.
	CursorPosFromPoint(tok Token, text []byte, maxWidth, x float32) (posX float32, charIndex int)

	// CursorPosFromChar returns the x position of charIndex within text.
	CursorPosFromChar(tok Token, text []byte, charIndex int) float32
}

// Metrics are the measurements cached for a style.
type Metrics struct {
	Height     float32
	SpaceWidth float32
}

// Style is a registered style.
type Style struct {
	Slot    Slot
	Token   Token
	Metrics Metrics
}

// Table is the dense style table.
type Table struct {
	styles   []Style
	slots    map[Token]Slot
	measurer Measurer
}

// NewTable creates an empty table that measures with m.
func NewTable(m Measurer) *Table {
	return &Table{
		slots:    make(map[Token]Slot),
		measurer: m,
	}
}

// SetMeasurer replaces the measurer and refreshes every style's metrics.
func (t *Table) SetMeasurer(m Measurer) {
	t.measurer = m
	for i := range t.styles {
		t.styles[i].Metrics = t.measure(t.styles[i].Token)
	}
}

// Register adds tok to the table, or refreshes its metrics if it is already
// registered. The slot of an existing token is kept.
func (t *Table) Register(tok Token) (Slot, error) {
	if tok == nil {
		return InvalidSlot, ErrNilToken
	}
	if !reflect.TypeOf(tok).Comparable() {
		return InvalidSlot, fmt.Errorf("register %T: %w", tok, ErrUncomparableToken)
	}

	if slot, ok := t.slots[tok]; ok {
		t.styles[slot].Metrics = t.measure(tok)
		return slot, nil
	}

	slot := Slot(len(t.styles))
	t.styles = append(t.styles, Style{
		Slot:    slot,
		Token:   tok,
		Metrics: t.measure(tok),
	})
	t.slots[tok] = slot
	return slot, nil
}

// Get returns the style at slot.
func (t *Table) Get(slot Slot) (Style, bool) {
	if slot < 0 || int(slot) >= len(t.styles) {
		return Style{Slot: InvalidSlot}, false
	}
	return t.styles[slot], true
}

// Lookup returns the slot of tok, or InvalidSlot.
func (t *Table) Lookup(tok Token) Slot {
	if tok == nil || !reflect.TypeOf(tok).Comparable() {
		return InvalidSlot
	}
	if slot, ok := t.slots[tok]; ok {
		return slot
	}
	return InvalidSlot
}

// Len returns the number of registered styles.
func (t *Table) Len() int {
	return len(t.styles)
}

func (t *Table) measure(tok Token) Metrics {
	if t.measurer == nil {
		return Metrics{}
	}
	w, h := t.measurer.MeasureString(tok, []byte(" "))
	return Metrics{Height: h, SpaceWidth: w}
}

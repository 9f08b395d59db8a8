// Package textutil holds byte-offset helpers shared by the engine: grapheme
// cluster stepping and word classification.
package textutil

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// NextBoundary returns the offset just past the grapheme cluster at i.
// At or beyond the end of text it returns len(text).
func NextBoundary(text []byte, i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(text) {
		return len(text)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(text[i:], -1)
	if len(cluster) == 0 {
		return i + 1
	}
	return i + len(cluster)
}

// PrevBoundary returns the start of the grapheme cluster ending at i.
// Segmentation restarts at from, which must be a known cluster boundary at
// or before i (typically the start of the line).
func PrevBoundary(text []byte, from, i int) int {
	if i > len(text) {
		i = len(text)
	}
	if i <= 0 {
		return 0
	}
	if from < 0 || from >= i {
		from = 0
	}
	prev := from
	pos := from
	state := -1
	for pos < i {
		cluster, _, _, newState := uniseg.FirstGraphemeCluster(text[pos:], state)
		if len(cluster) == 0 {
			break
		}
		prev = pos
		pos += len(cluster)
		state = newState
	}
	return prev
}

// IsBoundary reports whether i falls on a grapheme cluster boundary,
// scanning from the known boundary from.
func IsBoundary(text []byte, from, i int) bool {
	if i <= 0 || i >= len(text) {
		return true
	}
	return NextBoundary(text, PrevBoundary(text, from, i)) == i
}

// Class is a word-navigation character class.
type Class uint8

const (
	// Space is whitespace, including line terminators.
	Space Class = iota
	// Symbol is punctuation and everything else that is not a word rune.
	Symbol
	// Word is letters, digits and underscore.
	Word
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case Space:
		return "space"
	case Symbol:
		return "symbol"
	case Word:
		return "word"
	default:
		return "unknown"
	}
}

// ClassOf classifies a rune.
func ClassOf(r rune) Class {
	switch {
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return Word
	case unicode.IsSpace(r):
		return Space
	default:
		return Symbol
	}
}

// ClassAt classifies the rune starting at i.
func ClassAt(text []byte, i int) Class {
	r, _ := utf8.DecodeRune(text[i:])
	return ClassOf(r)
}

func classBefore(text []byte, i int) (Class, int) {
	r, size := utf8.DecodeLastRune(text[:i])
	return ClassOf(r), size
}

// WordRight returns the offset reached by skipping the class run at i and
// then any whitespace.
func WordRight(text []byte, i int) int {
	if i < 0 {
		i = 0
	}
	if i >= len(text) {
		return len(text)
	}
	c := ClassAt(text, i)
	if c != Space {
		for i < len(text) && ClassAt(text, i) == c {
			_, size := utf8.DecodeRune(text[i:])
			i += size
		}
	}
	for i < len(text) && ClassAt(text, i) == Space {
		_, size := utf8.DecodeRune(text[i:])
		i += size
	}
	return i
}

// WordLeft returns the offset reached by skipping whitespace before i and
// then the class run before that.
func WordLeft(text []byte, i int) int {
	if i > len(text) {
		i = len(text)
	}
	for i > 0 {
		c, size := classBefore(text, i)
		if c != Space {
			break
		}
		i -= size
	}
	if i == 0 {
		return 0
	}
	c, _ := classBefore(text, i)
	for i > 0 {
		cc, size := classBefore(text, i)
		if cc != c {
			break
		}
		i -= size
	}
	return i
}

func isEOL(b byte) bool {
	return b == '\n' || b == '\r'
}

// WordAt returns the run of same-class runes around i. A position on a line
// terminator or at the end of the text picks the run ending there.
// Whitespace runs never cross a line terminator.
func WordAt(text []byte, i int) (begin, end int) {
	if len(text) == 0 {
		return 0, 0
	}
	if i < 0 {
		i = 0
	}
	if i > len(text) {
		i = len(text)
	}
	if i == len(text) || isEOL(text[i]) {
		if i == 0 || isEOL(text[i-1]) {
			return i, i
		}
		_, size := utf8.DecodeLastRune(text[:i])
		i -= size
	}

	c := ClassAt(text, i)
	begin = i
	for begin > 0 && !isEOL(text[begin-1]) {
		cc, size := classBefore(text, begin)
		if cc != c {
			break
		}
		begin -= size
	}
	end = i
	for end < len(text) && !isEOL(text[end]) && ClassAt(text, end) == c {
		_, size := utf8.DecodeRune(text[end:])
		end += size
	}
	return begin, end
}

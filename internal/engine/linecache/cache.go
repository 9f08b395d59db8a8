// Package linecache maps line indices to the offset of their first character.
//
// A Cache is a monotonic table of line start offsets. Line 0 always starts at
// offset 0 and the table always holds at least one line. Lookups by character
// use binary search; edits shift the tail of the table.
//
// The same type backs both the raw line table of a document (one entry per
// '\n'-terminated line) and the wrapped line table of a view (one entry per
// display row).
package linecache

import (
	"bytes"
	"slices"
	"sort"
)

// Cache holds the first-character offset of every line.
type Cache struct {
	starts []int
}

// New returns a cache describing an empty document: a single line at 0.
func New() *Cache {
	return &Cache{starts: []int{0}}
}

// Build scans text and returns the raw line cache for it.
// A line starts at 0 and after every '\n'.
func Build(text []byte) *Cache {
	c := &Cache{starts: make([]int, 1, bytes.Count(text, []byte{'\n'})+1)}
	for i, b := range text {
		if b == '\n' {
			c.starts = append(c.starts, i+1)
		}
	}
	return c
}

// Count returns the number of lines. It is always at least 1.
func (c *Cache) Count() int {
	return len(c.starts)
}

// FirstChar returns the offset of the first character of line i.
// Out of range lines return 0.
func (c *Cache) FirstChar(i int) int {
	if i < 0 || i >= len(c.starts) {
		return 0
	}
	return c.starts[i]
}

// SetFirstChar overwrites the start offset of line i.
// Line 0 is pinned to offset 0 and cannot be changed.
func (c *Cache) SetFirstChar(i, offset int) bool {
	if i <= 0 || i >= len(c.starts) {
		return false
	}
	c.starts[i] = offset
	return true
}

// LastChar returns the offset one past the last content character of line i
// in text: the position of its line terminator ("\n" or "\r\n"), or the next
// line's start when the line is soft-wrapped, or len(text) for the final line.
// Out of range lines return 0.
func (c *Cache) LastChar(text []byte, i int) int {
	if i < 0 || i >= len(c.starts) {
		return 0
	}
	begin := c.starts[i]
	end := len(text)
	if i+1 < len(c.starts) {
		end = c.starts[i+1]
	}
	if end > len(text) {
		end = len(text)
	}
	if end > begin && text[end-1] == '\n' {
		end--
		if end > begin && text[end-1] == '\r' {
			end--
		}
	}
	return end
}

// InsertLines opens count slots at index at, shifting every line >= at down
// and rebasing its offset by byteDelta. The new slots are initialised to the
// start of the preceding line so the table stays monotonic until the caller
// fills them with SetFirstChar. at must be in [1, Count].
func (c *Cache) InsertLines(at, count, byteDelta int) bool {
	if at <= 0 || at > len(c.starts) || count < 0 {
		return false
	}
	fill := c.starts[at-1]
	slots := make([]int, count)
	for i := range slots {
		slots[i] = fill
	}
	c.starts = slices.Insert(c.starts, at, slots...)
	c.OffsetLines(at+count, byteDelta)
	return true
}

// RemoveLines deletes count lines starting at index at and rebases every
// following line by byteDelta. Line 0 cannot be removed.
func (c *Cache) RemoveLines(at, count, byteDelta int) bool {
	if at <= 0 || count < 0 || at+count > len(c.starts) {
		return false
	}
	c.starts = slices.Delete(c.starts, at, at+count)
	c.OffsetLines(at, byteDelta)
	return true
}

// OffsetLines adds delta to the start of every line >= from.
func (c *Cache) OffsetLines(from, delta int) {
	if delta == 0 {
		return
	}
	if from < 1 {
		from = 1
	}
	for i := from; i < len(c.starts); i++ {
		c.starts[i] += delta
	}
}

// FindLine returns the line containing character offset char: the last line
// whose start is <= char. Offsets before 0 map to line 0 and offsets past the
// end map to the last line.
func (c *Cache) FindLine(char int) int {
	// First index whose start is > char, minus one.
	i := sort.Search(len(c.starts), func(i int) bool {
		return c.starts[i] > char
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

// ApplyInsert updates the table for text inserted at offset at.
func (c *Cache) ApplyInsert(at int, text []byte) {
	if len(text) == 0 {
		return
	}
	line := c.FindLine(at)
	n := bytes.Count(text, []byte{'\n'})
	c.InsertLines(line+1, n, len(text))
	slot := line + 1
	for i, b := range text {
		if b == '\n' {
			c.starts[slot] = at + i + 1
			slot++
		}
	}
}

// ApplyDelete updates the table for the removal of [begin, end).
// Lines whose start falls inside (begin, end] disappear; later lines shift.
func (c *Cache) ApplyDelete(begin, end int) {
	if end <= begin {
		return
	}
	first := c.FindLine(begin) + 1
	last := c.FindLine(end)
	count := last - first + 1
	if count < 0 {
		count = 0
	}
	c.RemoveLines(first, count, begin-end)
}

// Reset returns the cache to a single line at 0.
func (c *Cache) Reset() {
	c.starts = append(c.starts[:0], 0)
}

// Append adds a line starting at offset. Offsets below the current last
// start are rejected.
func (c *Cache) Append(offset int) bool {
	if offset < c.starts[len(c.starts)-1] {
		return false
	}
	c.starts = append(c.starts, offset)
	return true
}

// Starts returns a copy of the start table.
func (c *Cache) Starts() []int {
	return slices.Clone(c.starts)
}

// Clone returns a deep copy.
func (c *Cache) Clone() *Cache {
	return &Cache{starts: slices.Clone(c.starts)}
}

// Equal reports whether two caches hold the same table.
func (c *Cache) Equal(other *Cache) bool {
	if other == nil {
		return false
	}
	return slices.Equal(c.starts, other.starts)
}

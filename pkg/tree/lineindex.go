package tree

import (
	"fmt"
	"sort"
)

// LineIndex converts between flat rune offsets and 1-based line/column
// positions. Columns count runes, not bytes, which matches how YAML
// tokenizers report positions for multibyte text.
type LineIndex struct {
	src    []rune
	starts []int // rune offset of the first rune of each line
}

// NewLineIndex builds an index over the given source text.
func NewLineIndex(src string) *LineIndex {
	runes := []rune(src)
	starts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: runes, starts: starts}
}

// Len returns the total number of runes in the indexed source.
func (ix *LineIndex) Len() int {
	return len(ix.src)
}

// LineCount returns the number of lines in the source. Text with no
// trailing newline still counts its final partial line.
func (ix *LineIndex) LineCount() int {
	return len(ix.starts)
}

// Line returns the text of the 1-based line n without its trailing
// newline, or "" if n is out of range.
func (ix *LineIndex) Line(n int) string {
	if n < 1 || n > len(ix.starts) {
		return ""
	}
	start := ix.starts[n-1]
	end := len(ix.src)
	if n < len(ix.starts) {
		end = ix.starts[n] - 1
	}
	return string(ix.src[start:end])
}

// Offset converts a 1-based line and rune column to a flat rune offset.
// A column one past the end of a line is accepted so that positions
// pointing at a newline (or at end of input) resolve cleanly.
func (ix *LineIndex) Offset(line, col int) (int, error) {
	if line < 1 || line > len(ix.starts) {
		return 0, fmt.Errorf("line %d out of range (document has %d lines)", line, len(ix.starts))
	}
	if col < 1 {
		return 0, fmt.Errorf("column %d out of range (columns start at 1)", col)
	}
	off := ix.starts[line-1] + col - 1
	limit := len(ix.src)
	if line < len(ix.starts) {
		limit = ix.starts[line]
	}
	if off > limit {
		return 0, fmt.Errorf("column %d out of range on line %d", col, line)
	}
	return off, nil
}

// Position converts a flat rune offset to a 1-based line and rune
// column. An offset equal to Len resolves to the position just past the
// last rune, which is how half-open span ends are reported.
func (ix *LineIndex) Position(off int) (line, col int) {
	if off < 0 {
		return 1, 1
	}
	if off > len(ix.src) {
		off = len(ix.src)
	}
	i := sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] > off }) - 1
	return i + 1, off - ix.starts[i] + 1
}

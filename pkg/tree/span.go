package tree

import "fmt"

// Span is a half-open range of rune offsets into the source text.
// Start is the offset of the first rune covered and End is the offset
// one past the last rune covered, so an empty span has Start == End.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether the offset falls inside the span. The end
// offset is excluded, so a span never contains its own End.
func (s Span) Contains(off int) bool {
	return off >= s.Start && off < s.End
}

// Covers reports whether the other span lies entirely within s.
// A span covers itself.
func (s Span) Covers(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no runes.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// union returns the smallest span covering both arguments. Empty spans
// carry no text and never extend the result.
func union(a, b Span) Span {
	if b.IsEmpty() {
		return a
	}
	if a.IsEmpty() {
		return b
	}
	if b.Start < a.Start {
		a.Start = b.Start
	}
	if b.End > a.End {
		a.End = b.End
	}
	return a
}

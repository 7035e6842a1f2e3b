// Package tree parses YAML into a tree of nodes annotated with the
// exact source spans they occupy. Spans are half-open rune ranges, so
// positions reported by editors and tokenizers can be compared without
// worrying about trailing whitespace or multibyte encodings.
package tree

// Tree is the parsed form of one YAML source text. A multi-document
// stream yields one document node per document; together the document
// spans partition the full source range.
type Tree struct {
	src   string
	runes []rune
	lines *LineIndex
	docs  []*Node
}

// Source returns the original source text.
func (t *Tree) Source() string {
	return t.src
}

// Len returns the length of the source in runes.
func (t *Tree) Len() int {
	return len(t.runes)
}

// Lines returns the line index for the source.
func (t *Tree) Lines() *LineIndex {
	return t.lines
}

// Docs returns the document nodes of the stream in source order.
func (t *Tree) Docs() []*Node {
	return t.docs
}

// Doc returns the i-th document node, or nil when the index is out of
// range.
func (t *Tree) Doc(i int) *Node {
	if i < 0 || i >= len(t.docs) {
		return nil
	}
	return t.docs[i]
}

// DocAt returns the document node whose span contains the offset, or
// nil when the offset is outside every document.
func (t *Tree) DocAt(off int) *Node {
	for _, d := range t.docs {
		if d.Span.Contains(off) {
			return d
		}
	}
	return nil
}

// Text returns the source text covered by the span. Out-of-range spans
// are clamped to the source bounds.
func (t *Tree) Text(s Span) string {
	if s.Start < 0 {
		s.Start = 0
	}
	if s.End > len(t.runes) {
		s.End = len(t.runes)
	}
	if s.Start >= s.End {
		return ""
	}
	return string(t.runes[s.Start:s.End])
}

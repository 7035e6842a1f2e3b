package tree

import (
	"encoding/json"
	"sort"
)

// Kind classifies a node in the parse tree.
type Kind int

const (
	// KindDocument is the root of a single YAML document. A stream
	// contains one document node per document.
	KindDocument Kind = iota
	// KindMapping is a block or flow mapping.
	KindMapping
	// KindMappingEntry is one key/value pair of a mapping, spanning
	// from the first rune of the key to the last rune of the value.
	KindMappingEntry
	// KindMappingKey wraps the key side of a mapping entry.
	KindMappingKey
	// KindMappingValue wraps the value side of a mapping entry.
	KindMappingValue
	// KindSequence is a block or flow sequence.
	KindSequence
	// KindSequenceItem is one element of a sequence. In block style it
	// includes the leading "-" marker.
	KindSequenceItem
	// KindScalar is a leaf value: plain, quoted, literal, folded,
	// alias, or null.
	KindScalar
)

var kindNames = map[Kind]string{
	KindDocument:     "document",
	KindMapping:      "mapping",
	KindMappingEntry: "mapping-entry",
	KindMappingKey:   "mapping-key",
	KindMappingValue: "mapping-value",
	KindSequence:     "sequence",
	KindSequenceItem: "sequence-item",
	KindScalar:       "scalar",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON renders the kind as its string name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Node is one node of the parse tree. Children are ordered by start
// offset and their spans never overlap. Every child span lies within
// its parent span.
type Node struct {
	Kind     Kind
	Span     Span
	Children []*Node
	Parent   *Node

	// Value is the decoded text of a scalar leaf: quotes removed,
	// escapes resolved, block bodies joined. Empty for containers.
	Value string
}

// ChildAt returns the child whose span contains the offset, or nil if
// the offset falls between children (structural punctuation, comments,
// and whitespace belong to no child).
func (n *Node) ChildAt(off int) *Node {
	i := sort.Search(len(n.Children), func(i int) bool {
		return n.Children[i].Span.Start > off
	}) - 1
	if i < 0 {
		return nil
	}
	if c := n.Children[i]; c.Span.Contains(off) {
		return c
	}
	return nil
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Walk calls fn for the node and all of its descendants in document
// order. Walking stops early when fn returns false for a node; its
// descendants are then skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

func (n *Node) appendChild(c *Node) {
	if c == nil {
		return
	}
	c.Parent = n
	n.Children = append(n.Children, c)
}

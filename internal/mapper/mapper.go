// Package mapper resolves structural paths against a span-annotated
// YAML tree. It accepts RFC 6901 JSON pointers ("/jobs/build/steps/0")
// and dotted paths ("jobs.build.steps[0].run") and returns the node the
// path names, so callers can report exact source locations for
// schema-style references.
package mapper

import (
	"fmt"
	"strconv"

	"github.com/yamltools/yamlspan/pkg/tree"
)

// Options adjust what a lookup lands on.
type Options struct {
	// Entry makes the final segment resolve to the whole mapping entry
	// (or sequence item, marker included) instead of the value inside.
	Entry bool
}

// Resolve maps a path to the node it names in the first document of
// the tree. An empty path ("" or "/") names the document body.
func Resolve(t *tree.Tree, path string) (*tree.Node, error) {
	return ResolveWith(t, path, Options{})
}

// ResolveWith is Resolve with options.
func ResolveWith(t *tree.Tree, path string, opts Options) (*tree.Node, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	docs := t.Docs()
	if len(docs) == 0 {
		return nil, fmt.Errorf("no YAML documents found")
	}
	current := unwrap(docs[0])

	for i, seg := range segments {
		last := i == len(segments)-1
		next, err := step(t, current, seg, last && opts.Entry)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve segment '%s' at part %d: %w", seg, i+1, err)
		}
		current = next
	}
	return current, nil
}

// step descends one segment. Whether the segment is a key or an index
// is decided by the container it applies to, so numeric mapping keys
// still resolve.
func step(t *tree.Tree, n *tree.Node, segment string, wantEntry bool) (*tree.Node, error) {
	switch n.Kind {
	case tree.KindMapping:
		for _, entry := range n.Children {
			if !keyMatches(t, entry, segment) {
				continue
			}
			if wantEntry {
				return entry, nil
			}
			return entryValue(entry), nil
		}
		return nil, fmt.Errorf("key '%s' not found in mapping", segment)

	case tree.KindSequence:
		if !isIndex(segment) {
			return nil, fmt.Errorf("invalid array index '%s'", segment)
		}
		idx, err := strconv.Atoi(segment)
		if err != nil {
			return nil, fmt.Errorf("invalid array index '%s'", segment)
		}
		if idx < 0 || idx >= len(n.Children) {
			return nil, fmt.Errorf("array index %d out of range (length: %d)", idx, len(n.Children))
		}
		item := n.Children[idx]
		if wantEntry {
			return item, nil
		}
		return unwrap(item), nil

	default:
		return nil, fmt.Errorf("expected mapping or sequence, got %s", n.Kind)
	}
}

// keyMatches reports whether a mapping entry's key names the segment.
// Scalar keys match on their decoded value or their raw source text,
// so keys whose scalar type decodes differently from how they are
// written ("on", "yes", numeric keys) stay addressable either way.
func keyMatches(t *tree.Tree, entry *tree.Node, segment string) bool {
	if entry.Kind != tree.KindMappingEntry || len(entry.Children) == 0 {
		return false
	}
	key := entry.Children[0]
	if len(key.Children) == 1 && key.Children[0].Kind == tree.KindScalar {
		sc := key.Children[0]
		return sc.Value == segment || t.Text(sc.Span) == segment
	}
	return t.Text(key.Span) == segment
}

// entryValue returns the value node of an entry, or the empty value
// wrapper itself when the entry has no value.
func entryValue(entry *tree.Node) *tree.Node {
	if len(entry.Children) < 2 {
		return entry
	}
	val := entry.Children[1]
	if len(val.Children) == 1 {
		return val.Children[0]
	}
	return val
}

// unwrap descends through single-child structural wrappers (document,
// value, item, key) to the node that carries content.
func unwrap(n *tree.Node) *tree.Node {
	for n != nil {
		switch n.Kind {
		case tree.KindDocument, tree.KindMappingValue, tree.KindSequenceItem, tree.KindMappingKey:
			if len(n.Children) == 0 {
				return n
			}
			n = n.Children[0]
		default:
			return n
		}
	}
	return n
}

// Package locator answers position queries against a span-annotated
// YAML tree: lowest common ancestors for selection expansion,
// root-to-leaf containment paths, and nearest-node searches around
// gaps. Positions are rune offsets; line/column variants convert
// through the tree's line index first.
package locator

import (
	"github.com/yamltools/yamlspan/pkg/tree"
)

// Options adjust how queries resolve nodes.
type Options struct {
	// ExtendKeys widens a result that lands on a mapping key to the
	// whole key/value entry. A key on its own is rarely a useful
	// selection target.
	ExtendKeys bool
}

// FindLCA returns the span of the lowest common ancestor of the two
// offsets. The endpoints may arrive in either order; equal endpoints
// degenerate to the deepest node at that position.
func FindLCA(t *tree.Tree, a, b int) (tree.Span, error) {
	return FindLCAWith(t, a, b, Options{})
}

// FindLCAWith is FindLCA with options applied to the result.
func FindLCAWith(t *tree.Tree, a, b int, opts Options) (tree.Span, error) {
	n, err := FindLCANodeWith(t, a, b, opts)
	if err != nil {
		return tree.Span{}, err
	}
	return n.Span, nil
}

// FindLCANode returns the lowest common ancestor node itself rather
// than just its span.
func FindLCANode(t *tree.Tree, a, b int) (*tree.Node, error) {
	return FindLCANodeWith(t, a, b, Options{})
}

// FindLCANodeWith resolves both offsets to root-to-deepest paths within
// their document and returns the last node the paths share.
func FindLCANodeWith(t *tree.Tree, a, b int, opts Options) (*tree.Node, error) {
	if a > b {
		a, b = b, a
	}
	if err := checkOffset(t, a); err != nil {
		return nil, err
	}
	if err := checkOffset(t, b); err != nil {
		return nil, err
	}

	docA, idxA := docFor(t, a)
	docB, idxB := docFor(t, b)
	if docA == nil {
		return nil, &OutOfRangeError{Pos: a, Len: t.Len()}
	}
	if docB == nil {
		return nil, &OutOfRangeError{Pos: b, Len: t.Len()}
	}
	if docA != docB {
		return nil, &DocumentMismatchError{PosA: a, PosB: b, DocA: idxA, DocB: idxB}
	}

	pathA := PathTo(docA, a)
	pathB := PathTo(docA, b)

	lca := pathA[0]
	for i := 1; i < len(pathA) && i < len(pathB); i++ {
		if pathA[i] != pathB[i] {
			break
		}
		lca = pathA[i]
	}

	if opts.ExtendKeys {
		lca = extendKey(lca)
	}
	return lca, nil
}

// PathTo returns the containment path from the document root down to
// the deepest node whose span contains the offset. An offset in a gap
// (structural punctuation, comments, blank space) stops at the nearest
// enclosing container, so the path always has at least one element.
func PathTo(doc *tree.Node, off int) []*tree.Node {
	path := []*tree.Node{doc}
	for n := doc; ; {
		c := n.ChildAt(off)
		if c == nil {
			return path
		}
		path = append(path, c)
		n = c
	}
}

// OffsetOf converts a 1-based line and rune column to a flat offset.
// Conversion failures surface as *OutOfRangeError so callers see one
// error kind for every bad position, whichever form it arrived in.
func OffsetOf(t *tree.Tree, line, col int) (int, error) {
	off, err := t.Lines().Offset(line, col)
	if err != nil {
		return 0, &OutOfRangeError{Pos: -1, Len: t.Len(), cause: err}
	}
	return off, nil
}

// checkOffset validates a query offset against the half-open source
// range. The offset one past the last rune is not a valid query
// position: it points at no text.
func checkOffset(t *tree.Tree, off int) error {
	if off < 0 || off >= t.Len() {
		return &OutOfRangeError{Pos: off, Len: t.Len()}
	}
	return nil
}

func docFor(t *tree.Tree, off int) (*tree.Node, int) {
	for i, d := range t.Docs() {
		if d.Span.Contains(off) {
			return d, i
		}
	}
	return nil, -1
}

// extendKey maps a node that is (or directly wraps into) a mapping key
// to its enclosing entry. Nodes elsewhere pass through unchanged.
func extendKey(n *tree.Node) *tree.Node {
	k := n
	if k.Kind != tree.KindMappingKey {
		if p := k.Parent; p != nil && p.Kind == tree.KindMappingKey {
			k = p
		} else {
			return n
		}
	}
	if k.Parent != nil {
		return k.Parent
	}
	return n
}

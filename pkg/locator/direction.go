package locator

import (
	"github.com/yamltools/yamlspan/pkg/tree"
)

// NextNode returns the deepest node at the offset or, when the offset
// falls in a gap (comment, blank space, structural punctuation), the
// nearest leaf starting after it within the same document. ErrNoNode
// means nothing follows the offset.
func NextNode(t *tree.Tree, off int) (*tree.Node, error) {
	return NextNodeWith(t, off, Options{})
}

// NextNodeWith is NextNode with options applied to the result.
func NextNodeWith(t *tree.Tree, off int, opts Options) (*tree.Node, error) {
	doc, deepest, err := resolve(t, off)
	if err != nil {
		return nil, err
	}
	if deepest.Kind == tree.KindScalar {
		return finish(deepest, opts), nil
	}
	if n := nextLeaf(doc, off); n != nil {
		return finish(n, opts), nil
	}
	return nil, ErrNoNode
}

// PrevNode is the backward counterpart of NextNode: gap offsets resolve
// to the nearest leaf ending at or before them.
func PrevNode(t *tree.Tree, off int) (*tree.Node, error) {
	return PrevNodeWith(t, off, Options{})
}

// PrevNodeWith is PrevNode with options applied to the result.
func PrevNodeWith(t *tree.Tree, off int, opts Options) (*tree.Node, error) {
	doc, deepest, err := resolve(t, off)
	if err != nil {
		return nil, err
	}
	if deepest.Kind == tree.KindScalar {
		return finish(deepest, opts), nil
	}
	if n := prevLeaf(doc, off); n != nil {
		return finish(n, opts), nil
	}
	return nil, ErrNoNode
}

func finish(n *tree.Node, opts Options) *tree.Node {
	if opts.ExtendKeys {
		return extendKey(n)
	}
	return n
}

func resolve(t *tree.Tree, off int) (doc, deepest *tree.Node, err error) {
	if err := checkOffset(t, off); err != nil {
		return nil, nil, err
	}
	doc, _ = docFor(t, off)
	if doc == nil {
		return nil, nil, &OutOfRangeError{Pos: off, Len: t.Len()}
	}
	path := PathTo(doc, off)
	return doc, path[len(path)-1], nil
}

// nextLeaf finds the first non-empty scalar in document order whose
// span starts at or after the offset. Subtrees ending at or before the
// offset cannot contain one and are skipped.
func nextLeaf(n *tree.Node, off int) *tree.Node {
	if n.Span.End <= off {
		return nil
	}
	if n.Kind == tree.KindScalar {
		if !n.Span.IsEmpty() && n.Span.Start >= off {
			return n
		}
		return nil
	}
	for _, c := range n.Children {
		if got := nextLeaf(c, off); got != nil {
			return got
		}
	}
	return nil
}

// prevLeaf finds the last non-empty scalar in document order whose span
// ends at or before the offset, visiting children right to left.
func prevLeaf(n *tree.Node, off int) *tree.Node {
	if n.Span.Start > off {
		return nil
	}
	if n.Kind == tree.KindScalar {
		if !n.Span.IsEmpty() && n.Span.End <= off {
			return n
		}
		return nil
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if got := prevLeaf(n.Children[i], off); got != nil {
			return got
		}
	}
	return nil
}

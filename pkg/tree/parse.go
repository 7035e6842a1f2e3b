package tree

import (
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// Parse parses YAML source into a span-annotated tree. The input may be
// a multi-document stream; each document becomes one root node and the
// document spans together cover the full source range. Syntax errors
// are returned as *ParseError.
func Parse(src string) (*Tree, error) {
	t := &Tree{src: src, runes: []rune(src), lines: NewLineIndex(src)}

	file, err := parser.ParseBytes([]byte(src), 0)
	if err != nil {
		return nil, newParseError(err)
	}

	b := &builder{tree: t, extents: scanExtents(src, t.lines)}
	if file != nil {
		for _, doc := range file.Docs {
			t.docs = append(t.docs, b.document(doc))
		}
	}
	if len(t.docs) == 0 {
		t.docs = append(t.docs, &Node{Kind: KindDocument})
	}
	partitionDocs(t.docs, len(t.runes))
	return t, nil
}

type posKey struct{ line, col int }

type extent struct{ start, end int }

// scanExtents records, for every lexer token, the rune range of its
// text with surrounding whitespace stripped, keyed by the token's
// reported line/column. Token origins concatenate back to the source,
// so accumulating their rune lengths yields exact raw extents even for
// multi-line tokens; the reported position re-anchors the scan for each
// token that has one.
func scanExtents(src string, lines *LineIndex) map[posKey]extent {
	exts := make(map[posKey]extent)
	cur := 0
	for _, tok := range lexer.Tokenize(src) {
		origin := []rune(tok.Origin)
		lead := 0
		for lead < len(origin) && isYAMLSpace(origin[lead]) {
			lead++
		}
		trail := 0
		for trail < len(origin)-lead && isYAMLSpace(origin[len(origin)-1-trail]) {
			trail++
		}

		// Accumulated origins give the content start directly. A
		// reported position ahead of it re-anchors the scan (origins
		// drop runes the source had, CR in CRLF files for example); a
		// position behind it points into the token's own leading
		// whitespace and is ignored.
		start := cur + lead
		if off, err := lines.Offset(tok.Position.Line, tok.Position.Column); err == nil && off > start {
			start = off
		}
		end := start + len(origin) - lead - trail
		if end > lines.Len() {
			end = lines.Len()
		}
		if end < start {
			end = start
		}

		key := posKey{tok.Position.Line, tok.Position.Column}
		if _, seen := exts[key]; !seen {
			exts[key] = extent{start: start, end: end}
		}
		cur = start - lead + len(origin)
	}
	return exts
}

func isYAMLSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func firstNonSpace(s string) rune {
	for _, r := range s {
		if !isYAMLSpace(r) {
			return r
		}
	}
	return 0
}

type builder struct {
	tree    *Tree
	extents map[posKey]extent
}

func (b *builder) extentOf(tok *token.Token) (extent, bool) {
	if tok == nil {
		return extent{}, false
	}
	ext, ok := b.extents[posKey{tok.Position.Line, tok.Position.Column}]
	return ext, ok
}

// tokenSpan resolves the source span of one token. Tokens the parser
// synthesized (implicit nulls, for example) have no text of their own
// in the source and collapse to an empty span at their position.
func (b *builder) tokenSpan(tok *token.Token) Span {
	ext, ok := b.extentOf(tok)
	if !ok {
		if tok != nil {
			if off, err := b.tree.lines.Offset(tok.Position.Line, tok.Position.Column); err == nil {
				return Span{Start: off, End: off}
			}
		}
		return Span{}
	}
	// A synthesized token can share its position with a real one: an
	// implicit null sits on its ":". The source must actually spell the
	// token text for the extent to be its own.
	if want := firstNonSpace(tok.Origin); want == 0 || ext.start >= len(b.tree.runes) || b.tree.runes[ext.start] != want {
		return Span{Start: ext.end, End: ext.end}
	}
	return Span{Start: ext.start, End: ext.end}
}

func (b *builder) document(doc *ast.DocumentNode) *Node {
	d := &Node{Kind: KindDocument}
	if doc.Body != nil {
		d.appendChild(b.node(doc.Body))
	}
	sp := childRange(d)
	if doc.Start != nil {
		sp = union(sp, b.tokenSpan(doc.Start))
	}
	if doc.End != nil {
		sp = union(sp, b.tokenSpan(doc.End))
	}
	d.Span = sp
	return d
}

// node converts an AST node to a tree node. Anchors and tags widen the
// span of the node they decorate rather than forming nodes of their
// own; aliases are leaves covering "*name".
func (b *builder) node(n ast.Node) *Node {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case *ast.MappingNode:
		return b.mapping(v)
	case *ast.MappingValueNode:
		// A single-pair mapping arrives as the bare pair.
		m := &Node{Kind: KindMapping}
		m.appendChild(b.entry(v))
		m.Span = childRange(m)
		return m
	case *ast.SequenceNode:
		return b.sequence(v)
	case *ast.AnchorNode:
		return b.widen(v.GetToken(), v.Value)
	case *ast.TagNode:
		return b.widen(v.GetToken(), v.Value)
	case *ast.AliasNode:
		sp := b.tokenSpan(v.GetToken())
		if v.Value != nil {
			sp = union(sp, b.tokenSpan(v.Value.GetToken()))
		}
		return &Node{Kind: KindScalar, Span: sp, Value: scalarText(v.Value)}
	case *ast.LiteralNode:
		sp := b.tokenSpan(v.GetToken())
		if v.Value != nil {
			sp = union(sp, b.tokenSpan(v.Value.GetToken()))
		}
		return &Node{Kind: KindScalar, Span: sp, Value: scalarText(v)}
	default:
		return &Node{Kind: KindScalar, Span: b.tokenSpan(n.GetToken()), Value: scalarText(n)}
	}
}

// scalarText extracts the decoded value from a scalar AST node.
func scalarText(n ast.Node) string {
	switch v := n.(type) {
	case nil:
		return ""
	case *ast.StringNode:
		return v.Value
	case *ast.LiteralNode:
		if v.Value != nil {
			return v.Value.Value
		}
		return ""
	case *ast.IntegerNode:
		return fmt.Sprintf("%d", v.Value)
	case *ast.FloatNode:
		return fmt.Sprintf("%g", v.Value)
	case *ast.BoolNode:
		return fmt.Sprintf("%t", v.Value)
	case *ast.NullNode:
		return "null"
	default:
		if tok := n.GetToken(); tok != nil {
			return tok.Value
		}
		return ""
	}
}

// widen converts the decorated node and stretches its span to include
// the leading "&name", "!tag" or "?" token.
func (b *builder) widen(tok *token.Token, inner ast.Node) *Node {
	child := b.node(inner)
	if child == nil {
		return &Node{Kind: KindScalar, Span: b.tokenSpan(tok)}
	}
	child.Span = union(child.Span, b.tokenSpan(tok))
	return child
}

func (b *builder) mapping(v *ast.MappingNode) *Node {
	m := &Node{Kind: KindMapping}
	for _, mv := range v.Values {
		m.appendChild(b.entry(mv))
	}
	sp := childRange(m)
	if v.IsFlowStyle {
		sp = union(sp, b.tokenSpan(v.Start))
		sp = union(sp, b.tokenSpan(v.End))
	}
	m.Span = sp
	return m
}

// entry builds one key/value pair. The entry spans from the first rune
// of the key to the last rune of the value; with no value it ends after
// the ":".
func (b *builder) entry(mv *ast.MappingValueNode) *Node {
	e := &Node{Kind: KindMappingEntry}

	keyChild := b.keyNode(mv.Key)
	key := &Node{Kind: KindMappingKey, Span: keyChild.Span}
	key.appendChild(keyChild)
	e.appendChild(key)

	// The ":" extent anchors the entry when the value is absent.
	anchor := key.Span.End
	if colon := b.tokenSpan(mv.GetToken()); colon.End > anchor {
		anchor = colon.End
	}

	val := &Node{Kind: KindMappingValue}
	if child := b.node(mv.Value); child != nil && !child.Span.IsEmpty() && child.Span.Start >= key.Span.End {
		val.Span = child.Span
		val.appendChild(child)
	} else {
		val.Span = Span{Start: anchor, End: anchor}
	}
	e.appendChild(val)

	end := val.Span.End
	if end < anchor {
		end = anchor
	}
	e.Span = Span{Start: key.Span.Start, End: end}
	return e
}

func (b *builder) keyNode(n ast.Node) *Node {
	if k, ok := n.(*ast.MappingKeyNode); ok {
		return b.widen(k.GetToken(), k.Value)
	}
	if child := b.node(n); child != nil {
		return child
	}
	return &Node{Kind: KindScalar}
}

func (b *builder) sequence(v *ast.SequenceNode) *Node {
	s := &Node{Kind: KindSequence}
	for _, elem := range v.Values {
		s.appendChild(b.item(elem, v.IsFlowStyle))
	}
	sp := childRange(s)
	if v.IsFlowStyle {
		sp = union(sp, b.tokenSpan(v.Start))
		sp = union(sp, b.tokenSpan(v.End))
	}
	s.Span = sp
	return s
}

// item wraps one sequence element. Block items include their leading
// "-" marker; flow items cover just the element.
func (b *builder) item(n ast.Node, flow bool) *Node {
	child := b.node(n)
	if child == nil {
		return nil
	}
	it := &Node{Kind: KindSequenceItem, Span: child.Span}
	if !flow && !child.Span.IsEmpty() {
		if start, ok := b.markerBefore(child.Span.Start); ok {
			it.Span.Start = start
		}
	}
	it.appendChild(child)
	return it
}

// markerBefore scans backwards over whitespace from the element start,
// expecting the "-" entry marker.
func (b *builder) markerBefore(off int) (int, bool) {
	i := off - 1
	for i >= 0 && isYAMLSpace(b.tree.runes[i]) {
		i--
	}
	if i >= 0 && b.tree.runes[i] == '-' {
		return i, true
	}
	return 0, false
}

func childRange(n *Node) Span {
	var sp Span
	for _, c := range n.Children {
		sp = union(sp, c.Span)
	}
	return sp
}

// partitionDocs stretches document spans so that together they cover
// the whole source. Leading text, separators between documents, and
// trailing text attach to the adjacent document.
func partitionDocs(docs []*Node, total int) {
	for i, d := range docs {
		if i == 0 {
			d.Span.Start = 0
		}
		if i == len(docs)-1 {
			d.Span.End = total
			continue
		}
		next := docs[i+1]
		boundary := next.Span.Start
		if boundary < d.Span.End {
			boundary = d.Span.End
		}
		d.Span.End = boundary
		next.Span.Start = boundary
	}
}

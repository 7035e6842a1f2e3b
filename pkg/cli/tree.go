package cli

import (
	"fmt"
	"strings"

	"github.com/yamltools/yamlspan/pkg/console"
	"github.com/yamltools/yamlspan/pkg/tree"
)

// treeNodeJSON mirrors one tree node for the JSON dump.
type treeNodeJSON struct {
	Kind     string         `json:"kind"`
	Span     spanJSON       `json:"span"`
	Value    string         `json:"value,omitempty"`
	Children []treeNodeJSON `json:"children,omitempty"`
}

// DumpTree prints the span-annotated parse tree of the input, one node
// per line with kind, span and a short excerpt, or as nested JSON.
func DumpTree(file string, asJSON, useFrontmatter, verbose bool) error {
	d, err := loadDocument(file, useFrontmatter)
	if err != nil {
		return err
	}
	t, err := d.parse()
	if err != nil {
		return err
	}

	if asJSON {
		out := make([]treeNodeJSON, 0, len(t.Docs()))
		for _, doc := range t.Docs() {
			out = append(out, d.dumpJSON(t, doc))
		}
		if err := printJSON(out); err != nil {
			return err
		}
	} else {
		var b strings.Builder
		for _, doc := range t.Docs() {
			d.dumpText(&b, t, doc, 0)
		}
		fmt.Print(b.String())
	}

	if verbose {
		nodes := 0
		for _, doc := range t.Docs() {
			doc.Walk(func(*tree.Node) bool {
				nodes++
				return true
			})
		}
		fmt.Println(console.FormatCountMessage(fmt.Sprintf("%d nodes across %d document(s)", nodes, len(t.Docs()))))
	}
	return nil
}

func (d *document) dumpJSON(t *tree.Tree, n *tree.Node) treeNodeJSON {
	out := treeNodeJSON{
		Kind: n.Kind.String(),
		Span: d.spanJSON(t, n.Span),
	}
	if n.Kind == tree.KindScalar {
		out.Value = n.Value
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, d.dumpJSON(t, c))
	}
	return out
}

func (d *document) dumpText(b *strings.Builder, t *tree.Tree, n *tree.Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind.String())
	b.WriteString(" ")
	b.WriteString(d.formatSpan(t, n.Span, false))
	if n.Kind == tree.KindScalar {
		fmt.Fprintf(b, " %q", excerpt(t.Text(n.Span), 40))
	}
	b.WriteString("\n")
	for _, c := range n.Children {
		d.dumpText(b, t, c, depth+1)
	}
}

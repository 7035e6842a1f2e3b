package cli

import (
	"fmt"

	"github.com/yamltools/yamlspan/internal/mapper"
	"github.com/yamltools/yamlspan/pkg/console"
)

// LookupPath prints the source location of the node a JSON pointer or
// dotted path names. Lookups land on the mapping value or sequence
// element; entry widens the result to the whole mapping entry or
// sequence item.
func LookupPath(file, pathExpr string, entry, asJSON, useFrontmatter, verbose bool) error {
	d, err := loadDocument(file, useFrontmatter)
	if err != nil {
		return err
	}
	t, err := d.parse()
	if err != nil {
		return err
	}

	node, err := mapper.ResolveWith(t, pathExpr, mapper.Options{Entry: entry})
	if err != nil {
		return err
	}
	if verbose {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("Resolved '%s' to a %s node", pathExpr, node.Kind)))
	}

	if asJSON {
		return printJSON(d.nodeJSON(t, node))
	}
	fmt.Printf("%s %s\n", node.Kind, d.formatSpan(t, node.Span, true))
	return nil
}

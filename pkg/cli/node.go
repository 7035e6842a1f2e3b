package cli

import (
	"fmt"

	"github.com/yamltools/yamlspan/pkg/console"
	"github.com/yamltools/yamlspan/pkg/locator"
	"github.com/yamltools/yamlspan/pkg/tree"
)

// LocateNode prints the deepest node at a single position. An offset in
// a comment or blank gap normally resolves to the enclosing container;
// search "forward" or "backward" resolves it to the nearest scalar in
// that direction instead.
func LocateNode(file, atStr, search string, extendKeys, asJSON, useFrontmatter, verbose bool) error {
	at, err := parsePosition(atStr)
	if err != nil {
		return err
	}

	d, err := loadDocument(file, useFrontmatter)
	if err != nil {
		return err
	}
	t, err := d.parse()
	if err != nil {
		return err
	}
	if verbose {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("Parsed %d document(s), %d runes", len(t.Docs()), t.Len())))
	}

	off, err := resolveOffset(t, at.shift(d))
	if err != nil {
		return err
	}

	opts := locator.Options{ExtendKeys: extendKeys}
	var node *tree.Node
	switch search {
	case "":
		node, err = locator.FindLCANodeWith(t, off, off, opts)
	case "forward":
		node, err = locator.NextNodeWith(t, off, opts)
	case "backward":
		node, err = locator.PrevNodeWith(t, off, opts)
	default:
		return fmt.Errorf("invalid search direction '%s'. Must be 'forward' or 'backward'", search)
	}
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(d.nodeJSON(t, node))
	}
	fmt.Printf("%s %s\n", node.Kind, d.formatSpan(t, node.Span, at.isLineCol))
	return nil
}

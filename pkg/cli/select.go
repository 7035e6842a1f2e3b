package cli

import (
	"fmt"

	"github.com/yamltools/yamlspan/pkg/console"
	"github.com/yamltools/yamlspan/pkg/locator"
)

// SelectSpan expands the selection between two positions to the
// smallest syntactically complete YAML construct containing both and
// prints its span. Positions are flat rune offsets or 1-based
// LINE:COLUMN pairs; both must use the same form, and the result is
// reported in that form.
func SelectSpan(file, fromStr, toStr string, extendKeys, asJSON, useFrontmatter, watch, verbose bool) error {
	from, err := parsePosition(fromStr)
	if err != nil {
		return err
	}
	to, err := parsePosition(toStr)
	if err != nil {
		return err
	}
	if from.isLineCol != to.isLineCol {
		return fmt.Errorf("positions must use the same coordinate system (both offsets or both LINE:COLUMN)")
	}

	run := func() error {
		return selectOnce(file, from, to, extendKeys, asJSON, useFrontmatter, verbose)
	}
	if watch {
		if file == "-" {
			return fmt.Errorf("cannot watch stdin")
		}
		return watchFile(file, verbose, run)
	}
	return run()
}

func selectOnce(file string, from, to position, extendKeys, asJSON, useFrontmatter, verbose bool) error {
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

	a, err := resolveOffset(t, from.shift(d))
	if err != nil {
		return err
	}
	b, err := resolveOffset(t, to.shift(d))
	if err != nil {
		return err
	}

	node, err := locator.FindLCANodeWith(t, a, b, locator.Options{ExtendKeys: extendKeys})
	if err != nil {
		return err
	}

	if verbose {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("Selected %s node", node.Kind)))
	}
	if asJSON {
		return printJSON(d.nodeJSON(t, node))
	}
	fmt.Println(d.formatSpan(t, node.Span, from.isLineCol))
	return nil
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yamltools/yamlspan/pkg/console"
	"github.com/yamltools/yamlspan/pkg/locator"
	"github.com/yamltools/yamlspan/pkg/tree"
)

// document is one loaded YAML input: the text under query plus the
// shifts that map query coordinates back to the enclosing file when the
// YAML came from a markdown frontmatter block.
type document struct {
	path      string // display name, "stdin" for -
	file      string // full file content as read
	src       string // the YAML text that gets parsed
	lineShift int    // added to 1-based lines when reporting
	runeShift int    // added to rune offsets when reporting
}

// loadDocument reads the input file (or stdin for "-") and, when
// useFrontmatter is set, narrows it to the frontmatter block of the
// markdown file.
func loadDocument(path string, useFrontmatter bool) (*document, error) {
	var content string
	name := path
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		content = string(data)
		name = "stdin"
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		content = string(data)
	}

	doc := &document{path: name, file: content, src: content}
	if useFrontmatter {
		fm, err := extractFrontmatter(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		doc.src = fm.yaml
		doc.lineShift = fm.lineStart - 1
		doc.runeShift = fm.runeStart
	}
	return doc, nil
}

// parse parses the document's YAML. Parse failures come back as a
// formatted console error with positions in the enclosing file's
// coordinates and context lines cut from it.
func (d *document) parse() (*tree.Tree, error) {
	t, err := tree.Parse(d.src)
	if err == nil {
		return t, nil
	}
	var pe *tree.ParseError
	if errors.As(err, &pe) {
		line := pe.Line
		if line > 0 {
			line += d.lineShift
		}
		formatted := console.FormatError(console.NewSourceError(d.path, d.file, line, pe.Column, pe.Message))
		return nil, errors.New(strings.TrimRight(formatted, "\n"))
	}
	return nil, err
}

// position is a user-supplied source position: either a flat rune
// offset or a 1-based LINE:COLUMN pair.
type position struct {
	off       int
	line, col int
	isLineCol bool
}

func parsePosition(s string) (position, error) {
	if lineStr, colStr, ok := strings.Cut(s, ":"); ok {
		line, errLine := strconv.Atoi(lineStr)
		col, errCol := strconv.Atoi(colStr)
		if errLine != nil || errCol != nil {
			return position{}, fmt.Errorf("invalid position '%s': expected OFFSET or LINE:COLUMN", s)
		}
		return position{line: line, col: col, isLineCol: true}, nil
	}
	off, err := strconv.Atoi(s)
	if err != nil {
		return position{}, fmt.Errorf("invalid position '%s': expected OFFSET or LINE:COLUMN", s)
	}
	return position{off: off}, nil
}

// shift converts the file-coordinate position into the document's own
// coordinates. Line/column resolution against the tree happens later so
// that out-of-range reports carry the locator's error types.
func (p position) shift(d *document) position {
	if p.isLineCol {
		p.line -= d.lineShift
	} else {
		p.off -= d.runeShift
	}
	return p
}

// resolveOffset converts a document-coordinate position to a rune
// offset in the parsed text.
func resolveOffset(t *tree.Tree, p position) (int, error) {
	if p.isLineCol {
		return locator.OffsetOf(t, p.line, p.col)
	}
	return p.off, nil
}

// spanJSON reports a span in both coordinate systems. The end position
// is exclusive, one past the last rune of the span.
type spanJSON struct {
	Start       int `json:"start"`
	End         int `json:"end"`
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

type nodeJSON struct {
	Kind string   `json:"kind"`
	Span spanJSON `json:"span"`
	Text string   `json:"text"`
}

func (d *document) spanJSON(t *tree.Tree, sp tree.Span) spanJSON {
	startLine, startCol := t.Lines().Position(sp.Start)
	endLine, endCol := t.Lines().Position(sp.End)
	return spanJSON{
		Start:       sp.Start + d.runeShift,
		End:         sp.End + d.runeShift,
		StartLine:   startLine + d.lineShift,
		StartColumn: startCol,
		EndLine:     endLine + d.lineShift,
		EndColumn:   endCol,
	}
}

func (d *document) nodeJSON(t *tree.Tree, n *tree.Node) nodeJSON {
	return nodeJSON{
		Kind: n.Kind.String(),
		Span: d.spanJSON(t, n.Span),
		Text: t.Text(n.Span),
	}
}

// formatSpan renders a span in the coordinate system the query used:
// LINE:COLUMN pairs for line:column queries, a half-open offset
// interval otherwise.
func (d *document) formatSpan(t *tree.Tree, sp tree.Span, lineCol bool) string {
	if lineCol {
		startLine, startCol := t.Lines().Position(sp.Start)
		endLine, endCol := t.Lines().Position(sp.End)
		return fmt.Sprintf("%d:%d-%d:%d", startLine+d.lineShift, startCol, endLine+d.lineShift, endCol)
	}
	return fmt.Sprintf("[%d,%d)", sp.Start+d.runeShift, sp.End+d.runeShift)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// excerpt trims a node's text to a single short line for tree dumps.
func excerpt(text string, max int) string {
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i] + "…"
	}
	runes := []rune(text)
	if len(runes) > max {
		text = string(runes[:max]) + "…"
	}
	return text
}

package tree

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseError describes a YAML syntax error together with the source
// position the parser reported for it. Line and Column are 1-based and
// are 0 when the parser gave no position.
type ParseError struct {
	Line    int
	Column  int
	Message string

	err error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("yaml parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("yaml parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.err
}

// Parser errors arrive as strings in a couple of formats. The primary
// one is "[line:column] message" followed by an annotated source
// snippet; some wrapped errors use the "yaml: line N: message" form
// instead.
var (
	bracketLocRe = regexp.MustCompile(`^\s*\[(\d+):(\d+)\]\s*(.*)$`)
	yamlLineRe   = regexp.MustCompile(`yaml: line (\d+):\s*(.*)$`)
)

// newParseError extracts position information from a parser error.
func newParseError(err error) *ParseError {
	msg := err.Error()
	first := msg
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}

	if m := bracketLocRe.FindStringSubmatch(first); m != nil {
		line, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		return &ParseError{Line: line, Column: col, Message: strings.TrimSpace(m[3]), err: err}
	}

	if m := yamlLineRe.FindStringSubmatch(first); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &ParseError{Line: line, Column: 1, Message: strings.TrimSpace(m[2]), err: err}
	}

	return &ParseError{Message: strings.TrimSpace(first), err: err}
}

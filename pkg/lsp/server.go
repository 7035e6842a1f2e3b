package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/yamltools/yamlspan/pkg/locator"
	"github.com/yamltools/yamlspan/pkg/tree"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// The pinned go-lsp types predate the selectionRange request (LSP
// 3.15), so its wire shapes are declared here.

type selectionRangeParams struct {
	TextDocument lsp.TextDocumentIdentifier `json:"textDocument"`
	Positions    []lsp.Position             `json:"positions"`
}

// selectionRange is one link of a narrow-to-wide chain; Parent is the
// next enclosing construct.
type selectionRange struct {
	Range  lsp.Range       `json:"range"`
	Parent *selectionRange `json:"parent,omitempty"`
}

type serverCapabilities struct {
	TextDocumentSync       *lsp.TextDocumentSyncOptionsOrKind `json:"textDocumentSync,omitempty"`
	SelectionRangeProvider bool                               `json:"selectionRangeProvider,omitempty"`
}

type initializeResult struct {
	Capabilities serverCapabilities `json:"capabilities"`
}

type server struct {
	content map[lsp.DocumentURI]string
}

func newServer() *server {
	return &server{content: make(map[lsp.DocumentURI]string)}
}

func (s *server) handler() jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":                  s.initialize,
		"textDocument/didOpen":        s.didOpen,
		"textDocument/didChange":      s.didChange,
		"textDocument/didClose":       s.didClose,
		"textDocument/selectionRange": s.selectionRange,

		// Required by the protocol even though nothing happens here.
		"initialized": noop,
		"shutdown":    noop,
		// Called by clients even when the server doesn't advertise support:
		// https://microsoft.github.io/language-server-protocol/specification#workspace_didChangeWatchedFiles
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			SelectionRangeProvider: true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// ContentChanges carries the full text since the server only
	// advertises full sync; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

func (s *server) selectionRange(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params selectionRangeParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	t, err := tree.Parse(content)

	result := make([]selectionRange, len(params.Positions))
	for i, pos := range params.Positions {
		if err != nil {
			// Broken documents still get an answer: an empty
			// range at the requested position.
			result[i] = selectionRange{Range: lsp.Range{Start: pos, End: pos}}
			continue
		}
		result[i] = chainAt(t, content, positionToOffset(content, pos))
	}
	return result, nil
}

// chainAt builds the selection chain for one position: the deepest node
// there first, each Parent the next strictly wider enclosing span.
// Wrapper nodes sharing their child's span collapse into one link.
func chainAt(t *tree.Tree, content string, off int) selectionRange {
	path := locator.PathTo(docFor(t, off), off)
	deepest := path[len(path)-1]

	sr := selectionRange{Range: rangeOf(content, deepest.Span)}
	tail := &sr
	prev := deepest.Span
	for i := len(path) - 2; i >= 0; i-- {
		if path[i].Span == prev {
			continue
		}
		parent := &selectionRange{Range: rangeOf(content, path[i].Span)}
		tail.Parent = parent
		tail = parent
		prev = path[i].Span
	}
	return sr
}

// docFor picks the document for a position, clamping offsets that fall
// outside every document span (end of file, between documents) to the
// nearest one.
func docFor(t *tree.Tree, off int) *tree.Node {
	if d := t.DocAt(off); d != nil {
		return d
	}
	docs := t.Docs()
	for i := len(docs) - 1; i >= 0; i-- {
		if docs[i].Span.End <= off {
			return docs[i]
		}
	}
	return docs[0]
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(content)})
}

func diagnostics(content string) []lsp.Diagnostic {
	_, err := tree.Parse(content)
	if err == nil {
		return []lsp.Diagnostic{}
	}

	diag := lsp.Diagnostic{Severity: lsp.Error, Source: "parse", Message: err.Error()}
	var pe *tree.ParseError
	if errors.As(err, &pe) {
		diag.Message = pe.Message
		pos := diagnosticPosition(content, pe.Line, pe.Column)
		diag.Range = lsp.Range{Start: pos, End: pos}
	}
	return []lsp.Diagnostic{diag}
}

// diagnosticPosition converts a 1-based line and rune column to a wire
// position with UTF-16 character counts.
func diagnosticPosition(content string, line, col int) lsp.Position {
	if line < 1 {
		return lsp.Position{}
	}
	lines := strings.Split(content, "\n")
	if line > len(lines) {
		line = len(lines)
	}
	ch := 0
	runes := []rune(lines[line-1])
	for i := 0; i < len(runes) && i < col-1; i++ {
		ch += utf16Len(runes[i])
	}
	return lsp.Position{Line: line - 1, Character: ch}
}

func rangeOf(content string, sp tree.Span) lsp.Range {
	return lsp.Range{
		Start: offsetToPosition(content, sp.Start),
		End:   offsetToPosition(content, sp.End),
	}
}

func positionToOffset(s string, pos lsp.Position) int {
	var off int
	walkContent(s, func(i int, p lsp.Position) bool {
		off = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return off
}

func offsetToPosition(s string, off int) lsp.Position {
	var pos lsp.Position
	walkContent(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < off
	})
	return pos
}

// walkContent generates (rune offset, position) pairs in s, stopping if
// f returns false. Character counts are UTF-16 code units, the unit the
// wire format mandates.
func walkContent(s string, f func(off int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false
	off := 0

	for _, r := range s {
		if !f(off, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if lastCR {
				// The \n of a \r\n pair was already counted as a break.
			} else {
				p.Line++
				p.Character = 0
			}
		default:
			p.Character += utf16Len(r)
		}
		lastCR = r == '\r'
		off++
	}
	f(off, p)
}

func utf16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

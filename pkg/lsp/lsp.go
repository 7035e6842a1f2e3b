// Package lsp implements a language server over stdio. The server
// tracks open YAML documents, publishes parse diagnostics, and answers
// textDocument/selectionRange with the chain of syntactic constructs
// around each position, from scalar out to document.
package lsp

import (
	"context"
	"os"

	"github.com/sourcegraph/jsonrpc2"
)

// Serve runs the language server on the given streams until the client
// disconnects or the context is canceled.
func Serve(ctx context.Context, in, out *os.File) error {
	s := newServer()
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(transport{in, out}, jsonrpc2.VSCodeObjectCodec{}),
		s.handler())
	select {
	case <-conn.DisconnectNotify():
		return nil
	case <-ctx.Done():
		conn.Close()
		return nil
	}
}

type transport struct{ in, out *os.File }

func (c transport) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c transport) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c transport) Close() error {
	if err := c.in.Close(); err != nil {
		c.out.Close()
		return err
	}
	return c.out.Close()
}

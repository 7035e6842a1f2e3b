package cli

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/yamltools/yamlspan/pkg/locator"
	"github.com/yamltools/yamlspan/pkg/tree"
)

// selectExpandArgs are the arguments of the yaml_select_expand tool.
type selectExpandArgs struct {
	YAML       string `json:"yaml"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	ExtendKeys bool   `json:"extendKeys,omitempty"`
}

// selectExpandResult is the structured result of yaml_select_expand.
type selectExpandResult struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	Kind        string `json:"kind"`
	Text        string `json:"text"`
}

// NewMCPCommand returns the command that runs the stdio MCP server.
func NewMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run a stdio Model Context Protocol server exposing selection expansion",
		Long: `Run a Model Context Protocol server over stdio.

The server exposes one tool, yaml_select_expand, which takes a YAML document
and two positions in it and returns the span of the smallest syntactically
complete construct containing both. Each call is stateless; the document is
parsed fresh per request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunMCPServer(cmd.Context())
		},
	}
}

// RunMCPServer serves MCP requests on stdin/stdout until the client
// disconnects.
func RunMCPServer(ctx context.Context) error {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "yamlspan",
		Version: GetVersion(),
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name: "yaml_select_expand",
		Description: "Expand a selection in a YAML document to the smallest syntactically complete " +
			"construct (scalar, key-value entry, sequence item, or block) containing both positions. " +
			"start and end are 0-based rune offsets of positions inside the document; extendKeys widens " +
			"a result that lands on a mapping key to the whole entry. Returns the selected span as rune " +
			"offsets and 1-based line/column pairs, the node kind, and the selected text.",
	}, handleSelectExpand)

	if err := server.Run(ctx, mcp.NewStdioTransport()); err != nil {
		return fmt.Errorf("mcp server failed: %w", err)
	}
	return nil
}

func handleSelectExpand(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[selectExpandArgs]) (*mcp.CallToolResultFor[selectExpandResult], error) {
	args := params.Arguments

	t, err := tree.Parse(args.YAML)
	if err != nil {
		return toolError(err), nil
	}
	node, err := locator.FindLCANodeWith(t, args.Start, args.End, locator.Options{ExtendKeys: args.ExtendKeys})
	if err != nil {
		return toolError(err), nil
	}

	startLine, startCol := t.Lines().Position(node.Span.Start)
	endLine, endCol := t.Lines().Position(node.Span.End)
	result := selectExpandResult{
		Start:       node.Span.Start,
		End:         node.Span.End,
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
		Kind:        node.Kind.String(),
		Text:        t.Text(node.Span),
	}
	return &mcp.CallToolResultFor[selectExpandResult]{
		Content: []mcp.Content{&mcp.TextContent{
			Text: fmt.Sprintf("%s [%d,%d): %s", result.Kind, result.Start, result.End, result.Text),
		}},
		StructuredContent: result,
	}, nil
}

// toolError reports a failed query as a tool-level error so the client
// sees the message instead of a broken call.
func toolError(err error) *mcp.CallToolResultFor[selectExpandResult] {
	return &mcp.CallToolResultFor[selectExpandResult]{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

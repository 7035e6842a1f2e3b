package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yamltools/yamlspan/pkg/cli"
	"github.com/yamltools/yamlspan/pkg/console"
	"github.com/yamltools/yamlspan/pkg/constants"
	"github.com/yamltools/yamlspan/pkg/lsp"
)

// Build-time variables set by GoReleaser
var (
	version = "dev"
)

// Global flags
var verbose bool

var rootCmd = &cobra.Command{
	Use:   constants.CLIName,
	Short: "Span queries over YAML parse trees",
	Long: ` = yamlspan

Locate YAML syntax by position. Every construct of a document (scalars, keys,
entries, sequence items, blocks) carries a half-open rune span, and yamlspan
answers position queries against those spans: expand an editor selection to the
smallest enclosing construct, find the node at a cursor, or look up where a
path like jobs.build.steps[0] lives in the source.

Inputs are YAML files, markdown files with YAML frontmatter (--frontmatter),
or stdin (pass - as the file).`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <file>",
	Short: "Expand a selection to the smallest enclosing YAML construct",
	Long: `Expand the selection between two positions to the smallest syntactically
complete YAML construct containing both, and print its span.

Positions are flat rune offsets or 1-based LINE:COLUMN pairs; both must use
the same form, and the span is printed in that form.

Examples:
  ` + constants.CLIName + ` select config.yaml --from 57 --to 123
  ` + constants.CLIName + ` select config.yaml --from 4:3 --to 9:14
  ` + constants.CLIName + ` select workflow.md --frontmatter --from 2:1 --to 5:8
  ` + constants.CLIName + ` select config.yaml --from 57 --to 123 --extend-keys --json
  ` + constants.CLIName + ` select config.yaml --from 57 --to 123 --watch`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		extendKeys, _ := cmd.Flags().GetBool("extend-keys")
		jsonFlag, _ := cmd.Flags().GetBool("json")
		frontmatter, _ := cmd.Flags().GetBool("frontmatter")
		watch, _ := cmd.Flags().GetBool("watch")
		if err := cli.SelectSpan(args[0], from, to, extendKeys, jsonFlag, frontmatter, watch, verbose); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var nodeCmd = &cobra.Command{
	Use:   "node <file>",
	Short: "Print the deepest node at a position",
	Long: `Print the kind and span of the deepest node at a position.

A position in a comment or blank gap resolves to the enclosing container;
pass --search forward or --search backward to resolve it to the nearest
scalar in that direction instead.

Examples:
  ` + constants.CLIName + ` node config.yaml --at 57
  ` + constants.CLIName + ` node config.yaml --at 4:3 --extend-keys
  ` + constants.CLIName + ` node config.yaml --at 57 --search forward`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		at, _ := cmd.Flags().GetString("at")
		search, _ := cmd.Flags().GetString("search")
		extendKeys, _ := cmd.Flags().GetBool("extend-keys")
		jsonFlag, _ := cmd.Flags().GetBool("json")
		frontmatter, _ := cmd.Flags().GetBool("frontmatter")
		if err := cli.LocateNode(args[0], at, search, extendKeys, jsonFlag, frontmatter, verbose); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var pathCmd = &cobra.Command{
	Use:   "path <file> <expression>",
	Short: "Print where a path expression lives in the source",
	Long: `Print the kind and span of the node a path expression names.

Expressions are dotted paths (jobs.build.steps[0], quoted segments allowed)
or JSON pointers (/jobs/build/steps/0). Lookups land on the mapping value or
sequence element; --entry widens the result to the whole mapping entry or
sequence item.

Examples:
  ` + constants.CLIName + ` path config.yaml jobs.build.steps[0]
  ` + constants.CLIName + ` path config.yaml /on/push/branches/0
  ` + constants.CLIName + ` path config.yaml jobs.build --entry --json`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		entry, _ := cmd.Flags().GetBool("entry")
		jsonFlag, _ := cmd.Flags().GetBool("json")
		frontmatter, _ := cmd.Flags().GetBool("frontmatter")
		if err := cli.LookupPath(args[0], args[1], entry, jsonFlag, frontmatter, verbose); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree <file>",
	Short: "Dump the span-annotated parse tree",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		frontmatter, _ := cmd.Flags().GetBool("frontmatter")
		if err := cli.DumpTree(args[0], jsonFlag, frontmatter, verbose); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Check that files parse as YAML",
	Long: `Parse every file and report well-formedness per file. Files are checked
concurrently and reported in argument order. The exit status is non-zero
when any file fails.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.CheckFiles(args, verbose); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run a language server speaking LSP over stdio",
	Long: `Run a language server over stdio. The server publishes parse diagnostics
for open documents and answers textDocument/selectionRange with the chain
of YAML constructs around each position.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := lsp.Serve(cmd.Context(), os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("%s version %s", constants.CLIName, version)))
	},
}

func init() {
	// Add global verbose flag to root command
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output showing detailed information")

	// Add position flags to select command
	selectCmd.Flags().String("from", "", "Start position as OFFSET or LINE:COLUMN")
	selectCmd.Flags().String("to", "", "End position as OFFSET or LINE:COLUMN")
	selectCmd.Flags().Bool("extend-keys", false, "Widen a key result to the whole mapping entry")
	selectCmd.Flags().Bool("json", false, "Print the result as JSON")
	selectCmd.Flags().Bool("frontmatter", false, "Read the YAML frontmatter block of a markdown file")
	selectCmd.Flags().BoolP("watch", "w", false, "Re-run the query whenever the file changes")
	_ = selectCmd.MarkFlagRequired("from")
	_ = selectCmd.MarkFlagRequired("to")

	// Add position flags to node command
	nodeCmd.Flags().String("at", "", "Position as OFFSET or LINE:COLUMN")
	nodeCmd.Flags().String("search", "", "Resolve gap positions to the nearest scalar ('forward' or 'backward')")
	nodeCmd.Flags().Bool("extend-keys", false, "Widen a key result to the whole mapping entry")
	nodeCmd.Flags().Bool("json", false, "Print the result as JSON")
	nodeCmd.Flags().Bool("frontmatter", false, "Read the YAML frontmatter block of a markdown file")
	_ = nodeCmd.MarkFlagRequired("at")

	// Add flags to path command
	pathCmd.Flags().Bool("entry", false, "Widen the result to the whole mapping entry or sequence item")
	pathCmd.Flags().Bool("json", false, "Print the result as JSON")
	pathCmd.Flags().Bool("frontmatter", false, "Read the YAML frontmatter block of a markdown file")

	// Add flags to tree command
	treeCmd.Flags().Bool("json", false, "Print the tree as JSON")
	treeCmd.Flags().Bool("frontmatter", false, "Read the YAML frontmatter block of a markdown file")

	// Add all commands to root
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(nodeCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(cli.NewMCPCommand())
	rootCmd.AddCommand(versionCmd)
}

func main() {
	// Set version information in the CLI package
	cli.SetVersionInfo(version)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}

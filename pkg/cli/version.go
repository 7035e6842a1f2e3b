// Package cli implements the yamlspan command surface: selection
// expansion queries, single-position lookup, path resolution, tree
// dumps, multi-file grammar checks, and the stdio MCP server.
package cli

// Package-level version information
var (
	version = "dev"
)

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v string) {
	version = v
}

// GetVersion returns the current version
func GetVersion() string {
	return version
}

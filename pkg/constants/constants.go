package constants

// CLIName is the binary name used in user-facing output and help text
const CLIName = "yamlspan"

// FrontmatterDelimiter separates YAML frontmatter from markdown body
const FrontmatterDelimiter = "---"

// DefaultWatchDebounce is the quiet period before a changed file is reparsed,
// in milliseconds
const DefaultWatchDebounce = 300

package cli

import (
	"fmt"
	"strings"

	"github.com/yamltools/yamlspan/pkg/constants"
)

// frontmatterBlock is the raw YAML frontmatter of a markdown file
// together with where it sits in that file.
type frontmatterBlock struct {
	yaml      string // raw YAML between the delimiters
	lineStart int    // 1-based line of the first YAML line
	runeStart int    // rune offset of the first YAML rune
}

// extractFrontmatter cuts the YAML frontmatter block out of markdown
// content. The block must open with "---" on the first line and close
// with a matching "---" line.
func extractFrontmatter(content string) (*frontmatterBlock, error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != constants.FrontmatterDelimiter {
		return nil, fmt.Errorf("no frontmatter block found")
	}

	endIndex := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == constants.FrontmatterDelimiter {
			endIndex = i
			break
		}
	}
	if endIndex == -1 {
		return nil, fmt.Errorf("frontmatter not properly closed")
	}

	yaml := strings.Join(lines[1:endIndex], "\n")
	if yaml != "" {
		yaml += "\n"
	}
	return &frontmatterBlock{
		yaml:      yaml,
		lineStart: 2,
		runeStart: len([]rune(lines[0])) + 1,
	}, nil
}

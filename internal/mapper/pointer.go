package mapper

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// dottedSegmentRe matches one dotted-path segment: a run of characters
// up to the next '.' or '[', or a bracketed index/key.
var dottedSegmentRe = regexp.MustCompile(`([^.\[\]]+)|\[([^\]]+)\]`)

// splitPath turns a path expression into lookup segments. Paths
// starting with '/' are RFC6901 JSON pointers; everything else is
// dotted notation with optional [n] and ["key"] brackets and an
// optional leading '$'. Empty paths yield no segments.
func splitPath(path string) ([]string, error) {
	if path == "" || path == "/" || path == "$" {
		return []string{}, nil
	}
	if strings.HasPrefix(path, "/") {
		return decodeJSONPointer(path)
	}
	return splitDotted(path)
}

// decodeJSONPointer decodes an RFC6901 pointer (e.g. "/jobs/build/steps/0/uses")
// into segments: ["jobs","build","steps","0","uses"].
// Returns empty slice for "" or "/".
func decodeJSONPointer(ptr string) ([]string, error) {
	if ptr == "" || ptr == "/" {
		return []string{}, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil, errors.New("invalid json pointer: must start with '/'")
	}
	parts := strings.Split(ptr[1:], "/")
	for i, p := range parts {
		// Unescape per RFC6901
		p = strings.ReplaceAll(p, "~1", "/")
		p = strings.ReplaceAll(p, "~0", "~")
		parts[i] = p
	}
	return parts, nil
}

// splitDotted splits dotted notation into segments. Bracketed segments
// keep their content with surrounding quotes removed, so both steps[0]
// and steps["deploy.prod"] work.
func splitDotted(path string) ([]string, error) {
	path = strings.TrimPrefix(path, "$.")
	path = strings.TrimPrefix(path, "$")

	matches := dottedSegmentRe.FindAllStringSubmatch(path, -1)
	segments := make([]string, 0, len(matches))
	for _, m := range matches {
		switch {
		case m[1] != "":
			segments = append(segments, m[1])
		case m[2] != "":
			segments = append(segments, trimQuotes(m[2]))
		}
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("invalid path expression: '%s'", path)
	}
	return segments, nil
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// isIndex determines whether a segment looks like an array index
func isIndex(segment string) bool {
	if len(segment) == 0 {
		return false
	}
	// Don't allow negative numbers as JSON Pointer indices
	if segment[0] == '-' {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

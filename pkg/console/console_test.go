package console

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      SourceError
		expected []string // Substrings that should be present in output
	}{
		{
			name: "basic error with position",
			err: SourceError{
				Position: ErrorPosition{
					File:   "config.yaml",
					Line:   5,
					Column: 10,
				},
				Severity: "error",
				Message:  "invalid syntax",
			},
			expected: []string{
				"config.yaml:5:10:",
				"error:",
				"invalid syntax",
			},
		},
		{
			name: "warning with hint",
			err: SourceError{
				Position: ErrorPosition{
					File:   "deploy.yaml",
					Line:   2,
					Column: 1,
				},
				Severity: "warning",
				Message:  "duplicate key",
				Hint:     "remove the earlier definition",
			},
			expected: []string{
				"deploy.yaml:2:1:",
				"warning:",
				"duplicate key",
				"hint:",
				"remove the earlier definition",
			},
		},
		{
			name: "error with context",
			err: SourceError{
				Position: ErrorPosition{
					File:   "config.yaml",
					Line:   3,
					Column: 5,
				},
				Severity: "error",
				Message:  "mapping value is not allowed in this context",
				Context: []string{
					"server:",
					"  host localhost",
					"  port: 8080",
				},
			},
			expected: []string{
				"config.yaml:3:5:",
				"error:",
				"mapping value is not allowed in this context",
				"2 |",
				"3 |",
				"4 |",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := FormatError(tt.err)

			for _, expected := range tt.expected {
				if !strings.Contains(output, expected) {
					t.Errorf("Expected output to contain '%s', but got:\n%s", expected, output)
				}
			}
		})
	}
}

func TestNewSourceError(t *testing.T) {
	src := "a: 1\nb: 2\nc 3\nd: 4\ne: 5\nf: 6\n"

	tests := []struct {
		name        string
		line        int
		wantContext []string
	}{
		{
			name:        "centered window",
			line:        3,
			wantContext: []string{"a: 1", "b: 2", "c 3", "d: 4", "e: 5"},
		},
		{
			name:        "window shrinks near file start",
			line:        1,
			wantContext: []string{"a: 1"},
		},
		{
			name:        "line past end yields no context",
			line:        40,
			wantContext: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewSourceError("config.yaml", src, tt.line, 1, "boom")
			if e.Severity != "error" {
				t.Errorf("Severity = %q, want %q", e.Severity, "error")
			}
			if len(e.Context) != len(tt.wantContext) {
				t.Fatalf("Context = %q, want %q", e.Context, tt.wantContext)
			}
			for i := range tt.wantContext {
				if e.Context[i] != tt.wantContext[i] {
					t.Errorf("Context[%d] = %q, want %q", i, e.Context[i], tt.wantContext[i])
				}
			}
		})
	}
}

func TestFormatSuccessMessage(t *testing.T) {
	output := FormatSuccessMessage("all files parsed")
	if !strings.Contains(output, "all files parsed") {
		t.Errorf("Expected output to contain message, got: %s", output)
	}
	if !strings.Contains(output, "✓") {
		t.Errorf("Expected output to contain checkmark, got: %s", output)
	}
}

func TestFormatInfoMessage(t *testing.T) {
	output := FormatInfoMessage("watching file")
	if !strings.Contains(output, "watching file") {
		t.Errorf("Expected output to contain message, got: %s", output)
	}
	if !strings.Contains(output, "ℹ") {
		t.Errorf("Expected output to contain info icon, got: %s", output)
	}
}

func TestFormatWarningMessage(t *testing.T) {
	output := FormatWarningMessage("position past end of file")
	if !strings.Contains(output, "position past end of file") {
		t.Errorf("Expected output to contain message, got: %s", output)
	}
	if !strings.Contains(output, "⚠") {
		t.Errorf("Expected output to contain warning icon, got: %s", output)
	}
}

func TestRenderTable(t *testing.T) {
	tests := []struct {
		name     string
		config   TableConfig
		expected []string // Substrings that should be present in output
	}{
		{
			name: "simple table",
			config: TableConfig{
				Headers: []string{"File", "Documents", "Status"},
				Rows: [][]string{
					{"a.yaml", "1", "ok"},
					{"b.yaml", "3", "ok"},
				},
			},
			expected: []string{
				"File",
				"Documents",
				"Status",
				"a.yaml",
				"b.yaml",
				"ok",
			},
		},
		{
			name: "table with title and total",
			config: TableConfig{
				Title:   "Check Results",
				Headers: []string{"File", "Status"},
				Rows: [][]string{
					{"a.yaml", "ok"},
					{"b.yaml", "syntax error"},
				},
				ShowTotal: true,
				TotalRow:  []string{"TOTAL", "1/2"},
			},
			expected: []string{
				"Check Results",
				"File",
				"Status",
				"a.yaml",
				"b.yaml",
				"syntax error",
				"TOTAL",
				"1/2",
			},
		},
		{
			name: "empty table",
			config: TableConfig{
				Headers: []string{},
				Rows:    [][]string{},
			},
			expected: []string{}, // Should return empty string
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := RenderTable(tt.config)

			if len(tt.expected) == 0 {
				if output != "" {
					t.Errorf("Expected empty output for empty table config, got: %s", output)
				}
				return
			}

			for _, expected := range tt.expected {
				if !strings.Contains(output, expected) {
					t.Errorf("Expected output to contain '%s', but got:\n%s", expected, output)
				}
			}
		})
	}
}

func TestToRelativePath(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		expectedFunc func(string, string) bool // Compare function that takes result and expected pattern
	}{
		{
			name: "relative path unchanged",
			path: "config.yaml",
			expectedFunc: func(result, expected string) bool {
				return result == "config.yaml"
			},
		},
		{
			name: "nested relative path unchanged",
			path: "deploy/config.yaml",
			expectedFunc: func(result, expected string) bool {
				return result == "deploy/config.yaml"
			},
		},
		{
			name: "absolute path converted to relative",
			path: "/tmp/config.yaml",
			expectedFunc: func(result, expected string) bool {
				// Should be a relative path that doesn't start with /
				return !strings.HasPrefix(result, "/") && strings.HasSuffix(result, "config.yaml")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToRelativePath(tt.path)
			if !tt.expectedFunc(result, tt.path) {
				t.Errorf("ToRelativePath(%s) = %s, but validation failed", tt.path, result)
			}
		})
	}
}

func TestFormatErrorWithAbsolutePaths(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")

	err := SourceError{
		Position: ErrorPosition{
			File:   tmpFile,
			Line:   5,
			Column: 10,
		},
		Severity: "error",
		Message:  "invalid syntax",
	}

	output := FormatError(err)

	if !strings.Contains(output, "config.yaml:5:10:") {
		t.Errorf("Expected output to contain relative file path with line:column, got: %s", output)
	}

	lines := strings.Split(output, "\n")
	if strings.HasPrefix(lines[0], "/") {
		t.Errorf("Expected output to start with relative path, but found absolute path: %s", lines[0])
	}

	if !strings.Contains(output, "invalid syntax") {
		t.Errorf("Expected output to contain error message, got: %s", output)
	}
}

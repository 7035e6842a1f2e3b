package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yamltools/yamlspan/pkg/locator"
)

func writeTempYAML(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSelectSpan(t *testing.T) {
	path := writeTempYAML(t, "workflow.yaml", "name: deploy\non:\n  push:\n    branches:\n      - main\n")

	tests := []struct {
		name     string
		from, to string
		asJSON   bool
	}{
		{name: "offsets", from: "0", to: "5"},
		{name: "line column", from: "1:1", to: "1:6"},
		{name: "cross entry", from: "2", to: "20"},
		{name: "json output", from: "0", to: "5", asJSON: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SelectSpan(path, tt.from, tt.to, false, tt.asJSON, false, false, false)
			if err != nil {
				t.Errorf("SelectSpan() error = %v", err)
			}
		})
	}
}

func TestSelectSpanMixedCoordinateSystems(t *testing.T) {
	err := SelectSpan("ignored.yaml", "3:1", "7", false, false, false, false, false)
	if err == nil {
		t.Fatal("SelectSpan() expected error for mixed position forms")
	}
	if !strings.Contains(err.Error(), "same coordinate system") {
		t.Errorf("error = %q, want coordinate system message", err.Error())
	}
}

func TestSelectSpanInvalidPosition(t *testing.T) {
	err := SelectSpan("ignored.yaml", "zero", "5", false, false, false, false, false)
	if err == nil || !strings.Contains(err.Error(), "invalid position") {
		t.Errorf("SelectSpan() error = %v, want invalid position", err)
	}
}

func TestSelectSpanOutOfRange(t *testing.T) {
	path := writeTempYAML(t, "small.yaml", "a: 1\n")
	err := SelectSpan(path, "999", "999", false, false, false, false, false)
	if err == nil {
		t.Fatal("SelectSpan() expected error for offset past end of input")
	}
	var oor *locator.OutOfRangeError
	if !errors.As(err, &oor) {
		t.Errorf("error = %v, want OutOfRangeError", err)
	}
}

func TestSelectSpanWatchStdin(t *testing.T) {
	err := SelectSpan("-", "0", "1", false, false, false, true, false)
	if err == nil || !strings.Contains(err.Error(), "cannot watch stdin") {
		t.Errorf("SelectSpan() error = %v, want watch stdin refusal", err)
	}
}

func TestLocateNode(t *testing.T) {
	path := writeTempYAML(t, "gaps.yaml", "a: 1\n# note\nb: 2\n")

	tests := []struct {
		name   string
		at     string
		search string
	}{
		{name: "on scalar", at: "0"},
		{name: "comment forward", at: "6", search: "forward"},
		{name: "comment backward", at: "6", search: "backward"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := LocateNode(path, tt.at, tt.search, false, false, false, false); err != nil {
				t.Errorf("LocateNode() error = %v", err)
			}
		})
	}
}

func TestLocateNodeInvalidSearch(t *testing.T) {
	path := writeTempYAML(t, "any.yaml", "a: 1\n")
	err := LocateNode(path, "0", "sideways", false, false, false, false)
	if err == nil || !strings.Contains(err.Error(), "invalid search direction") {
		t.Errorf("LocateNode() error = %v, want invalid search direction", err)
	}
}

func TestLookupPath(t *testing.T) {
	path := writeTempYAML(t, "workflow.yaml", "jobs:\n  build:\n    steps:\n      - run: make\n")

	if err := LookupPath(path, "jobs.build.steps[0]", false, false, false, false); err != nil {
		t.Errorf("LookupPath() error = %v", err)
	}
	if err := LookupPath(path, "/jobs/build", false, true, false, false); err != nil {
		t.Errorf("LookupPath() pointer form error = %v", err)
	}

	err := LookupPath(path, "jobs.missing", false, false, false, false)
	if err == nil || !strings.Contains(err.Error(), "key 'missing' not found") {
		t.Errorf("LookupPath() error = %v, want missing key message", err)
	}
}

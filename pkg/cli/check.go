package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/sourcegraph/conc/pool"
	"github.com/yamltools/yamlspan/pkg/console"
	"github.com/yamltools/yamlspan/pkg/tree"
)

// MaxConcurrentChecks bounds the parse fan-out in CheckFiles.
const MaxConcurrentChecks = 8

// checkResult holds the outcome of parsing one file.
type checkResult struct {
	index int
	path  string
	src   string
	docs  int
	err   error
}

// CheckFiles parses every file concurrently and reports
// well-formedness per file. This is grammar checking only; a file that
// parses is reported ok no matter what it contains. The returned error
// is non-nil when any file failed, after all results have been printed.
func CheckFiles(files []string, verbose bool) error {
	if len(files) == 0 {
		return fmt.Errorf("no files to check")
	}

	spin := console.NewSpinner(fmt.Sprintf("Checking %d file(s)...", len(files)))
	spin.Start()

	p := pool.NewWithResults[checkResult]().WithMaxGoroutines(MaxConcurrentChecks)
	for i, file := range files {
		i, file := i, file
		p.Go(func() checkResult {
			return checkFile(i, file)
		})
	}
	results := p.Wait()
	spin.Stop()

	// Results complete in arbitrary order; report in argument order.
	sort.Slice(results, func(a, b int) bool { return results[a].index < results[b].index })

	failed := 0
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "ok"
		docs := strconv.Itoa(r.docs)
		if r.err != nil {
			failed++
			docs = "-"
			var pe *tree.ParseError
			if errors.As(r.err, &pe) {
				status = "syntax error"
			} else {
				status = "unreadable"
			}
		}
		rows = append(rows, []string{console.ToRelativePath(r.path), docs, status})
	}

	fmt.Print(console.RenderTable(console.TableConfig{
		Headers:   []string{"File", "Documents", "Status"},
		Rows:      rows,
		ShowTotal: true,
		TotalRow:  []string{"TOTAL", "", fmt.Sprintf("%d/%d ok", len(results)-failed, len(results))},
	}))

	for _, r := range results {
		if r.err == nil {
			continue
		}
		var pe *tree.ParseError
		if errors.As(r.err, &pe) {
			fmt.Print(console.FormatError(console.NewSourceError(r.path, r.src, pe.Line, pe.Column, pe.Message)))
		} else {
			fmt.Println(console.FormatErrorMessage(fmt.Sprintf("%s: %v", r.path, r.err)))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	if verbose {
		fmt.Println(console.FormatSuccessMessage(fmt.Sprintf("All %d files parsed", len(results))))
	}
	return nil
}

func checkFile(index int, path string) checkResult {
	r := checkResult{index: index, path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		r.err = fmt.Errorf("failed to read input: %w", err)
		return r
	}
	r.src = string(data)

	t, err := tree.Parse(r.src)
	if err != nil {
		r.err = err
		return r
	}
	r.docs = len(t.Docs())
	return r
}

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/yamltools/yamlspan/pkg/console"
	"github.com/yamltools/yamlspan/pkg/constants"
)

// watchFile runs the query once, then re-runs it each time the file
// changes, debounced. The watch covers the parent directory and filters
// by name, so editors that replace the file on save stay covered.
func watchFile(path string, verbose bool, run func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	fmt.Println(console.FormatInfoMessage(fmt.Sprintf("Watching for file changes to %s...", path)))
	if verbose {
		fmt.Println("Press Ctrl+C to stop watching.")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	const debounceDelay = constants.DefaultWatchDebounce * time.Millisecond
	var debounceTimer *time.Timer

	rerun := func() {
		if err := run(); err != nil {
			fmt.Println(console.FormatErrorMessage(err.Error()))
		}
	}
	rerun()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if verbose {
				fmt.Println(console.FormatVerboseMessage(fmt.Sprintf("Detected change: %s (%s)", event.Name, event.Op.String())))
			}

			switch {
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, rerun)
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				// Save-by-rename editors recreate the file next; keep waiting.
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if verbose {
				fmt.Println(console.FormatWarningMessage(fmt.Sprintf("Watcher error: %v", err)))
			}

		case <-sigChan:
			if verbose {
				fmt.Println("\nStopping watch mode...")
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil
		}
	}
}

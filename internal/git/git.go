// Package git looks up annotated tag messages for release note extraction.
// It uses the go-git library by default and can fall back to the git CLI
// (`git tag -l --format=...`) when a repository layout go-git cannot read
// is in play.
package git

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-git/go-git/v5"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
// debugMu guards debugLogger.
var (
	debugMu     sync.RWMutex
	debugLogger func(format string, args ...any)
)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	debugMu.RLock()
	logger := debugLogger
	debugMu.RUnlock()

	if logger != nil {
		logger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

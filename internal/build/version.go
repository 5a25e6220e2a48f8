// Package build provides version and build information for relnotes.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

import (
	"fmt"
	"runtime"
)

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// Info returns the multi-line version report printed by --version.
func Info(program string) string {
	version := Version
	if IsDevBuild() {
		version += " (development build)"
	}
	return fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\ngo: %s\nplatform: %s/%s\n",
		program, version, truncateCommit(Commit), BuildDate,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}

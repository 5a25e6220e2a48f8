package notes

import (
	"context"

	"github.com/ariel-frischer/relnotes/internal/changelog"
)

// ChangelogSource looks up notes in a Markdown changelog file.
type ChangelogSource struct {
	Path string
}

// NewChangelogSource creates a ChangelogSource for the file at path.
// An empty path uses changelog.DefaultPath.
func NewChangelogSource(path string) *ChangelogSource {
	if path == "" {
		path = changelog.DefaultPath
	}
	return &ChangelogSource{Path: path}
}

// Name identifies the source in log and success messages.
func (s *ChangelogSource) Name() string {
	return s.Path
}

// Lookup returns the section for version. A missing changelog is not an error.
func (s *ChangelogSource) Lookup(ctx context.Context, version string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	return changelog.ExtractFile(s.Path, version)
}

// Versions lists the versions the changelog has sections for.
func (s *ChangelogSource) Versions() ([]string, error) {
	return changelog.ListVersions(s.Path)
}

package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// RepoTagReader reads annotated tag messages straight from the repository
// object store with go-git. No git binary is required.
type RepoTagReader struct {
	// Path is any directory inside the repository. Empty means the
	// current working directory.
	Path string
}

// NewRepoTagReader creates a RepoTagReader for the repository containing path.
func NewRepoTagReader(path string) *RepoTagReader {
	return &RepoTagReader{Path: path}
}

// Name identifies the source in log and success messages.
func (r *RepoTagReader) Name() string {
	return "git tag"
}

// Lookup returns the trimmed annotation message of the tag named exactly
// version. A missing tag, a lightweight tag or an empty message is reported
// as not found. Failing to open the repository is returned as an error, as
// is ctx ending before the lookup completes.
func (r *RepoTagReader) Lookup(ctx context.Context, version string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	return lookupWithContext(ctx, version, func() (string, bool, error) {
		repo, err := openRepo(r.Path)
		if err != nil {
			return "", false, err
		}
		return TagMessage(repo, version)
	})
}

// lookupWithContext runs lookup aside and returns early with the context
// error when ctx ends first. go-git reads take no context; an abandoned
// lookup finishes in the background and its result is discarded.
func lookupWithContext(ctx context.Context, version string, lookup func() (string, bool, error)) (string, bool, error) {
	type result struct {
		message string
		ok      bool
		err     error
	}

	done := make(chan result, 1)
	go func() {
		message, ok, err := lookup()
		done <- result{message: message, ok: ok, err: err}
	}()

	select {
	case <-ctx.Done():
		logDebug("[git] lookup of tag %q abandoned: %v", version, ctx.Err())
		return "", false, fmt.Errorf("reading tag %q: %w", version, ctx.Err())
	case res := <-done:
		return res.message, res.ok, res.err
	}
}

// TagMessage returns the trimmed annotation message of tag name in repo.
func TagMessage(repo *git.Repository, name string) (string, bool, error) {
	if name == "" {
		return "", false, nil
	}

	ref, err := repo.Tag(name)
	if errors.Is(err, git.ErrTagNotFound) {
		logDebug("[git] TagMessage: tag %q not found", name)
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("resolving tag %q: %w", name, err)
	}

	tag, err := repo.TagObject(ref.Hash())
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		logDebug("[git] TagMessage: tag %q is lightweight (no annotation)", name)
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading tag object %q: %w", name, err)
	}

	message := strings.TrimSpace(tag.Message)
	logDebug("[git] TagMessage: tag %q has %d byte message", name, len(message))
	return message, message != "", nil
}

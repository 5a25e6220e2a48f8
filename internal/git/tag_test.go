// Package git tests annotated tag lookup against real repositories built with go-git.
// Related: internal/git/tag.go
// Tags: git, tag, release-notes

package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSignature = &object.Signature{
	Name:  "Test",
	Email: "test@test.com",
	When:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
}

// newTestRepo initializes a repository with one commit and returns it with
// its directory and HEAD hash.
func newTestRepo(t *testing.T) (*git.Repository, string, plumbing.Hash) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test"), 0o644))
	_, err = worktree.Add("README.md")
	require.NoError(t, err)

	hash, err := worktree.Commit("Initial commit", &git.CommitOptions{Author: testSignature})
	require.NoError(t, err)

	return repo, dir, hash
}

func createAnnotatedTag(t *testing.T, repo *git.Repository, hash plumbing.Hash, name, message string) {
	t.Helper()
	_, err := repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  testSignature,
		Message: message,
	})
	require.NoError(t, err)
}

func TestTagMessage(t *testing.T) {
	repo, _, hash := newTestRepo(t)

	createAnnotatedTag(t, repo, hash, "v1.0.0", "Release 1.0.0\n\n- First stable release\n")
	createAnnotatedTag(t, repo, hash, "2.0.0", "  padded message  \n")
	_, err := repo.CreateTag("v0.9.0", hash, nil)
	require.NoError(t, err)

	tests := map[string]struct {
		name   string
		want   string
		wantOK bool
	}{
		"annotated tag": {
			name:   "v1.0.0",
			want:   "Release 1.0.0\n\n- First stable release",
			wantOK: true,
		},
		"message is trimmed": {
			name:   "2.0.0",
			want:   "padded message",
			wantOK: true,
		},
		"no v normalization": {
			name:   "1.0.0",
			wantOK: false,
		},
		"lightweight tag": {
			name:   "v0.9.0",
			wantOK: false,
		},
		"missing tag": {
			name:   "v3.0.0",
			wantOK: false,
		},
		"empty name": {
			name:   "",
			wantOK: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok, err := TagMessage(repo, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepoTagReader_Lookup(t *testing.T) {
	repo, dir, hash := newTestRepo(t)
	createAnnotatedTag(t, repo, hash, "v1.2.0", "Tag notes")

	t.Run("finds tag from subdirectory", func(t *testing.T) {
		sub := filepath.Join(dir, "nested", "deeper")
		require.NoError(t, os.MkdirAll(sub, 0o755))

		reader := NewRepoTagReader(sub)
		got, ok, err := reader.Lookup(context.Background(), "v1.2.0")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Tag notes", got)
	})

	t.Run("not a repository", func(t *testing.T) {
		reader := NewRepoTagReader(t.TempDir())
		got, ok, err := reader.Lookup(context.Background(), "v1.2.0")
		require.Error(t, err)
		assert.False(t, ok)
		assert.Empty(t, got)
		assert.ErrorIs(t, err, git.ErrRepositoryNotExists)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, ok, err := NewRepoTagReader(dir).Lookup(ctx, "v1.2.0")
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, ok)
	})

	t.Run("name", func(t *testing.T) {
		assert.Equal(t, "git tag", NewRepoTagReader(dir).Name())
	})
}

func TestSetDebugLogger(t *testing.T) {
	var lines []string
	SetDebugLogger(func(format string, args ...any) {
		lines = append(lines, format)
	})
	defer SetDebugLogger(nil)

	repo, _, _ := newTestRepo(t)
	_, _, err := TagMessage(repo, "missing")
	require.NoError(t, err)

	assert.NotEmpty(t, lines)
}

func TestLookupWithContext(t *testing.T) {
	t.Run("returns the lookup result", func(t *testing.T) {
		msg, ok, err := lookupWithContext(context.Background(), "v1.0.0", func() (string, bool, error) {
			return "notes", true, nil
		})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "notes", msg)
	})

	t.Run("deadline ends a blocked lookup", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, ok, err := lookupWithContext(ctx, "v1.0.0", func() (string, bool, error) {
			<-release
			return "late", true, nil
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.False(t, ok)
	})
}

// Package cli tests the relnotes command end to end against temp changelogs
// and go-git repositories.
// Related: internal/cli/root.go, internal/cli/extract.go
// Tags: cli, root, release-notes

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChangelog = `# Changelog

## [Unreleased]

- Work in progress

## [1.2.0] - 2024-03-01

### Added
- Tag fallback

## [1.1.0] - 2024-02-01

- Initial changelog
`

// setupProject creates an isolated working directory holding a changelog and
// a git repository with one commit. It returns the directory.
func setupProject(t *testing.T, changelog string, tags map[string]string) string {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	chdir(t, dir)

	if changelog != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte(changelog), 0o644))
	}

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test"), 0o644))
	_, err = worktree.Add("README.md")
	require.NoError(t, err)

	sig := &object.Signature{Name: "Test", Email: "test@test.com", When: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	hash, err := worktree.Commit("Initial commit", &git.CommitOptions{Author: sig})
	require.NoError(t, err)

	for name, message := range tags {
		_, err := repo.CreateTag(name, hash, &git.CreateTagOptions{Tagger: sig, Message: message})
		require.NoError(t, err)
	}

	return dir
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := ExecuteContext(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	assert.Equal(t, "relnotes <version> <output-file>", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestRootCmd_Flags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName  string
		shorthand string
	}{
		"config flag exists":      {flagName: "config", shorthand: "c"},
		"changelog flag exists":   {flagName: "changelog"},
		"repo flag exists":        {flagName: "repo"},
		"tag-backend flag exists": {flagName: "tag-backend"},
		"git-timeout flag exists": {flagName: "git-timeout"},
		"debug flag exists":       {flagName: "debug", shorthand: "d"},
	}

	cmd := NewRootCmd()
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := cmd.Flags().Lookup(tt.flagName)
			require.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func TestExecute_Sources(t *testing.T) {
	tests := map[string]struct {
		changelog  string
		tags       map[string]string
		version    string
		wantNotes  string
		wantSource string
	}{
		"changelog section": {
			changelog:  testChangelog,
			version:    "v1.2.0",
			wantNotes:  "### Added\n- Tag fallback",
			wantSource: "CHANGELOG.md",
		},
		"changelog wins over tag": {
			changelog:  testChangelog,
			tags:       map[string]string{"1.1.0": "tag message"},
			version:    "1.1.0",
			wantNotes:  "- Initial changelog",
			wantSource: "CHANGELOG.md",
		},
		"falls back to annotated tag": {
			changelog:  testChangelog,
			tags:       map[string]string{"v2.0.0": "Release 2.0.0\n\n- Big one\n"},
			version:    "v2.0.0",
			wantNotes:  "Release 2.0.0\n\n- Big one",
			wantSource: "git tag",
		},
		"no changelog uses tag": {
			tags:       map[string]string{"v3.0.0": "three"},
			version:    "v3.0.0",
			wantNotes:  "three",
			wantSource: "git tag",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := setupProject(t, tt.changelog, tt.tags)
			out := filepath.Join(dir, "dist", "NOTES.md")

			code, stdout, stderr := run(t, tt.version, out)
			require.Equal(t, ExitSuccess, code, "stderr: %s", stderr)

			got, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNotes, string(got))
			assert.Contains(t, stdout, "[OK]", "non-terminal output uses the ASCII checkmark")
			assert.Contains(t, stdout, "Release notes for "+tt.version+" written to "+out)
			assert.Contains(t, stdout, "(source: "+tt.wantSource+")")
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	dir := setupProject(t, testChangelog, nil)
	out := filepath.Join(dir, "NOTES.md")
	require.NoError(t, os.WriteFile(out, []byte("previous notes"), 0o644))

	code, stdout, stderr := run(t, "v9.9.9", out)

	assert.Equal(t, ExitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no release notes found for version v9.9.9")
	assert.Contains(t, stderr, "git tag -a v9.9.9")
	assert.Contains(t, stderr, "## [v9.9.9] - YYYY-MM-DD")
	assert.Contains(t, stderr, "CHANGELOG.md has entries for: Unreleased, 1.2.0, 1.1.0")

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous notes", string(got), "existing output must be untouched")
}

func TestExecute_NotFoundCreatesNothing(t *testing.T) {
	dir := setupProject(t, "", nil)
	out := filepath.Join(dir, "NOTES.md")

	code, _, _ := run(t, "v1.0.0", out)

	assert.Equal(t, ExitFailure, code)
	assert.NoFileExists(t, out)
}

func TestExecute_Overwrites(t *testing.T) {
	dir := setupProject(t, testChangelog, nil)
	out := filepath.Join(dir, "NOTES.md")

	code, _, _ := run(t, "1.1.0", out)
	require.Equal(t, ExitSuccess, code)
	code, _, _ = run(t, "1.2.0", out)
	require.Equal(t, ExitSuccess, code)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "### Added\n- Tag fallback", string(got))
}

func TestExecute_InvalidArguments(t *testing.T) {
	tests := map[string]struct {
		args    []string
		wantErr string
	}{
		"no arguments": {
			args:    nil,
			wantErr: "expected 2 arguments (version and output file), got 0",
		},
		"one argument": {
			args:    []string{"v1.0.0"},
			wantErr: "got 1",
		},
		"three arguments": {
			args:    []string{"v1.0.0", "a.md", "b.md"},
			wantErr: "got 3",
		},
		"blank version": {
			args:    []string{"  ", "a.md"},
			wantErr: "version must not be empty",
		},
		"blank output": {
			args:    []string{"v1.0.0", ""},
			wantErr: "output file must not be empty",
		},
		"unknown flag": {
			args:    []string{"v1.0.0", "a.md", "--nope"},
			wantErr: "unknown flag: --nope",
		},
		"unknown backend": {
			args:    []string{"v1.0.0", "a.md", "--tag-backend", "svn"},
			wantErr: `unknown tag backend "svn"`,
		},
		"negative timeout": {
			args:    []string{"v1.0.0", "a.md", "--git-timeout", "-1s"},
			wantErr: "--git-timeout must not be negative",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			setupProject(t, testChangelog, nil)

			code, stdout, stderr := run(t, tt.args...)
			assert.Equal(t, ExitInvalidArguments, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Argument Error")
			assert.Contains(t, stderr, tt.wantErr)
			assert.NoFileExists(t, "a.md")
		})
	}
}

func TestExecute_ConfigAndFlags(t *testing.T) {
	dir := setupProject(t, "", nil)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "CHANGES.md"), []byte(testChangelog), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("## [1.2.0]\nfrom flag\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relnotes.yml"), []byte("changelog_path: docs/CHANGES.md\n"), 0o644))

	t.Run("project config", func(t *testing.T) {
		code, stdout, stderr := run(t, "1.2.0", "out.md")
		require.Equal(t, ExitSuccess, code, "stderr: %s", stderr)
		assert.Contains(t, stdout, "(source: docs/CHANGES.md)")
	})

	t.Run("flag overrides config", func(t *testing.T) {
		code, _, stderr := run(t, "1.2.0", "out.md", "--changelog", "other.md")
		require.Equal(t, ExitSuccess, code, "stderr: %s", stderr)
		got, err := os.ReadFile("out.md")
		require.NoError(t, err)
		assert.Equal(t, "from flag", string(got))
	})

	t.Run("invalid config", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yml")
		require.NoError(t, os.WriteFile(bad, []byte("tag_backend: svn\n"), 0o644))

		code, _, stderr := run(t, "1.2.0", "out.md", "--config", bad)
		assert.Equal(t, ExitInvalidArguments, code)
		assert.Contains(t, stderr, "Configuration Error")
		assert.Contains(t, stderr, "loading configuration")
	})
}

func TestExecute_Debug(t *testing.T) {
	dir := setupProject(t, "", map[string]string{"v1.0.0": "tagged"})

	code, _, stderr := run(t, "v1.0.0", filepath.Join(dir, "out.md"), "--debug")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stderr, "[relnotes]")
	assert.Contains(t, stderr, "[notes] CHANGELOG.md has no notes for v1.0.0")
	assert.Contains(t, stderr, "[git] opening repository at")
}

func TestExecute_GitTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake git is a shell script")
	}

	dir := setupProject(t, testChangelog, nil)

	// A git that never answers in time.
	binDir := t.TempDir()
	script := "#!/bin/sh\nexec sleep 10\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "git"), []byte(script), 0o755))
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	out := filepath.Join(dir, "NOTES.md")
	code, stdout, stderr := run(t, "v9.9.9", out, "--tag-backend", "cli", "--git-timeout", "200ms")

	assert.Equal(t, ExitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "looking up release notes for v9.9.9 timed out")
	assert.Contains(t, stderr, "Raise --git-timeout")
	assert.NotContains(t, stderr, "exited with status")
	assert.NoFileExists(t, out)
}

func TestExecute_VersionPassedExactly(t *testing.T) {
	dir := setupProject(t, "", map[string]string{"v1.0.0": "tagged"})
	out := filepath.Join(dir, "out.md")

	code, _, stderr := run(t, " v1.0.0", out)

	assert.Equal(t, ExitFailure, code, "the tag is looked up by the identifier exactly as given")
	assert.Contains(t, stderr, "no release notes found for version  v1.0.0")
	assert.NoFileExists(t, out)

	code, _, _ = run(t, "v1.0.0", out)
	assert.Equal(t, ExitSuccess, code)
}

func TestExecute_Version(t *testing.T) {
	code, stdout, _ := run(t, "--version")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "relnotes ")
	assert.Contains(t, stdout, "commit: ")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, ExitSuccess, exitCode(&buf, nil))
	assert.Equal(t, 5, exitCode(&buf, NewExitError(5)))
	assert.Empty(t, buf.String(), "ExitError is not printed again")

	assert.Equal(t, ExitFailure, exitCode(&buf, assert.AnError))
	assert.Contains(t, buf.String(), "Error: "+assert.AnError.Error())
}

func TestExitError(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "exit status 3", NewExitError(ExitInvalidArguments).Error())
}

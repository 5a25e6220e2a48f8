package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrGitNotFound is returned when the git executable is not on PATH.
var ErrGitNotFound = errors.New("git executable not found in PATH")

// ErrInvalidTagName is returned for names the git CLI would treat as a
// pattern or an option instead of an exact tag name.
var ErrInvalidTagName = errors.New("tag name contains pattern or option characters")

// tagFormat prints the object type, a NUL, then the tag contents.
const tagFormat = "--format=%(objecttype)%00%(contents)"

// CommandFactory builds the command used to run git.
// It has the signature of exec.CommandContext so tests can substitute a
// helper process.
type CommandFactory func(ctx context.Context, name string, args ...string) *exec.Cmd

// CommandError describes a git invocation that exited non-zero.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s exited with status %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// CLITagReader reads annotated tag messages by running the git CLI.
type CLITagReader struct {
	// Dir is the working directory for git. Empty means the current directory.
	Dir string
	// Binary is the git executable (default "git").
	Binary string
	// Command builds the process (default exec.CommandContext).
	Command CommandFactory
}

// NewCLITagReader creates a CLITagReader that runs git in dir.
func NewCLITagReader(dir string) *CLITagReader {
	return &CLITagReader{Dir: dir}
}

// Name identifies the source in log and success messages.
func (r *CLITagReader) Name() string {
	return "git tag (cli)"
}

// TagMessageArgs returns the git arguments that print the tag named name.
func TagMessageArgs(name string) []string {
	return []string{"tag", "-l", tagFormat, name}
}

// Lookup runs git to fetch the annotation message of the tag named exactly
// version. A non-zero exit, a missing git binary, a lightweight tag or an
// empty message all report not found; the first two also return an error
// describing what went wrong. If ctx ends while git runs, the context error
// is returned.
func (r *CLITagReader) Lookup(ctx context.Context, version string) (string, bool, error) {
	if version == "" {
		return "", false, nil
	}
	if strings.ContainsAny(version, "*?[\\") || strings.HasPrefix(version, "-") {
		return "", false, fmt.Errorf("%w: %q", ErrInvalidTagName, version)
	}

	args := TagMessageArgs(version)
	cmd := r.command()(ctx, r.binary(), args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logDebug("[git] running %s %s", r.binary(), strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return "", false, classifyRunError(ctx, err, args, stderr.String())
	}

	return parseTagOutput(version, stdout.String())
}

// parseTagOutput splits "<objecttype>\x00<contents>" and keeps only
// annotated tags.
func parseTagOutput(name, out string) (string, bool, error) {
	if strings.TrimSpace(out) == "" {
		logDebug("[git] tag %q not found", name)
		return "", false, nil
	}

	objectType, contents, found := strings.Cut(out, "\x00")
	if !found {
		return "", false, fmt.Errorf("unexpected git tag output for %q", name)
	}
	if objectType != "tag" {
		logDebug("[git] tag %q is lightweight (points to %s)", name, objectType)
		return "", false, nil
	}

	message := strings.TrimSpace(contents)
	return message, message != "", nil
}

// classifyRunError converts an exec failure into ErrGitNotFound or a CommandError.
// When ctx is done git was killed by exec.CommandContext, so the context
// error is returned instead of the resulting exit status.
func classifyRunError(ctx context.Context, err error, args []string, stderr string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("running git %s: %w", strings.Join(args, " "), ctxErr)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return ErrGitNotFound
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandError{
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr),
		}
	}

	return fmt.Errorf("running git: %w", err)
}

func (r *CLITagReader) binary() string {
	if r.Binary == "" {
		return "git"
	}
	return r.Binary
}

func (r *CLITagReader) command() CommandFactory {
	if r.Command == nil {
		return exec.CommandContext
	}
	return r.Command
}

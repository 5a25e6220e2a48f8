// Package cli implements the relnotes command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ariel-frischer/relnotes/internal/build"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/spf13/cobra"
)

const usageLine = "relnotes <version> <output-file>"

// rootOptions holds the flag values of one invocation.
type rootOptions struct {
	configPath    string
	changelogPath string
	repoPath      string
	tagBackend    string
	gitTimeout    time.Duration
	debug         bool
}

// NewRootCmd builds the relnotes command. Each call returns an independent
// command so tests can run it repeatedly.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   usageLine,
		Short: "Extract the release notes for a version into a file",
		Long: `Extract the release notes for a version into a file.

The changelog is searched first for a "## [<version>]" heading; the version
matches with or without a leading "v". When the changelog has no such
section, the message of the annotated git tag named exactly <version> is
used instead.

When neither source has notes, nothing is written and the command exits
with status 1 after explaining how to add them.`,
		Example: `  # Write the notes for v1.2.0 to RELEASE_NOTES.md
  relnotes v1.2.0 RELEASE_NOTES.md

  # Use a changelog in another location
  relnotes 1.2.0 dist/notes.md --changelog docs/CHANGES.md

  # Read tags with the git binary instead of go-git
  relnotes v1.2.0 notes.md --tag-backend cli --git-timeout 10s`,
		Version:       build.Version,
		Args:          validateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args[0], args[1])
		},
	}

	cmd.SetVersionTemplate(build.Info("relnotes"))
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), usageLine,
			"Run 'relnotes --help' to list the available flags")
	})

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default: .relnotes.yml)")
	flags.StringVar(&opts.changelogPath, "changelog", "", "Changelog to search (default: CHANGELOG.md)")
	flags.StringVar(&opts.repoPath, "repo", "", "Directory inside the git repository (default: .)")
	flags.StringVar(&opts.tagBackend, "tag-backend", "", "How tags are read: go-git or cli (default: go-git)")
	flags.DurationVar(&opts.gitTimeout, "git-timeout", 0, "Timeout for the tag lookup, e.g. 10s (default: none)")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")

	return cmd
}

// validateArgs requires a non-blank version and output path.
func validateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(2)(cmd, args); err != nil {
		return clierrors.MissingArguments(len(args))
	}
	if strings.TrimSpace(args[0]) == "" {
		return clierrors.EmptyVersion()
	}
	if strings.TrimSpace(args[1]) == "" {
		return clierrors.NewArgumentErrorWithUsage("output file must not be empty", usageLine,
			"Pass the file the notes should be written to, e.g. RELEASE_NOTES.md")
	}
	return nil
}

// Execute runs relnotes with the process arguments and returns the exit code.
func Execute() int {
	return ExecuteContext(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteContext runs relnotes with args and returns the exit code.
func ExecuteContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return exitCode(stderr, cmd.ExecuteContext(ctx))
}

// exitCode maps the error returned by the command to an exit code,
// printing it first unless it was already reported.
func exitCode(stderr io.Writer, err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(stderr, cliErr)
		if cliErr.Category == clierrors.Argument || cliErr.Category == clierrors.Configuration {
			return ExitInvalidArguments
		}
		return ExitFailure
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitFailure
}

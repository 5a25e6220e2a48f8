package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/ariel-frischer/relnotes/internal/notes"
	"github.com/ariel-frischer/relnotes/internal/progress"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func runExtract(cmd *cobra.Command, opts *rootOptions, version, outputPath string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logf := newDebugLogger(stderr, cfg.Debug)
	git.SetDebugLogger(logf)
	defer git.SetDebugLogger(nil)

	changelogSrc := notes.NewChangelogSource(cfg.ChangelogPath)
	tagSrc, err := newTagSource(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if cfg.GitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.GitTimeout)
		defer cancel()
	}

	logf("[cli] extracting notes for %s into %s (changelog: %s, tags: %s)",
		version, outputPath, cfg.ChangelogPath, cfg.TagBackend)

	caps := progress.DetectTerminalCapabilities(stderr)
	if cfg.Debug {
		caps.IsTTY = false
	}
	sp := progress.StartSpinner(stderr, caps, fmt.Sprintf("Looking up release notes for %s", version))

	res, err := notes.New(changelogSrc, tagSrc).WithLogger(logf).Extract(ctx, version, outputPath)
	sp.Stop()
	if err != nil {
		clierrors.FprintError(stderr, extractError(err, version, outputPath, changelogSrc, logf))
		return NewExitError(ExitFailure)
	}

	symbols := progress.SelectSymbols(progress.DetectTerminalCapabilities(stdout))
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(stdout, "%s Release notes for %s written to %s (source: %s)\n",
		green(symbols.Checkmark), res.Version, res.Path, res.Source)
	return nil
}

// loadConfig loads the layered configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Configuration, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, clierrors.InvalidConfig(err)
	}

	flags := cmd.Flags()
	if flags.Changed("changelog") {
		cfg.ChangelogPath = opts.changelogPath
	}
	if flags.Changed("repo") {
		cfg.RepoPath = opts.repoPath
	}
	if flags.Changed("tag-backend") {
		cfg.TagBackend = opts.tagBackend
	}
	if flags.Changed("git-timeout") {
		if opts.gitTimeout < 0 {
			return nil, clierrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("--git-timeout must not be negative, got %s", opts.gitTimeout),
				usageLine, "Use 0 to disable the timeout")
		}
		cfg.GitTimeout = opts.gitTimeout
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}

	if cfg.ChangelogPath == "" {
		return nil, clierrors.NewArgumentErrorWithUsage("--changelog must not be empty", usageLine)
	}
	return cfg, nil
}

// newTagSource returns the tag reader for the configured backend.
func newTagSource(cfg *config.Configuration) (notes.Source, error) {
	switch cfg.TagBackend {
	case config.BackendGoGit:
		return git.NewRepoTagReader(cfg.RepoPath), nil
	case config.BackendCLI:
		return git.NewCLITagReader(cfg.RepoPath), nil
	default:
		return nil, clierrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("unknown tag backend %q", cfg.TagBackend), usageLine,
			fmt.Sprintf("Valid values are: %s, %s", config.BackendGoGit, config.BackendCLI))
	}
}

// extractError turns an Extract failure into the error shown to the user.
func extractError(err error, version, outputPath string, changelogSrc *notes.ChangelogSource, logf func(string, ...any)) *clierrors.CLIError {
	var notFound *notes.NotFoundError
	switch {
	case errors.As(err, &notFound):
		known, listErr := changelogSrc.Versions()
		if listErr != nil {
			logf("[cli] listing changelog versions: %v", listErr)
		}
		steps := notes.Guidance(version, changelogSrc.Path, known)
		for _, f := range notFound.Failures {
			steps = append(steps, fmt.Sprintf("%s could not be read: %v", f.Source, f.Err))
		}
		return clierrors.NotesNotFound(version, err, steps...)
	case errors.Is(err, context.DeadlineExceeded):
		return clierrors.WrapWithMessage(err, clierrors.Runtime,
			fmt.Sprintf("looking up release notes for %s timed out", version),
			"Raise --git-timeout or set it to 0 to disable the timeout")
	case errors.Is(err, context.Canceled):
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "interrupted")
	default:
		return clierrors.OutputWriteFailed(outputPath, err)
	}
}

// newDebugLogger returns a Printf-style logger writing to w when enabled,
// and a no-op otherwise.
func newDebugLogger(w io.Writer, enabled bool) func(format string, args ...any) {
	if !enabled {
		return func(string, ...any) {}
	}
	return log.New(w, "[relnotes] ", log.Ltime).Printf
}

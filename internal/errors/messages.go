package errors

import "fmt"

// Common error messages for the relnotes CLI.
// These templates ensure consistent, actionable error messages.

// MissingArguments creates an error for a wrong number of positional arguments.
func MissingArguments(got int) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("expected 2 arguments (version and output file), got %d", got),
		"relnotes <version> <output-file>",
		"Example: relnotes v1.0.0 RELEASE_NOTES.md",
	)
}

// EmptyVersion creates an error for a blank version argument.
func EmptyVersion() *CLIError {
	return NewArgumentErrorWithUsage(
		"version must not be empty",
		"relnotes <version> <output-file>",
		"Pass the version being released, e.g. v1.0.0 or 1.0.0",
	)
}

// NotesNotFound creates the error shown when neither the changelog nor the
// tag has notes for version. steps are the remediation instructions.
func NotesNotFound(version string, cause error, steps ...string) *CLIError {
	return &CLIError{
		Category:    Runtime,
		Message:     fmt.Sprintf("no release notes found for version %s", version),
		Remediation: steps,
		Err:         cause,
	}
}

// OutputWriteFailed creates an error for a failed write of the notes file.
func OutputWriteFailed(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("writing release notes to %s", path),
		"Check that the output directory is writable",
		"Make sure the output path is not an existing directory",
	)
}

// InvalidConfig creates an error for configuration that failed to load.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"loading configuration",
		"Check .relnotes.yml and ~/.config/relnotes/config.yml for syntax errors",
		"Valid tag_backend values are: go-git, cli",
	)
}

package cli

import "fmt"

// Exit codes for the relnotes CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates the notes were written
	ExitSuccess = 0

	// ExitFailure indicates no notes were found or they could not be written
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = 3
)

// ExitError carries a process exit code through cobra's error return.
// The message, if any, has already been printed when an ExitError is returned.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError for code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

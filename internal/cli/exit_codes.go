package cli

import "fmt"

// Exit codes for the relnote CLI. The no-new-commits path exits 0 like a
// successful update, so CI jobs never fail on quiet pushes.
const (
	// ExitSuccess indicates successful command execution, including the
	// no-changes path.
	ExitSuccess = 0

	// ExitFailure indicates an uncategorized failure.
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments.
	ExitInvalidArguments = 2

	// ExitConfigError indicates invalid or missing configuration.
	ExitConfigError = 3

	// ExitRepositoryError indicates the repository could not be read.
	ExitRepositoryError = 4

	// ExitPushFailed indicates the commit or push failed. The local state
	// is left modified; re-running after fixing the remote is safe.
	ExitPushFailed = 5
)

// ExitError carries an exit code through the cobra error path.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap exposes the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and optional cause.
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// ExitCode extracts the exit code from an error. Plain errors map to
// ExitFailure; nil maps to ExitSuccess.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code
	}
	return ExitFailure
}

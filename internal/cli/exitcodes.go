package cli

import (
	"errors"
	"fmt"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, daemon errors, unexpected failures.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or arguments, unknown flags.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Task, task list or checklist item not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Unreadable stdin, unparsable dates.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty titles or names, unknown tags or states.
	ExitValidation = 5
)

// ExitCodeError carries the process exit code of a failed command
type ExitCodeError struct {
	Code int
	Err  error

	// Reported is set once the error has been shown to the user
	Reported bool
}

func (e *ExitCodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error { return e.Err }

// Exit wraps err with an exit code
func Exit(code int, err error) error {
	return &ExitCodeError{Code: code, Err: err}
}

// ExitCode returns the exit code for an error returned by a command
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitError
}

// Reported reports whether err was already shown to the user by a command
func Reported(err error) bool {
	var exitErr *ExitCodeError
	return errors.As(err, &exitErr) && exitErr.Reported
}

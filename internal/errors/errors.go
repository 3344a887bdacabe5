package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess        = 0   // Indicates successful execution.
	ExitErrorGeneric   = 1   // Indicates a generic error.
	ExitErrorTimeout   = 2   // Indicates the batch timed out.
	ExitErrorAllFailed = 3   // Indicates every expert in the batch failed.
	ExitErrorConfig    = 4   // Indicates a configuration error.
	ExitErrorCanceled  = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// InvocationError encapsulates a completion request failure while preserving
// the original cause. This allows for structured error handling and inspection
// of what went wrong when querying an expert.
type InvocationError struct {
	// Expert is the name of the responder whose invocation failed.
	Expert string
	// Cause is the underlying error that triggered this invocation error.
	Cause error
}

// Error returns a message identifying the expert and the underlying cause.
func (e InvocationError) Error() string {
	return fmt.Sprintf("expert %q: %v", e.Expert, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e InvocationError) Unwrap() error { return e.Cause }

// TimeoutError represents a batch or request timeout. It captures the
// operation name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// HandleBatchError maps a batch-level failure to an exit code and writes a
// short diagnostic to out. It distinguishes cancellation (SIGINT) from
// deadline expiry from everything else, mirroring the exit code contract
// documented on the constants above.
//
// Parameters:
//   - err: The error that terminated the batch.
//   - out: The writer for the diagnostic message.
//
// Returns:
//   - int: The process exit code for this error class.
func HandleBatchError(err error, out io.Writer) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(out, "Canceled.")
		return ExitErrorCanceled
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(out, "Batch timed out.")
		return ExitErrorTimeout
	default:
		var cfgErr ConfigError
		var valErr ValidationError
		if errors.As(err, &cfgErr) || errors.As(err, &valErr) {
			fmt.Fprintf(out, "Configuration error: %v\n", err)
			return ExitErrorConfig
		}
		fmt.Fprintf(out, "Error: %v\n", err)
		return ExitErrorGeneric
	}
}

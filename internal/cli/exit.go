package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"seqkernel/core/kerr"
	"seqkernel/internal/dispatch"
	"seqkernel/internal/jsonutil"
	"seqkernel/internal/output"
	"seqkernel/internal/writers"
)

// Exit codes for CLI commands.
const (
	ExitSuccess     = 0   // Successful execution
	ExitFailure     = 1   // No result, or an internal failure
	ExitUsage       = 2   // Bad flags, arguments, config or kernel validation error
	ExitIO          = 3   // Input or output could not be read or written
	ExitInterrupted = 130 // Cancelled by a signal
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code
	Message string // Error message; empty means exit silently
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps err onto a process exit code.
func GetExitCode(err error) int {
	var exitErr *ExitError
	var pathErr *fs.PathError
	switch {
	case err == nil, writers.IsBrokenPipe(err):
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case kerr.IsValidation(err):
		return ExitUsage
	case errors.As(err, &pathErr):
		return ExitIO
	}
	return ExitFailure
}

// reportError prints err on stderr: an ErrorV1 line in json modes, a plain
// line otherwise.
func reportError(stderr io.Writer, asJSON bool, err error) {
	var exitErr *ExitError
	if err == nil || (errors.As(err, &exitErr) && exitErr.Message == "" && exitErr.Err == nil) {
		return
	}
	if asJSON {
		jobID := ""
		var je *dispatch.JobError
		if errors.As(err, &je) {
			jobID = je.ID.String()
		}
		_ = jsonutil.EncodeLine(stderr, output.ToAPIError(err, jobID))
		return
	}
	_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
}

package flashrom

import (
	"fmt"
	"strings"

	"github.com/veska/flashpad/internal/urls"
)

// ExecutionError represents a failure during a flashrom invocation.
// This occurs when the flashrom process itself fails (non-zero exit code,
// failure to start, etc.).
type ExecutionError struct {
	// Args are the flashrom arguments that failed
	Args []string
	// ExitCode is the flashrom process exit code
	ExitCode int
	// Stderr is the flashrom stderr output
	Stderr string
	// Stdout is the flashrom stdout output (for context)
	Stdout string
	// Underlying error if any
	Err error
}

func (e *ExecutionError) Error() string {
	cmd := "flashrom " + strings.Join(e.Args, " ")
	if e.Err != nil {
		return fmt.Sprintf("flashrom invocation failed: %s (exit code %d): %v\nstderr: %s",
			cmd, e.ExitCode, e.Err, e.Stderr)
	}
	return fmt.Sprintf("flashrom invocation failed: %s (exit code %d)\nstderr: %s",
		cmd, e.ExitCode, e.Stderr)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// ParseError represents a failure to parse flashrom output.
// This occurs when the output doesn't match the expected format, for
// example after a flashrom version changes its wording.
type ParseError struct {
	// Operation is the operation whose output failed to parse
	Operation string
	// Field is the specific field that failed to parse
	Field string
	// Output is the flashrom output that failed to parse
	Output string
	// Underlying error
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse flashrom output for %s, field %q: %v\nOutput: %s",
		e.Operation, e.Field, e.Err, e.Output)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TimeoutError represents a timeout during a flashrom operation.
type TimeoutError struct {
	// Operation is the operation that timed out
	Operation string
	// Timeout is the duration that was exceeded
	Timeout string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("flashrom operation %q timed out after %s\n"+
		"Hint: Increase timeout with --timeout or check the programmer connection",
		e.Operation, e.Timeout)
}

// PrerequisiteError represents a missing prerequisite (the flashrom binary).
type PrerequisiteError struct {
	// Prerequisite is the name of the missing prerequisite
	Prerequisite string
	// Details provides additional context
	Details string
	// Underlying error
	Err error
}

func (e *PrerequisiteError) Error() string {
	msg := fmt.Sprintf("missing prerequisite: %s", e.Prerequisite)
	if e.Details != "" {
		msg += "\n" + e.Details
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\nError: %v", e.Err)
	}
	return msg
}

func (e *PrerequisiteError) Unwrap() error {
	return e.Err
}

// NoChipError represents a probe that found no flash chip on the selected
// programmer.
type NoChipError struct {
	// Programmer is the programmer that was probed
	Programmer string
}

func (e *NoChipError) Error() string {
	return fmt.Sprintf("no flash chip detected on programmer %q\n"+
		"Hint: Check the programmer connection and chip seating.\n"+
		"Supported hardware: %s",
		e.Programmer, urls.SupportedHardware)
}

// NoProgrammerError represents an operation attempted without a programmer
// selected.
type NoProgrammerError struct{}

func (e *NoProgrammerError) Error() string {
	return "no programmer selected\n" +
		"Hint: Pass --programmer or set a default with 'flashpad config set-programmer'.\n" +
		"List available programmers with 'flashpad programmers'."
}

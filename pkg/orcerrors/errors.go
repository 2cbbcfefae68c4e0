// Package orcerrors provides structured error handling for orcio with rich
// context, stack traces, and error categorization. It enables consistent
// error handling patterns across the entire codebase.
//
// # Overview
//
// The orcerrors package extends Go's standard error handling with:
//   - Error categorization through ErrorType
//   - Structured context with key-value details
//   - Automatic stack trace capture
//   - Error wrapping with cause preservation
//
// # Basic Usage
//
//	// Create a new error
//	err := orcerrors.New(orcerrors.ErrorTypeConfig, "buffer size must be positive")
//
//	// Add context
//	err = err.WithDetail("bufferSize", size)
//
//	// Wrap existing errors
//	if err := comp.Compress(data); err != nil {
//	    return orcerrors.Wrap(err, orcerrors.ErrorTypeData, "column flush failed").
//	        WithDetail("column", ordinal)
//	}
//
// # Error Types
//
// Writer-tree construction has three failure categories of its own:
// ErrorTypeUnsupportedKind (a physical type kind the dispatcher does not
// recognize), ErrorTypeDialect (a recognized kind that the active format
// dialect cannot encode), and ErrorTypeMalformedSchema (the physical and
// logical schema trees are structurally misaligned). The remaining types
// cover the supporting packages. All errors produced by this module are
// fatal and non-retryable.
package orcerrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error, used for error handling
// strategies, monitoring, and test assertions.
type ErrorType string

const (
	// ErrorTypeInternal represents internal system errors
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeData represents data processing errors
	ErrorTypeData ErrorType = "data"
	// ErrorTypeUnsupportedKind represents a physical type kind the
	// dispatcher does not recognize at all
	ErrorTypeUnsupportedKind ErrorType = "unsupported_kind"
	// ErrorTypeDialect represents a recognized kind that is disallowed
	// under the active format dialect
	ErrorTypeDialect ErrorType = "dialect_unsupported"
	// ErrorTypeMalformedSchema represents structural misalignment between
	// the physical and logical schema trees
	ErrorTypeMalformedSchema ErrorType = "malformed_schema"
)

// Error represents a structured error with context, providing rich debugging
// information for construction-time failures.
//
// Fields:
//   - Type: Categorizes the error for handling strategies
//   - Message: Human-readable error description
//   - Cause: The underlying error that caused this error
//   - Details: Key-value pairs providing additional context
//   - Stack: Call stack at the point of error creation
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack, capturing
// the function name, file path, and line number for debugging.
type StackFrame struct {
	Function string // Fully qualified function name
	File     string // Source file path
	Line     int    // Line number in source file
}

// Error implements the error interface, returning a formatted error message
// that includes the error type, message, and cause (if present).
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error, enabling compatibility with errors.Is
// and errors.As for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error, providing additional
// context for debugging. This method can be chained for adding multiple
// details.
//
// Example:
//
//	err := orcerrors.New(orcerrors.ErrorTypeDialect, "kind not supported by dialect").
//	    WithDetail("kind", kind.String()).
//	    WithDetail("dialect", dialect.String())
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message, automatically
// capturing the call stack at the point of creation.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf creates a new error with a formatted message.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context, preserving the
// original error as the cause. If the error is already a structured Error,
// its stack trace is preserved. Returns nil if the input error is nil.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType checks if the error is of the given type, useful for error handling
// strategies and test assertions on the construction failure taxonomy.
//
// Example:
//
//	if orcerrors.IsType(err, orcerrors.ErrorTypeDialect) {
//	    // The schema mixes a kind the chosen dialect cannot encode;
//	    // retrying with the primary dialect may succeed.
//	}
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// IsRetryable returns true if the error is retryable based on its type.
// Every error type this module produces represents an invalid input or
// configuration, so none are retryable; the function exists so callers can
// treat orcio errors uniformly with other structured-error packages.
func IsRetryable(err error) bool {
	return false
}

// captureStack captures the current call stack up to maxFrames deep,
// skipping the specified number of frames from the top.
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}

// Package errors provides structured error types for the specview application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - AXIS_*: Axis specification and labeling failures
//   - STATE_*: States-axis naming failures
//   - INVALID_*: Other input validation failures
//   - VIEWER_*: Viewer selection and construction failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownAxisLabel, "unknown axis label %q", label)
//	if errors.Is(err, errors.ErrCodeUnknownAxisLabel) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDataset, origErr, "failed to load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Axis specification errors
	ErrCodeAxisCountMismatch Code = "AXIS_COUNT_MISMATCH"
	ErrCodeInvalidAxisCount  Code = "INVALID_AXIS_COUNT"
	ErrCodeUnknownAxisLabel  Code = "UNKNOWN_AXIS_LABEL"
	ErrCodeDuplicateAxisRole Code = "DUPLICATE_AXIS_ROLE"
	ErrCodeInvalidSingleAxis Code = "INVALID_SINGLE_AXIS"
	ErrCodeUnsupportedRank   Code = "UNSUPPORTED_RANK"
	ErrCodeTargetAxisMissing Code = "TARGET_AXIS_NOT_FOUND"

	// States naming errors
	ErrCodeStateNamesMismatch Code = "STATE_NAMES_COUNT_MISMATCH"
	ErrCodeTooManyStates      Code = "TOO_MANY_STATES"

	// Viewer errors
	ErrCodeViewerNotImplemented Code = "VIEWER_NOT_IMPLEMENTED"

	// Dataset and input errors
	ErrCodeInvalidDataset Code = "INVALID_DATASET"
	ErrCodeInvalidShape   Code = "INVALID_SHAPE"
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeInvalidInput   Code = "INVALID_INPUT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err is one of the axis/state validation
// failures that a caller should present to the user rather than treat as
// an internal fault.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeAxisCountMismatch, ErrCodeInvalidAxisCount,
		ErrCodeUnknownAxisLabel, ErrCodeDuplicateAxisRole,
		ErrCodeInvalidSingleAxis, ErrCodeUnsupportedRank,
		ErrCodeStateNamesMismatch, ErrCodeTooManyStates:
		return true
	}
	return false
}

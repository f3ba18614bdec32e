// Package errors defines the coded error type shared by the shapecache
// packages and the CLI.
//
// Every failure a caller may act on carries a [Code]. The CLI maps
// INVALID_CONFIG and INVALID_INPUT to exit status 2 and prints
// [UserMessage] instead of the raw chain.
//
//   - INVALID_CONFIG: a repetition setting or settings file was rejected
//   - INVALID_INPUT: a shape stream line could not be decoded or validated
//   - WRITE_FAILED: the record writer failed during a flush
//   - KIND_DISABLED: the shape kind is not selected for caching
//   - INTERNAL_ERROR: a consistency check failed
//
// Codes survive wrapping by fmt.Errorf and by other *Error values:
//
//	err := errors.Wrap(errors.ErrCodeWriteFailed, cause, "flush %s", kind)
//	err = fmt.Errorf("line %d: %w", n, err)
//	errors.Is(err, errors.ErrCodeWriteFailed) // true
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeWriteFailed   Code = "WRITE_FAILED"
	ErrCodeKindDisabled  Code = "KIND_DISABLED"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
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
// It unwraps the error chain looking for any *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.Cause
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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

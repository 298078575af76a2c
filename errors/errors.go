/*
Package errors provides classified error types for vstyle.

Resolution of style attributes is best-effort: missing scales, fields or
referer marks degrade to an undefined value and are never reported as errors.
The errors of this package are reserved for conditions where silent
degradation would be indistinguishable from a legitimate result, e.g. an
unrecognized gradient kind, and for malformed configuration documents.

Usage

	err := errors.New(errors.ErrCodeConfiguration, "unknown gradient kind %q", kind)
	if errors.Is(err, errors.ErrCodeConfiguration) {
	    // handle configuration error
	}

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error classification.
type Code string

// Error codes.
const (
	// ErrCodeConfiguration flags a malformed composite style, detected when
	// compiling an attribute accessor.
	ErrCodeConfiguration Code = "INVALID_CONFIGURATION"
	// ErrCodeInvalidSpec flags a malformed mark spec document.
	ErrCodeInvalidSpec Code = "INVALID_SPEC"
	// ErrCodeInvalidTheme flags a theme which did not pass validation.
	ErrCodeInvalidTheme Code = "INVALID_THEME"
	// ErrCodeInvalidFormat flags an unsupported document format.
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	// ErrCodeNotFound flags a missing named entity, e.g. a mark name.
	ErrCodeNotFound Code = "NOT_FOUND"
	// ErrCodeUnsupported flags an operation we do not support.
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a classified error with an optional cause.
type Error struct {
	Code    Code   // machine-readable error code
	Message string // human-readable message
	Cause   error  // underlying error, may be nil
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
// Returns the empty code if err is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

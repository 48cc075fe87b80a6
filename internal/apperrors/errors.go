// Package apperrors provides typed error handling for the auth pages server.
// It uses struct-based errors with separate user-safe and internal messages.
package apperrors

import (
	"errors"
	"fmt"
)

// Code categorizes errors for consistent handling across the application.
type Code int

// Error codes for categorizing application errors.
const (
	// CodeUnknown indicates an unspecified error type
	CodeUnknown Code = iota
	// CodeInvalidInput indicates malformed or invalid input
	CodeInvalidInput
	// CodeValidation indicates input failed validation rules
	CodeValidation
	// CodeConfig indicates an invalid configuration setting
	CodeConfig
	// CodeTransport indicates the backend could not be reached
	CodeTransport
	// CodeTemplate indicates a page template failed to load or render
	CodeTemplate
)

// Sentinel errors for errors.Is matching by code.
var (
	ErrValidation = &Error{Code: CodeValidation}
	ErrConfig     = &Error{Code: CodeConfig}
	ErrTransport  = &Error{Code: CodeTransport}
	ErrTemplate   = &Error{Code: CodeTemplate}
)

// Error represents a domain error with separate user-safe and internal messages.
// The Message field is always safe to expose to clients.
// The Internal field contains debugging details and should only be logged.
type Error struct {
	Code     Code   // Error category for handler mapping
	Message  string // User-safe message (always exposable)
	Internal string // Internal details (for logging only)
	Field    string // Optional: which field caused the error
	Err      error  // Wrapped underlying error
}

// Error implements the error interface.
// Returns the user-safe message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithInternal adds internal debugging details to the error.
func (e *Error) WithInternal(format string, args ...any) *Error {
	e.Internal = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps an underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// String returns the string representation of the error code.
func (c Code) String() string {
	switch c {
	case CodeUnknown:
		return "unknown"
	case CodeInvalidInput:
		return "invalid_input"
	case CodeValidation:
		return "validation"
	case CodeConfig:
		return "config"
	case CodeTransport:
		return "transport"
	case CodeTemplate:
		return "template"
	default:
		return fmt.Sprintf("unknown_code_%d", c)
	}
}

// Is reports whether target matches this error's code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// InvalidInput creates a new invalid input error with the given message.
func InvalidInput(message string) *Error {
	return &Error{
		Code:    CodeInvalidInput,
		Message: message,
	}
}

// InvalidField creates a validation error bound to a single field.
func InvalidField(field, message string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: message,
		Field:   field,
	}
}

// Config creates a configuration error for the named setting.
func Config(setting, message string) *Error {
	return &Error{
		Code:    CodeConfig,
		Message: fmt.Sprintf("%s: %s", setting, message),
		Field:   setting,
	}
}

// Transport creates an error for a failed round trip to the backend.
func Transport(err error) *Error {
	return &Error{
		Code:    CodeTransport,
		Message: "Transport error: " + err.Error(),
		Err:     err,
	}
}

// Template creates an error for a page template failure.
func Template(name string, err error) *Error {
	return &Error{
		Code:    CodeTemplate,
		Message: fmt.Sprintf("template %s failed", name),
		Err:     err,
	}
}

// Package errors provides structured error types for assetgrid.
//
// Errors carry a machine-readable [Code] alongside a human-readable message
// and an optional cause, so the CLI, the preview server and library callers
// can all react to the same failure categories.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - FILE_NOT_FOUND: Missing catalog or config files
//   - RENDER_FAILED: A renderer could not produce an artifact
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCatalog, "category %d has no name", i)
//	if errors.Is(err, errors.ErrCodeInvalidCatalog) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRenderFailed, origErr, "render %s", format)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable failure category.
type Code string

const (
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidCatalog Code = "INVALID_CATALOG"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeRenderFailed   Code = "RENDER_FAILED"
	ErrCodeWriteFailed    Code = "WRITE_FAILED"
	ErrCodeInternal       Code = "INTERNAL_ERROR"
	ErrCodeUnsupported    Code = "UNSUPPORTED"
)

// Error pairs a [Code] with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.text()
}

func (e *Error) Unwrap() error { return e.Cause }

// text is the message followed by the cause, if any.
func (e *Error) text() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// New returns an error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// as finds the outermost *Error in err's chain.
func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage formats err for display: without the code prefix for an
// *Error, as-is otherwise.
func UserMessage(err error) string {
	if e, ok := as(err); ok {
		return e.text()
	}
	return err.Error()
}

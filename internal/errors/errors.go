package errors

import (
	stderrors "errors"
	"fmt"
)

// As wraps the standard library errors.As so callers of this package do
// not need a second errors import.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// AppError is an application-specific error type
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// wraps an error with a code and message
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Error code constants
const (
	CodeInternal   = "INTERNAL_ERROR"
	CodeNotFound   = "NOT_FOUND"        // Record missing from the library
	CodeInvalidArg = "INVALID_ARGUMENT" // Caller-supplied metadata or time range is invalid
	CodeExternal   = "EXTERNAL_ERROR"   // ffmpeg invocation failed
	CodeStorage    = "STORAGE_ERROR"    // Durable snapshot load/save failed
)

// Code returns the AppError code of err, or CodeInternal when err is not
// an AppError.
func Code(err error) string {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return err != nil && Code(err) == code
}

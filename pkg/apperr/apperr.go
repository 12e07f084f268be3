package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents standardized error codes
type Code string

const (
	CodeValidation   Code = "VALIDATION"
	CodeNotFound     Code = "NOT_FOUND"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeConflict     Code = "CONFLICT"
	CodeInternal     Code = "INTERNAL"
)

// MsgServerError is the only message a 500 ever carries outward.
const MsgServerError = "Server error!"

// HTTPStatusMap maps error codes to HTTP status codes.
// Duplicate registrations answer 400 rather than 409 to keep the public contract.
var HTTPStatusMap = map[Code]int{
	CodeValidation:   http.StatusBadRequest,
	CodeNotFound:     http.StatusNotFound,
	CodeUnauthorized: http.StatusUnauthorized,
	CodeConflict:     http.StatusBadRequest,
	CodeInternal:     http.StatusInternalServerError,
}

// AppError represents an application error with code and message
type AppError struct {
	Code    Code
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

// HTTPStatus returns the HTTP status code for this error
func (e *AppError) HTTPStatus() int {
	if status, ok := HTTPStatusMap[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func New(code Code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func Validation(message string) *AppError   { return New(CodeValidation, message, nil) }
func NotFound(message string) *AppError     { return New(CodeNotFound, message, nil) }
func Unauthorized(message string) *AppError { return New(CodeUnauthorized, message, nil) }
func Conflict(message string) *AppError     { return New(CodeConflict, message, nil) }

// Internal wraps an unexpected failure. The cause is kept for logs only.
func Internal(cause error) *AppError {
	return New(CodeInternal, MsgServerError, cause)
}

// From returns err as an *AppError, wrapping anything else as Internal.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Code == code
}

package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes. Each maps to exactly one HTTP status in StatusCode.
const (
	EInvalid      = "invalid"
	EConflict     = "conflict"
	ENotFound     = "not found"
	EUnauthorized = "unauthorized"
	EInternal     = "internal error"
)

// Error is the application error type.
//
// Code drives the HTTP status. Msg is what the caller sees. Op names the
// operation that failed and Err carries the underlying cause, if any.
type Error struct {
	Code string
	Msg  string
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Invalid reports a missing or malformed request field.
func Invalid(msg string) *Error {
	return &Error{Code: EInvalid, Msg: msg}
}

// Conflict reports a violated uniqueness constraint.
func Conflict(msg string) *Error {
	return &Error{Code: EConflict, Msg: msg}
}

// NotFound reports that no record matched.
func NotFound(msg string) *Error {
	return &Error{Code: ENotFound, Msg: msg}
}

// Unauthorized reports a credential mismatch.
func Unauthorized(msg string) *Error {
	return &Error{Code: EUnauthorized, Msg: msg}
}

// Internal wraps a storage or I/O failure.
func Internal(op string, err error) *Error {
	return &Error{Code: EInternal, Op: op, Err: err}
}

// ErrorCode returns the code of the first *Error in err's chain.
// Errors that carry no code are internal.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return EInternal
}

// ErrorMessage returns the message shown to the caller for err.
func ErrorMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Msg != "" {
			return e.Msg
		}
		if e.Err != nil {
			return e.Err.Error()
		}
		return e.Code
	}
	return err.Error()
}

var statusCodes = map[string]int{
	EInvalid:      http.StatusBadRequest,
	EConflict:     http.StatusBadRequest,
	ENotFound:     http.StatusNotFound,
	EUnauthorized: http.StatusUnauthorized,
	EInternal:     http.StatusInternalServerError,
}

// StatusCode maps err to an HTTP status.
func StatusCode(err error) int {
	if s, ok := statusCodes[ErrorCode(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return err != nil && ErrorCode(err) == code
}

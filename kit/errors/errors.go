// Package errors defines the classified error type returned by every ShelfDB
// operation. Each failure carries a stable code and a human-readable message.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes. Any time this set changes the HTTP mapping in StatusCode must follow.
const (
	EInternal     = "internal error" // storage failure
	ENotFound     = "not found"
	EConflict     = "conflict"
	EInvalid      = "invalid"
	EUnauthorized = "unauthorized"
)

// Error is the error struct of ShelfDB.
//
// Code targets automated handlers, Msg is shown to the caller, Op names the
// logical operation that failed and Err chains the underlying cause.
//
//	&Error{
//	    Code: ENotFound,
//	    Op:   "contents.Insert",
//	    Msg:  fmt.Sprintf("table %s does not exist", name),
//	}
type Error struct {
	Code string
	Msg  string
	Op   string
	Err  error
}

// Error implements the error interface by writing out the recursive messages.
func (e *Error) Error() string {
	if e.Msg != "" && e.Err != nil {
		var b strings.Builder
		b.WriteString(e.Msg)
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
		return b.String()
	} else if e.Msg != "" {
		return e.Msg
	} else if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("<%s>", e.Code)
}

// Unwrap exposes the wrapped cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Unauthorized reports a request without a verified tenant.
func Unauthorized(op, msg string) *Error {
	return &Error{Code: EUnauthorized, Op: op, Msg: msg}
}

// Invalid reports a validation failure detected before storage access.
func Invalid(op, msg string) *Error {
	return &Error{Code: EInvalid, Op: op, Msg: msg}
}

// NotFound reports an operation against a missing table.
func NotFound(op, msg string) *Error {
	return &Error{Code: ENotFound, Op: op, Msg: msg}
}

// Conflict reports an action that cannot be performed in the current state.
func Conflict(op, msg string) *Error {
	return &Error{Code: EConflict, Op: op, Msg: msg}
}

// Storage wraps an underlying storage engine error.
func Storage(op string, err error) *Error {
	return &Error{Code: EInternal, Op: op, Msg: "storage failure", Err: err}
}

// ErrorCode returns the code of the root error, if available; otherwise returns EInternal.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return EInternal
	}

	if e.Code != "" {
		return e.Code
	}

	if e.Err != nil {
		return ErrorCode(e.Err)
	}

	return EInternal
}

// ErrorOp returns the op of the error, if available.
func ErrorOp(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	if e.Op != "" {
		return e.Op
	}
	if e.Err != nil {
		return ErrorOp(e.Err)
	}
	return ""
}

// ErrorMessage returns the human-readable message of the error, if available.
// Otherwise returns a generic error message.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return "An internal error has occurred."
	}

	if e.Msg != "" {
		return e.Msg
	}

	if e.Err != nil {
		return ErrorMessage(e.Err)
	}

	return "An internal error has occurred."
}

// StatusCode maps an error code to the HTTP status the api layer responds with.
func StatusCode(err error) int {
	switch ErrorCode(err) {
	case "":
		return http.StatusOK
	case EUnauthorized:
		return http.StatusUnauthorized
	case EInvalid:
		return http.StatusBadRequest
	case ENotFound:
		return http.StatusNotFound
	case EConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type errEncode struct {
	Code string `json:"code"`
	Msg  string `json:"message,omitempty"`
	Op   string `json:"op,omitempty"`
}

// MarshalJSON encodes the code, message and op. The wrapped cause is not
// exposed to callers.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(errEncode{Code: e.Code, Msg: ErrorMessage(e), Op: e.Op})
}

package domain

import "errors"

type ErrorCode string

const (
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeConflict        ErrorCode = "CONFLICT"
	CodeInvalidState    ErrorCode = "INVALID_STATE"
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	CodeInternal        ErrorCode = "INTERNAL"
)

// Sentinels for errors.Is checks. Any *Error with the same code matches.
var (
	ErrNotFound        = &Error{Code: CodeNotFound, Message: "not found"}
	ErrConflict        = &Error{Code: CodeConflict, Message: "conflict"}
	ErrInvalidState    = &Error{Code: CodeInvalidState, Message: "invalid state"}
	ErrInvalidArgument = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrInternal        = &Error{Code: CodeInternal, Message: "internal error"}
)

// Error is a classified failure carrying a human-readable message.
// Err holds the underlying cause, if any; it is never shown to API callers
// for CodeInternal.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Code == CodeInternal {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func NotFound(msg string) error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Code: CodeConflict, Message: msg}
}

func InvalidState(msg string) error {
	return &Error{Code: CodeInvalidState, Message: msg}
}

func InvalidArgument(msg string) error {
	return &Error{Code: CodeInvalidArgument, Message: msg}
}

// Internal wraps a store or infrastructure failure.
func Internal(msg string, err error) error {
	return &Error{Code: CodeInternal, Message: msg, Err: err}
}

// CodeOf returns the classification of err. Unclassified errors are internal.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the caller-facing message for err. Internal failures
// get a generic message so store details never leak.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Code != CodeInternal {
		return de.Message
	}
	return "internal server error"
}

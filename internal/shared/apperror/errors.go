// Package apperror defines the error taxonomy shared by use cases and handlers.
// Use cases return *Error values; handlers translate the Kind to an HTTP status.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// KindInternal is an unexpected store or driver failure.
	KindInternal Kind = iota
	// KindInput is a missing or invalid request field.
	KindInput
	// KindAuth is a rejected credential. Its message must not reveal which part was wrong.
	KindAuth
	// KindUnavailable means the store could not be reached at startup.
	KindUnavailable
	// KindConflict is a uniqueness violation such as a duplicate email.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindAuth:
		return "auth"
	case KindUnavailable:
		return "unavailable"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error carries a user-facing message and the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ErrStoreUnavailable is returned by every store-dependent operation while no client is held.
var ErrStoreUnavailable = &Error{Kind: KindUnavailable, Message: "Database connection not available"}

// Input returns a KindInput error with the given message.
func Input(msg string) *Error {
	return &Error{Kind: KindInput, Message: msg}
}

// Auth returns a KindAuth error.
func Auth(msg string, err error) *Error {
	return &Error{Kind: KindAuth, Message: msg, Err: err}
}

// Conflict returns a KindConflict error.
func Conflict(msg string, err error) *Error {
	return &Error{Kind: KindConflict, Message: msg, Err: err}
}

// Unavailable returns a KindUnavailable error for a dependency that could not be reached.
func Unavailable(msg string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: msg, Err: err}
}

// Internal wraps an unexpected failure.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain.
// Errors outside the taxonomy are KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message of the first *Error in err's chain, or "".
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}

// HTTPStatus maps a Kind to its response code.
// Conflicts share 400 with input errors to keep the published contract.
func HTTPStatus(k Kind) int {
	switch k {
	case KindInput, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

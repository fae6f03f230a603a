// Package apperr defines the error taxonomy shared by the storage,
// service and handler layers: not-found, validation and storage errors,
// each with a fixed HTTP status.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindNotFound Kind = iota
	KindValidation
	KindStorage
)

// Error carries a kind, a user-facing message and an optional cause.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	return e.msg
}

// Unwrap provides compatibility for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Kind() Kind {
	return e.kind
}

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = &Error{kind: KindNotFound, msg: "not found"}

// Validation wraps a business-rule rejection with a human-readable reason.
func Validation(reason string) *Error {
	return &Error{kind: KindValidation, msg: "validation error: " + reason}
}

// Storage wraps an unclassified storage failure.
func Storage(cause error) *Error {
	return &Error{kind: KindStorage, msg: "database error: " + cause.Error(), cause: cause}
}

// HTTPStatus maps an error to its externally-visible status code.
// Errors outside the taxonomy map to 500.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindStorage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

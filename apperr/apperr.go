// Package apperr defines the error kinds surfaced by the service layer.
// Handlers translate them to HTTP statuses; services never retry them.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindBadRequest Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

type Error struct {
	kind    Kind
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Status() int {
	switch e.kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind Kind, format string, args ...any) error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) error {
	return newError(KindBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) error {
	return newError(KindUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) error {
	return newError(KindForbidden, format, args...)
}

func NotFound(format string, args ...any) error {
	return newError(KindNotFound, format, args...)
}

func Conflict(format string, args ...any) error {
	return newError(KindConflict, format, args...)
}

// Status returns the HTTP status for err, or 500 for unclassified errors.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status()
	}
	return http.StatusInternalServerError
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == kind
}

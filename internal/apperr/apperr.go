// Package apperr carries the caller-facing error taxonomy: every validation
// failure in the engines is one of NotFound, Forbidden, BadRequest or
// Conflict, surfaced synchronously with a human-readable message.
package apperr

import "errors"

type Kind int

const (
	KindBadRequest Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// KindOf extracts the taxonomy kind, or ok=false for errors outside it
// (persistence-layer failures propagate untouched and map to 500).
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

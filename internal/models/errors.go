package models

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures so transport layers can map
// them to status codes without inspecting error text.
type ErrorKind string

const (
	// ErrValidation marks a malformed or empty request.
	ErrValidation ErrorKind = "validation"
	// ErrUpstream marks a failure from an embedding or generation backend.
	ErrUpstream ErrorKind = "upstream"
	// ErrTimeout marks a generation call that exceeded its deadline.
	ErrTimeout ErrorKind = "timeout"
	// ErrInternal marks everything else.
	ErrInternal ErrorKind = "internal"
)

// Error is a classified pipeline error.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// WrapError classifies err under kind with a contextual message.
func WrapError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Errorf returns a classified error with a formatted message.
func Errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf reports the classification of err. Deadline expiry counts as
// ErrTimeout even when unwrapped; anything else unclassified is ErrInternal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return ErrInternal
}

package services

import (
	"errors"

	"taskboard/validation"
)

// Kind classifies a service failure.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindReference
	KindNotFound
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindReference:
		return "reference"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Error is returned by every service operation. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Fields  validation.Errors
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return KindValidation
	}
	return KindInternal
}

// Invalid wraps the result of a validation call so it maps to a 400 with field
// details. Errors that did not come from validation are treated as internal.
func Invalid(err error) *Error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return &Error{Kind: KindValidation, Message: "Validation error", Fields: verrs}
	}
	return internal("Validation error", err)
}

func conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func reference(msg string) *Error {
	return &Error{Kind: KindReference, Message: msg}
}

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

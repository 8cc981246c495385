// Package errs holds the error kinds shared by storage, services and handlers.
package errs

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalid         = errors.New("invalid")
	ErrStorage         = errors.New("storage failure")
)

// Error is an error whose Message is safe to show to a client.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error        { return New(ErrNotFound, message) }
func Forbidden(message string) *Error       { return New(ErrForbidden, message) }
func Invalid(message string) *Error         { return New(ErrInvalid, message) }
func Unauthenticated(message string) *Error { return New(ErrUnauthenticated, message) }

// PublicMessage returns the client-facing message carried by err, or fallback
// when err has none.
func PublicMessage(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return fallback
}

// IsPublic reports whether err carries a client-facing message.
func IsPublic(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

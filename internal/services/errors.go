package services

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map each kind to a status code with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrUpload       = errors.New("upload failed")
)

// Error is a user-facing failure of a given kind.
type Error struct {
	Kind    error
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Is matches the kind, so errors.Is(err, ErrNotFound) works on any *Error.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.cause
}

func validationError(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func unauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

func uploadError(message string, cause error) error {
	return &Error{Kind: ErrUpload, Message: message, cause: cause}
}

// Message returns the user-facing message of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Invalid reports a malformed request outside of a service call.
func Invalid(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

// Missing reports an absent resource outside of a service call.
func Missing(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Unauthenticated reports a request without a usable identity.
func Unauthenticated(message string) error {
	return unauthorized(message)
}

package entities

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure.
type ErrorKind string

// Domain failure kinds surfaced to callers.
const (
	ErrorKindUnauthorized ErrorKind = "unauthorized"
	ErrorKindNotFound     ErrorKind = "not_found"
	ErrorKindValidation   ErrorKind = "validation"
)

// Error is a typed domain failure. Operations return these directly;
// nothing at this layer retries or recovers them.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewUnauthorized returns an unauthorized-kind error.
func NewUnauthorized(format string, args ...any) error {
	return &Error{Kind: ErrorKindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound returns a not-found-kind error.
func NewNotFound(format string, args ...any) error {
	return &Error{Kind: ErrorKindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewValidation returns a validation-kind error.
func NewValidation(format string, args ...any) error {
	return &Error{Kind: ErrorKindValidation, Message: fmt.Sprintf(format, args...)}
}

// IsUnauthorized reports whether err is an unauthorized domain error.
func IsUnauthorized(err error) bool {
	return kindOf(err) == ErrorKindUnauthorized
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool {
	return kindOf(err) == ErrorKindNotFound
}

// IsValidation reports whether err is a validation domain error.
func IsValidation(err error) bool {
	return kindOf(err) == ErrorKindValidation
}

func kindOf(err error) ErrorKind {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Kind
	}
	return ""
}

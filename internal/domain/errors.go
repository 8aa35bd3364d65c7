package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so transport can map them to a status code
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindInvalidArgument
	KindUnauthorized
	KindNotFound
	KindConflict
	KindConfiguration
	KindUpstreamParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindConfiguration:
		return "configuration"
	case KindUpstreamParse:
		return "upstream_parse"
	default:
		return "internal"
	}
}

// Error is the error type produced at the service and repository boundary.
// Message is safe to show to clients; Err carries the underlying cause for logs.
type Error struct {
	Kind    ErrorKind
	Message string
	Field   string
	Details interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ValidationError reports a malformed or missing field
func ValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// InvalidArgument reports a malformed identifier or empty input
func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// NotFound reports a missing entity
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal wraps an unexpected storage or driver failure
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal when err is not a *Error
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

var (
	ErrProductNotFound    = NotFound("Product not found")
	ErrInvalidProductID   = InvalidArgument("Invalid product ID")
	ErrUserNotFound       = NotFound("User not found")
	ErrInvalidUserID      = InvalidArgument("Invalid user ID")
	ErrUserAlreadyExists  = &Error{Kind: KindConflict, Message: "User already exists!"}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Message: "Unauthorized action"}
	ErrTokenNotFound      = NotFound("refresh token not found")
	ErrTokenRevoked       = &Error{Kind: KindUnauthorized, Message: "refresh token has been revoked"}
	ErrMissingCredentials = &Error{Kind: KindConfiguration, Message: "GOOGLE_API_KEY environment variable is not configured"}
)

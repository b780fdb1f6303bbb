package domain

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is against the typed errors below.
var (
	ErrValidation = errors.New("validation failed")
	ErrDecode     = errors.New("decode failed")
	ErrRemote     = errors.New("remote service error")
)

// ValidationError reports a local precondition that failed before any network call.
type ValidationError struct {
	Field string
	Msg   string
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// DecodeError reports a response payload that does not have the expected structure.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode schedule: %v", e.Err)
	}
	return fmt.Sprintf("decode schedule: %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// RemoteError carries a non-2xx answer from the routing service.
// Message is the service-reported "error" field when the body has one.
type RemoteError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote status %d: %s", e.StatusCode, e.Message)
}

func (e *RemoteError) Is(target error) bool { return target == ErrRemote }

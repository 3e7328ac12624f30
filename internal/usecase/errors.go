package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks client input that failed a signup or lookup rule.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a user with the same email already exists.
	ErrConflict = errors.New("user already exists")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUpstream indicates the metadata API could not be reached or answered badly.
	ErrUpstream = errors.New("metadata upstream failure")
)

const (
	CodeMissingField     = "missing_field"
	CodePasswordTooShort = "password_too_short"
	CodeInvalidPhone     = "invalid_phone"
	CodeMissingQuery     = "missing_query"
	CodeMissingMovieID   = "missing_movie_id"
)

// ValidationError carries the rule that failed and the message shown to the client.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(code, message string) error {
	return &ValidationError{Code: code, Message: message}
}

// UpstreamError wraps a metadata provider failure.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Is lets errors.Is(err, ErrUpstream) match while Unwrap still exposes the cause.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

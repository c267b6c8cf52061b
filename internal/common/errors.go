// Package common defines shared constants and sentinel errors used across
// the client layers of cmsadmin. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Validation errors, raised before any request is sent.
	ErrorValidation = errors.New("validation error")

	// Session errors.
	ErrorNoSession  = errors.New("no session")
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError carries a user-facing message for input rejected before
// any request is made. It matches ErrorValidation with errors.Is.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrorValidation }

// Package apperr defines the error kinds shared across services and
// handlers. Handlers match these with errors.Is to pick a response status;
// anything unrecognized is treated as an internal failure and surfaced to
// the caller without detail.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a missing record and a record owned by another
	// user. The two cases must stay indistinguishable to the caller.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a duplicate identity (email or username taken).
	ErrConflict = errors.New("conflict")

	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password does not match, without saying which.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenRevoked = errors.New("token revoked")

	ErrWeakPassword     = errors.New("password too weak")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// FieldError attaches a field name to an underlying error kind so the
// handler can produce per-field validation detail.
type FieldError struct {
	Field string
	Err   error
	Msg   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError wraps kind with a field name and human-readable message.
func NewFieldError(field string, kind error, msg string) *FieldError {
	return &FieldError{Field: field, Err: kind, Msg: msg}
}

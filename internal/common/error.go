// Package common defines shared sentinel errors used across catkeeper
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound         = errors.New("not found")
	ErrMutationFailed   = errors.New("mutation failed")
	ErrCredentialLookup = errors.New("credential lookup failed")

	// Pipeline errors raised before any repository call.
	ErrValidation       = errors.New("validation failed")
	ErrMissingSideInput = errors.New("missing side input")
	ErrForbidden        = errors.New("forbidden")
	ErrPrincipalMissing = errors.New("principal missing")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Token lifecycle errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// Error attaches a caller-facing message to one of the sentinel kinds above.
// errors.Is(err, kind) keeps matching the kind, while Error() yields only the
// message, so the transport layer can render it verbatim.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// E wraps kind with a message. The result matches kind under errors.Is.
func E(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

// Package common defines sentinel errors and small helpers shared by the
// server and the terminal client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Profile errors.
	ErrDuplicateEmail   = errors.New("email already exists")
	ErrUsernameTaken    = errors.New("username already in use")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrPasswordMismatch = errors.New("password does not match")

	// Game errors.
	ErrSecretNotFound     = errors.New("secret not found")
	ErrSelfClaimForbidden = errors.New("cannot claim own secret")
	ErrInsertFailed       = errors.New("insert failed")
)

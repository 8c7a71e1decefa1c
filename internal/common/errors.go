// Package common defines shared constants and sentinel errors used across
// server and client layers of authkeeper. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal        = errors.New("internal error")
	ErrorValidation      = errors.New("validation error")
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorUnauthenticated = errors.New("unauthenticated")
	ErrorForbidden       = errors.New("forbidden")

	// Login failures. Both are reported as ErrorUnauthorized.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrorUnauthorized)
	ErrAccountDeactivated = fmt.Errorf("%w: account is deactivated", ErrorUnauthorized)

	// Token errors (invalid signature, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Package common defines shared sentinel errors used across the credential
// store, the authentication service and the transport layer. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrStorage  = errors.New("storage error")

	// Registration conflicts, distinguished by which uniqueness
	// constraint fired.
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already registered")

	// Login failure. Deliberately undifferentiated: the caller must not
	// learn whether the username existed.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Validation failure on caller input. Wrapped with a human-readable
	// detail message at the point of rejection.
	ErrValidation = errors.New("validation error")

	// Reset-flow errors.
	ErrEmailNotFound = errors.New("email not found")
	ErrNoActiveToken = errors.New("no active reset token")
	ErrInvalidToken  = errors.New("invalid reset token")
	ErrTokenExpired  = errors.New("reset token expired")
)

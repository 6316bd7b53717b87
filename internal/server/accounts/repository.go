// Package accounts implements the credential store: durable account rows
// with uniqueness guarantees and the single-slot reset-token pair.
package accounts

import (
	"context"
	"time"
)

// Repository is the persistence contract of the credential store. All
// implementations report failures through the sentinel errors in
// internal/common; any unclassified persistence fault wraps
// common.ErrStorage.
type Repository interface {
	// Create inserts a new account and fills in the assigned ID.
	// Uniqueness conflicts surface as common.ErrDuplicateUsername or
	// common.ErrDuplicateEmail, depending on which constraint fired.
	Create(ctx context.Context, a *Account) (*Account, error)

	// FindByUsername returns the full account row or common.ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*Account, error)

	// RecordLogin stamps last_login after a successful credential check.
	RecordLogin(ctx context.Context, username string, at time.Time) error

	// SetResetToken overwrites the reset-token pair for the account with
	// the given email, superseding any previous token. Returns
	// common.ErrEmailNotFound when no account has that email.
	SetResetToken(ctx context.Context, email, token string, expiry time.Time) error

	// GetResetToken returns the active token and its expiry. Returns
	// common.ErrEmailNotFound for an unknown email and
	// common.ErrNoActiveToken when no reset is in flight.
	GetResetToken(ctx context.Context, email string) (token string, expiry time.Time, err error)

	// UpdatePassword replaces the password hash and clears the
	// reset-token pair as one unit. The stored token is re-checked
	// against the supplied one inside the same transaction; mismatch,
	// absence and expiry surface as common.ErrInvalidToken,
	// common.ErrNoActiveToken and common.ErrTokenExpired.
	UpdatePassword(ctx context.Context, email, token, newPasswordHash string) error
}

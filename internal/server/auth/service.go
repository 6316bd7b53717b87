// Package auth implements the authentication service: input validation,
// password hashing and the reset-token lifecycle over the credential store.
// The service holds no state between calls; the store is the only stateful
// owner.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/studyplanner/studyauth/internal/common"
	"github.com/studyplanner/studyauth/internal/cryptox"
	"github.com/studyplanner/studyauth/internal/server/accounts"
	"github.com/studyplanner/studyauth/internal/server/config"
)

// ResetChallenge is the outcome of a reset request. The caller is
// responsible for delivering the token to the user out of band.
type ResetChallenge struct {
	Token     string
	ExpiresAt time.Time
}

type Service struct {
	repo          accounts.Repository
	resetTokenTTL time.Duration

	// now is a seam for expiry tests.
	now func() time.Time
}

func NewService(repo accounts.Repository, cfg *config.Config) *Service {
	return &Service{
		repo:          repo,
		resetTokenTTL: cfg.ResetTokenValidity,
		now:           time.Now,
	}
}

// Register validates the input, hashes the password and creates the
// account. Uniqueness conflicts from the store pass through unchanged.
func (s *Service) Register(ctx context.Context, username, email, password string) error {

	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	account := &accounts.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.timestamp(),
	}

	if _, err := s.repo.Create(ctx, account); err != nil {
		return err
	}

	return nil
}

// Login checks the credentials and stamps last_login on success. A missing
// account and a wrong password produce the same ErrInvalidCredentials so
// the caller cannot probe which usernames exist.
func (s *Service) Login(ctx context.Context, username, password string) (*accounts.Profile, error) {

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := cryptox.VerifyPassword(account.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	at := s.timestamp()
	if err := s.repo.RecordLogin(ctx, username, at); err != nil {
		return nil, err
	}

	profile := account.Profile()
	profile.LastLogin = &at
	return profile, nil
}

// Profile returns the caller-visible account fields, including last_login.
func (s *Service) Profile(ctx context.Context, username string) (*accounts.Profile, error) {
	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return account.Profile(), nil
}

// RequestPasswordReset issues a fresh 6-digit code expiring resetTokenTTL
// from now, superseding any earlier code for the account.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (*ResetChallenge, error) {

	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	token, err := generateResetCode()
	if err != nil {
		return nil, fmt.Errorf("generating reset code: %w", err)
	}

	expiry := s.timestamp().Add(s.resetTokenTTL)

	if err := s.repo.SetResetToken(ctx, email, token, expiry); err != nil {
		return nil, err
	}

	return &ResetChallenge{Token: token, ExpiresAt: expiry}, nil
}

// VerifyResetToken checks the candidate against the stored token. It does
// not consume the token; only a completed reset or a newer request does.
func (s *Service) VerifyResetToken(ctx context.Context, email, candidate string) error {

	stored, expiry, err := s.repo.GetResetToken(ctx, email)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) != 1 {
		return common.ErrInvalidToken
	}

	if s.now().After(expiry) {
		return common.ErrTokenExpired
	}

	return nil
}

// ResetPassword replaces the password. The verified token is passed through
// to the store, which re-checks it atomically with the update and clears
// the token pair.
func (s *Service) ResetPassword(ctx context.Context, email, token, newPassword string) error {

	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, email, token, hash)
}

// timestamp returns the current time at the second resolution used in both
// storage and interchange.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

// generateResetCode draws a uniformly random 6-digit decimal code from the
// CSPRNG.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

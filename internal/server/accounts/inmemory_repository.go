package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/studyplanner/studyauth/internal/common"
)

// InMemoryRepository is a mutex-guarded map implementation of Repository.
// It backs tests and the CLI's memory mode, and follows exactly the same
// sentinel-error contract as the Postgres implementation.
type InMemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]*Account

	// now is a seam for expiry checks in tests.
	now func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		nextID: 1,
		byName: make(map[string]*Account),
		now:    time.Now,
	}
}

func (r *InMemoryRepository) findByEmail(email string) *Account {
	for _, a := range r.byName {
		if a.Email == email {
			return a
		}
	}
	return nil
}

func (r *InMemoryRepository) Create(ctx context.Context, a *Account) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[a.Username]; ok {
		return nil, common.ErrDuplicateUsername
	}
	if r.findByEmail(a.Email) != nil {
		return nil, common.ErrDuplicateEmail
	}

	stored := *a
	stored.ID = r.nextID
	r.nextID++
	r.byName[stored.Username] = &stored

	a.ID = stored.ID
	return a, nil
}

func (r *InMemoryRepository) FindByUsername(ctx context.Context, username string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byName[username]
	if !ok {
		return nil, common.ErrNotFound
	}

	copied := *a
	return &copied, nil
}

func (r *InMemoryRepository) RecordLogin(ctx context.Context, username string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byName[username]
	if !ok {
		return common.ErrNotFound
	}

	t := at
	a.LastLogin = &t
	return nil
}

func (r *InMemoryRepository) SetResetToken(ctx context.Context, email, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := r.findByEmail(email)
	if a == nil {
		return common.ErrEmailNotFound
	}

	tok, exp := token, expiry
	a.ResetToken = &tok
	a.ResetTokenExpiry = &exp
	return nil
}

func (r *InMemoryRepository) GetResetToken(ctx context.Context, email string) (string, time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := r.findByEmail(email)
	if a == nil {
		return "", time.Time{}, common.ErrEmailNotFound
	}
	if a.ResetToken == nil || a.ResetTokenExpiry == nil {
		return "", time.Time{}, common.ErrNoActiveToken
	}

	return *a.ResetToken, *a.ResetTokenExpiry, nil
}

func (r *InMemoryRepository) UpdatePassword(ctx context.Context, email, token, newPasswordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := r.findByEmail(email)
	if a == nil {
		return common.ErrEmailNotFound
	}
	if a.ResetToken == nil || a.ResetTokenExpiry == nil {
		return common.ErrNoActiveToken
	}
	if *a.ResetToken != token {
		return common.ErrInvalidToken
	}
	if r.now().After(*a.ResetTokenExpiry) {
		return common.ErrTokenExpired
	}

	a.PasswordHash = newPasswordHash
	a.ResetToken = nil
	a.ResetTokenExpiry = nil
	return nil
}

package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyplanner/studyauth/internal/common"
)

func seedAccount(t *testing.T, r *InMemoryRepository, username, email string) *Account {
	t.Helper()
	a, err := r.Create(context.Background(), &Account{
		Username:     username,
		Email:        email,
		PasswordHash: "hash-" + username,
		CreatedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return a
}

func TestInMemory_CreateAssignsIDs(t *testing.T) {
	r := NewInMemoryRepository()

	a := seedAccount(t, r, "alice", "alice@x.com")
	b := seedAccount(t, r, "bob", "bob@x.com")

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
}

func TestInMemory_Duplicates(t *testing.T) {
	r := NewInMemoryRepository()
	seedAccount(t, r, "alice", "alice@x.com")

	_, err := r.Create(context.Background(), &Account{Username: "alice", Email: "other@x.com"})
	assert.ErrorIs(t, err, common.ErrDuplicateUsername)

	_, err = r.Create(context.Background(), &Account{Username: "alice2", Email: "alice@x.com"})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestInMemory_FindByUsername(t *testing.T) {
	r := NewInMemoryRepository()
	seedAccount(t, r, "alice", "alice@x.com")

	a, err := r.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", a.Email)

	// The returned value is a copy; mutating it must not affect the store.
	a.Email = "evil@x.com"
	again, err := r.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", again.Email)

	_, err = r.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestInMemory_RecordLogin(t *testing.T) {
	r := NewInMemoryRepository()
	seedAccount(t, r, "alice", "alice@x.com")

	at := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, r.RecordLogin(context.Background(), "alice", at))

	a, err := r.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, a.LastLogin)
	assert.True(t, a.LastLogin.Equal(at))

	assert.ErrorIs(t, r.RecordLogin(context.Background(), "ghost", at), common.ErrNotFound)
}

func TestInMemory_ResetTokenLifecycle(t *testing.T) {
	r := NewInMemoryRepository()
	seedAccount(t, r, "alice", "alice@x.com")

	_, _, err := r.GetResetToken(context.Background(), "alice@x.com")
	assert.ErrorIs(t, err, common.ErrNoActiveToken)

	expiry := time.Now().Add(15 * time.Minute)
	require.NoError(t, r.SetResetToken(context.Background(), "alice@x.com", "123456", expiry))

	token, exp, err := r.GetResetToken(context.Background(), "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", token)
	assert.True(t, exp.Equal(expiry))

	// Second request overwrites the first.
	require.NoError(t, r.SetResetToken(context.Background(), "alice@x.com", "654321", expiry))
	token, _, err = r.GetResetToken(context.Background(), "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "654321", token)

	assert.ErrorIs(t,
		r.SetResetToken(context.Background(), "ghost@x.com", "123456", expiry),
		common.ErrEmailNotFound)
}

func TestInMemory_UpdatePassword(t *testing.T) {
	r := NewInMemoryRepository()
	seedAccount(t, r, "alice", "alice@x.com")

	expiry := time.Now().Add(15 * time.Minute)
	require.NoError(t, r.SetResetToken(context.Background(), "alice@x.com", "123456", expiry))

	assert.ErrorIs(t,
		r.UpdatePassword(context.Background(), "alice@x.com", "000000", "new-hash"),
		common.ErrInvalidToken)

	require.NoError(t, r.UpdatePassword(context.Background(), "alice@x.com", "123456", "new-hash"))

	a, err := r.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", a.PasswordHash)
	assert.Nil(t, a.ResetToken)
	assert.Nil(t, a.ResetTokenExpiry)

	// The token was consumed with the update.
	assert.ErrorIs(t,
		r.UpdatePassword(context.Background(), "alice@x.com", "123456", "newer-hash"),
		common.ErrNoActiveToken)
}

func TestInMemory_UpdatePassword_Expired(t *testing.T) {
	r := NewInMemoryRepository()
	seedAccount(t, r, "alice", "alice@x.com")

	frozen := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return frozen }

	require.NoError(t, r.SetResetToken(context.Background(), "alice@x.com", "123456", frozen.Add(15*time.Minute)))

	r.now = func() time.Time { return frozen.Add(16 * time.Minute) }

	assert.ErrorIs(t,
		r.UpdatePassword(context.Background(), "alice@x.com", "123456", "new-hash"),
		common.ErrTokenExpired)
}

package accounts

import "time"

// Account is one row of the users table.
//
// ResetToken and ResetTokenExpiry are either both nil or both set; the
// schema enforces the pairing and every repository write keeps it.
type Account struct {
	ID               int64
	Username         string
	Email            string
	PasswordHash     string
	CreatedAt        time.Time
	LastLogin        *time.Time
	ResetToken       *string
	ResetTokenExpiry *time.Time
}

// Profile is the caller-visible subset of an account. The password hash and
// the reset-token pair never leave the store/service boundary.
type Profile struct {
	ID        int64
	Username  string
	Email     string
	CreatedAt time.Time
	LastLogin *time.Time
}

// Profile projects the account onto its caller-visible fields.
func (a *Account) Profile() *Profile {
	return &Profile{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		LastLogin: a.LastLogin,
	}
}

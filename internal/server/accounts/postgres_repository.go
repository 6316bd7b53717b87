package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/studyplanner/studyauth/internal/common"
	"github.com/studyplanner/studyauth/internal/dbx"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *Account) (*Account, error) {

	query :=
		`INSERT INTO users (username, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		a.Username, a.Email, a.PasswordHash, a.CreatedAt).Scan(&a.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, common.ErrDuplicateEmail
			}
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	return a, nil
}

func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*Account, error) {
	query :=
		`SELECT id, username, email, password_hash, created_at, last_login, reset_token, reset_token_expiry
		 FROM users
		 WHERE username = $1
		 `

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	return a, nil
}

func (r *PostgresRepository) RecordLogin(ctx context.Context, username string, at time.Time) error {
	query :=
		`UPDATE users SET last_login = $2
		 WHERE username = $1
		 `

	res, err := r.db.ExecContext(ctx, query, username, at)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) SetResetToken(ctx context.Context, email, token string, expiry time.Time) error {
	query :=
		`UPDATE users SET reset_token = $2, reset_token_expiry = $3
		 WHERE email = $1
		 `

	res, err := r.db.ExecContext(ctx, query, email, token, expiry)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	if n == 0 {
		return common.ErrEmailNotFound
	}

	return nil
}

func (r *PostgresRepository) GetResetToken(ctx context.Context, email string) (string, time.Time, error) {
	query :=
		`SELECT reset_token, reset_token_expiry FROM users
		 WHERE email = $1
		 `

	var token sql.NullString
	var expiry sql.NullTime

	err := r.db.QueryRowContext(ctx, query, email).Scan(&token, &expiry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, common.ErrEmailNotFound
		}
		return "", time.Time{}, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	if !token.Valid || !expiry.Valid {
		return "", time.Time{}, common.ErrNoActiveToken
	}

	return token.String, expiry.Time, nil
}

// UpdatePassword re-checks the stored token under a row lock, then swaps
// the password hash and clears the token pair in the same transaction. A
// partial result (new password with a live token, or the reverse) cannot
// be observed.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, email, token, newPasswordHash string) error {

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		selectQuery :=
			`SELECT reset_token, reset_token_expiry FROM users
			 WHERE email = $1
			 FOR UPDATE
			 `

		var stored sql.NullString
		var expiry sql.NullTime

		if err := tx.QueryRowContext(ctx, selectQuery, email).Scan(&stored, &expiry); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrEmailNotFound
			}
			return fmt.Errorf("%w: %v", common.ErrStorage, err)
		}

		if !stored.Valid || !expiry.Valid {
			return common.ErrNoActiveToken
		}
		if stored.String != token {
			return common.ErrInvalidToken
		}
		if time.Now().After(expiry.Time) {
			return common.ErrTokenExpired
		}

		updateQuery :=
			`UPDATE users
			 SET password_hash = $2, reset_token = NULL, reset_token_expiry = NULL
			 WHERE email = $1
			 `

		if _, err := tx.ExecContext(ctx, updateQuery, email, newPasswordHash); err != nil {
			return fmt.Errorf("%w: %v", common.ErrStorage, err)
		}

		return nil
	})

	return err
}

func scanAccount(row *sql.Row) (*Account, error) {
	a := &Account{}

	var lastLogin, resetExpiry sql.NullTime
	var resetToken sql.NullString

	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt,
		&lastLogin, &resetToken, &resetExpiry)
	if err != nil {
		return nil, err
	}

	if lastLogin.Valid {
		a.LastLogin = &lastLogin.Time
	}
	if resetToken.Valid {
		a.ResetToken = &resetToken.String
	}
	if resetExpiry.Valid {
		a.ResetTokenExpiry = &resetExpiry.Time
	}

	return a, nil
}

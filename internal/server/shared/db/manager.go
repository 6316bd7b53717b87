// Package db owns the storage backend lifecycle: connection setup, schema
// migrations and access to the repositories built on top of it.
package db

import (
	"context"
	"database/sql"

	"github.com/studyplanner/studyauth/internal/server/accounts"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Accounts() accounts.Repository
	Close() error
}

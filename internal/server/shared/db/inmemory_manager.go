package db

import (
	"context"
	"database/sql"

	"github.com/studyplanner/studyauth/internal/server/accounts"
)

type InMemoryRepositoryManager struct {
	accounts accounts.Repository
}

func (m InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m InMemoryRepositoryManager) Close() error {
	return nil
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return InMemoryRepositoryManager{accounts: accounts.NewInMemoryRepository()}
}

package repomanager

import (
	"context"
	"database/sql"

	"github.com/sportclip/highlightd/internal/dbx"
	"github.com/sportclip/highlightd/internal/server/repositories/accounts"
	"github.com/sportclip/highlightd/internal/server/repositories/records"
	"github.com/sportclip/highlightd/internal/server/repositories/refreshtokens"
)

// InMemoryRepositoryManager vends singleton in-memory repositories.
// The DBTX argument is ignored; state lives in the repositories themselves.
type InMemoryRepositoryManager struct {
	accounts      accounts.Repository
	records       records.Repository
	refreshTokens refreshtokens.Repository
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		accounts:      accounts.NewInMemoryRepository(),
		records:       records.NewInMemoryRepository(),
		refreshTokens: refreshtokens.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return m.accounts
}

func (m *InMemoryRepositoryManager) Records(db dbx.DBTX) records.Repository {
	return m.records
}

func (m *InMemoryRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return m.refreshTokens
}

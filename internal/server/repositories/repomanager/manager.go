package repomanager

import (
	"context"
	"database/sql"

	"github.com/sportclip/highlightd/internal/dbx"
	"github.com/sportclip/highlightd/internal/server/repositories/accounts"
	"github.com/sportclip/highlightd/internal/server/repositories/records"
	"github.com/sportclip/highlightd/internal/server/repositories/refreshtokens"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Records(db dbx.DBTX) records.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}

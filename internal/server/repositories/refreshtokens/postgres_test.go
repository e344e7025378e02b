package refreshtokens

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportclip/highlightd/internal/common"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestPostgresCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs("alice", "tok1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), "alice", "tok1", time.Hour)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFind(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	expires := time.Now().Add(time.Hour)
	mock.ExpectQuery("SELECT account_id, expires_at").
		WithArgs("tok1").
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "expires_at"}).AddRow("alice", expires))

	token, err := repo.Find(context.Background(), "tok1")
	require.NoError(t, err)
	assert.Equal(t, "alice", token.AccountID)
	assert.Equal(t, "tok1", token.Token)
	assert.Equal(t, expires, token.Expires)
}

func TestPostgresFindNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT account_id, expires_at").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM refresh_tokens").
		WithArgs("tok1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), "tok1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Package accounts persists registered accounts. The account id is the
// username chosen at registration and is unique across the store.
package accounts

import (
	"context"

	"github.com/sportclip/highlightd/internal/server/models"
)

type Repository interface {
	// Create stores a new account. If the id is already taken it returns
	// common.ErrorAlreadyExists and leaves the stored account unchanged.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetByID returns the account with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

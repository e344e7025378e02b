// Package refreshtokens stores server-side refresh tokens used in the login
// and token-refresh flow.
package refreshtokens

import (
	"context"
	"time"

	"github.com/sportclip/highlightd/internal/server/models"
)

type Repository interface {
	// Create inserts a token for accountID expiring after validity.
	Create(ctx context.Context, accountID string, token string, validity time.Duration) error

	// Find returns the row for the given token string, or
	// common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}

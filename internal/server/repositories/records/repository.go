// Package records persists per-account highlight records. Appends are
// append-only and creation order per account is preserved.
package records

import (
	"context"

	"github.com/sportclip/highlightd/internal/server/models"
)

type Repository interface {
	// Append stores a new record for its account. Records are immutable
	// once stored.
	Append(ctx context.Context, record *models.HighlightRecord) (*models.HighlightRecord, error)

	// ListByAccount returns the account's records in creation order.
	// An account with no records yields an empty slice, not an error.
	ListByAccount(ctx context.Context, accountID string) ([]*models.HighlightRecord, error)
}

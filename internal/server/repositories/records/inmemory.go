package records

import (
	"context"
	"sync"
	"time"

	"github.com/sportclip/highlightd/internal/server/models"
)

// InMemoryRepository keeps per-account record sequences in a map guarded by
// an RWMutex. Appends for the same account are serialized by the write
// lock; reads may proceed concurrently.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string][]*models.HighlightRecord
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make(map[string][]*models.HighlightRecord)}
}

func (r *InMemoryRepository) Append(ctx context.Context, record *models.HighlightRecord) (*models.HighlightRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *record
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.records[record.AccountID] = append(r.records[record.AccountID], &stored)

	result := stored
	return &result, nil
}

func (r *InMemoryRepository) ListByAccount(ctx context.Context, accountID string) ([]*models.HighlightRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.records[accountID]
	result := make([]*models.HighlightRecord, 0, len(stored))
	for _, rec := range stored {
		copied := *rec
		result = append(result, &copied)
	}
	return result, nil
}

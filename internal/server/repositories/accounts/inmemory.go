package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/sportclip/highlightd/internal/common"
	"github.com/sportclip/highlightd/internal/server/models"
)

// InMemoryRepository keeps accounts in a map guarded by an RWMutex.
// Writes are serialized; reads may proceed concurrently.
type InMemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{accounts: make(map[string]*models.Account)}
}

func (r *InMemoryRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}

	stored := *account
	stored.CreatedAt = time.Now()
	r.accounts[account.ID] = &stored

	result := stored
	return &result, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	result := *account
	return &result, nil
}

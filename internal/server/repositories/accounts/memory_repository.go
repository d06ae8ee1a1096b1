package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
)

// InMemoryRepository keeps accounts in a map guarded by a mutex. The
// existence check and the insert happen under one lock.
type InMemoryRepository struct {
	mu       sync.RWMutex
	byEmail  map[string]models.Account
	lastTime time.Time
	now      func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byEmail: make(map[string]models.Account),
		now:     time.Now,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}

	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	// creation timestamps never go backwards, even if the wall clock does
	ts := r.now().UTC()
	if ts.Before(r.lastTime) {
		ts = r.lastTime
	}
	r.lastTime = ts
	account.CreatedAt = ts

	r.byEmail[account.Email] = *account
	return account, nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

// Len returns the number of stored accounts.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byEmail)
}

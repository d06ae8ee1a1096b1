// Package accounts contains the credential store adapters. Every adapter
// treats the store's own uniqueness guarantee on email as the authority for
// conflicts: Create reports common.ErrorAlreadyExists and leaves the store
// untouched when the email is taken, even under concurrent registration.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts account, assigning ID (when empty) and CreatedAt.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	// GetByEmail returns common.ErrorNotFound when no account has email.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}

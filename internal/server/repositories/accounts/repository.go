package accounts

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository persists provider account links. Links are addressed by their
// natural key (provider, providerAccountID).
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByProviderAccount(ctx context.Context, provider, providerAccountID string) (*models.Account, error)
	Delete(ctx context.Context, provider, providerAccountID string) error
}

package mocks

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
)

type accountKey struct {
	provider, providerAccountID string
}

type AccountsRepo struct {
	mu   sync.Mutex
	rows map[accountKey]models.Account

	Err error
}

func NewAccountsRepo() *AccountsRepo {
	return &AccountsRepo{rows: make(map[accountKey]models.Account)}
}

func (r *AccountsRepo) Create(_ context.Context, a *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	k := accountKey{a.Provider, a.ProviderAccountID}
	if _, ok := r.rows[k]; ok {
		return nil, common.ErrorAlreadyExists
	}
	a.ID = uuid.New()
	r.rows[k] = *a
	return a, nil
}

func (r *AccountsRepo) GetByProviderAccount(_ context.Context, provider, providerAccountID string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	a, ok := r.rows[accountKey{provider, providerAccountID}]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (r *AccountsRepo) Delete(_ context.Context, provider, providerAccountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	delete(r.rows, accountKey{provider, providerAccountID})
	return nil
}

package mocks

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type tokenKey struct {
	identifier, token string
}

type VerificationTokensRepo struct {
	mu   sync.Mutex
	rows map[tokenKey]models.VerificationToken

	Err error
}

func NewVerificationTokensRepo() *VerificationTokensRepo {
	return &VerificationTokensRepo{rows: make(map[tokenKey]models.VerificationToken)}
}

func (r *VerificationTokensRepo) Create(_ context.Context, t *models.VerificationToken) (*models.VerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	k := tokenKey{t.Identifier, t.Token}
	if _, ok := r.rows[k]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.rows[k] = *t
	return t, nil
}

func (r *VerificationTokensRepo) Consume(_ context.Context, identifier, token string) (*models.VerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	k := tokenKey{identifier, token}
	t, ok := r.rows[k]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(r.rows, k)
	return &t, nil
}

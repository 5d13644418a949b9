package mocks

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type SessionsRepo struct {
	mu   sync.Mutex
	rows map[string]models.Session

	Err error
}

func NewSessionsRepo() *SessionsRepo {
	return &SessionsRepo{rows: make(map[string]models.Session)}
}

func (r *SessionsRepo) Create(_ context.Context, s *models.Session) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if _, ok := r.rows[s.SessionToken]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.rows[s.SessionToken] = *s
	return s, nil
}

func (r *SessionsRepo) GetByToken(_ context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	s, ok := r.rows[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (r *SessionsRepo) Update(_ context.Context, p models.SessionPatch) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	s, ok := r.rows[p.SessionToken]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if p.UserID != nil {
		s.UserID = *p.UserID
	}
	if p.Expires != nil {
		s.Expires = *p.Expires
	}
	r.rows[p.SessionToken] = s
	return &s, nil
}

func (r *SessionsRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	delete(r.rows, token)
	return nil
}

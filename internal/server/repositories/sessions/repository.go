package sessions

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository persists sessions keyed by their opaque token.
//
// Create returns common.ErrorAlreadyExists when the token is taken.
// GetByToken and Update return common.ErrorNotFound when no session with
// the token exists.
type Repository interface {
	Create(ctx context.Context, session *models.Session) (*models.Session, error)
	GetByToken(ctx context.Context, sessionToken string) (*models.Session, error)
	Update(ctx context.Context, patch models.SessionPatch) (*models.Session, error)
	Delete(ctx context.Context, sessionToken string) error
}

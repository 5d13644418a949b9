package verificationtokens

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository stores single-use verification tokens.
//
// Consume must find and remove the token in one store-level operation so
// that of two racing callers at most one gets the token back. The loser
// sees common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, token *models.VerificationToken) (*models.VerificationToken, error)
	Consume(ctx context.Context, identifier, token string) (*models.VerificationToken, error)
}

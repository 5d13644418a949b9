package verificationtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.VerificationToken) (*models.VerificationToken, error) {
	query :=
		`INSERT INTO verification_tokens (identifier, token, expires)
		 VALUES ($1, $2, $3)
		 `

	if _, err := r.db.ExecContext(ctx, query, t.Identifier, t.Token, t.Expires); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) Consume(ctx context.Context, identifier, token string) (*models.VerificationToken, error) {
	query :=
		`DELETE FROM verification_tokens
		 WHERE identifier = $1 AND token = $2
		 RETURNING identifier, token, expires
		 `

	t := &models.VerificationToken{}
	err := r.db.QueryRowContext(ctx, query, identifier, token).Scan(&t.Identifier, &t.Token, &t.Expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

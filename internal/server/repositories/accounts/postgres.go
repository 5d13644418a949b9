package accounts

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

func (r *PostgresRepository) Create(ctx context.Context, a *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (user_id, type, provider, provider_account_id,
		   refresh_token, access_token, expires_at, token_type, scope, id_token, session_state)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		a.UserID, a.Type, a.Provider, a.ProviderAccountID,
		dbx.NullString(a.RefreshToken),
		dbx.NullString(a.AccessToken),
		dbx.NullInt64(a.ExpiresAt),
		dbx.NullString(a.TokenType),
		dbx.NullString(a.Scope),
		dbx.NullString(a.IDToken),
		dbx.NullString(a.SessionState),
	).Scan(&a.ID)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) GetByProviderAccount(ctx context.Context, provider, providerAccountID string) (*models.Account, error) {
	query :=
		`SELECT id, user_id, type, provider, provider_account_id,
		   refresh_token, access_token, expires_at, token_type, scope, id_token, session_state
		 FROM accounts
		 WHERE provider = $1 AND provider_account_id = $2
		 `

	var (
		a                                               models.Account
		refresh, access, tokenType, scope, idTok, state sql.NullString
		expiresAt                                       sql.NullInt64
	)

	err := r.db.QueryRowContext(ctx, query, provider, providerAccountID).Scan(
		&a.ID, &a.UserID, &a.Type, &a.Provider, &a.ProviderAccountID,
		&refresh, &access, &expiresAt, &tokenType, &scope, &idTok, &state,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	a.RefreshToken = dbx.StringPtr(refresh)
	a.AccessToken = dbx.StringPtr(access)
	a.ExpiresAt = dbx.Int64Ptr(expiresAt)
	a.TokenType = dbx.StringPtr(tokenType)
	a.Scope = dbx.StringPtr(scope)
	a.IDToken = dbx.StringPtr(idTok)
	a.SessionState = dbx.StringPtr(state)

	return &a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, provider, providerAccountID string) error {
	query := `DELETE FROM accounts WHERE provider = $1 AND provider_account_id = $2`

	if _, err := r.db.ExecContext(ctx, query, provider, providerAccountID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

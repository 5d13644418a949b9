package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Session) (*models.Session, error) {
	query :=
		`INSERT INTO sessions (session_token, user_id, expires)
		 VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query, s.SessionToken, s.UserID, s.Expires)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

func (r *PostgresRepository) GetByToken(ctx context.Context, sessionToken string) (*models.Session, error) {
	query :=
		`SELECT session_token, user_id, expires FROM sessions
		 WHERE session_token = $1
		 `

	s := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, sessionToken).Scan(&s.SessionToken, &s.UserID, &s.Expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, patch models.SessionPatch) (*models.Session, error) {
	query :=
		`UPDATE sessions SET
		   user_id = COALESCE($2, user_id),
		   expires = COALESCE($3, expires)
		 WHERE session_token = $1
		 RETURNING session_token, user_id, expires
		 `

	var userID uuid.NullUUID
	if patch.UserID != nil {
		userID = uuid.NullUUID{UUID: *patch.UserID, Valid: true}
	}

	s := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, patch.SessionToken, userID, dbx.NullTime(patch.Expires)).
		Scan(&s.SessionToken, &s.UserID, &s.Expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, sessionToken string) error {
	query := `DELETE FROM sessions WHERE session_token = $1`

	if _, err := r.db.ExecContext(ctx, query, sessionToken); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

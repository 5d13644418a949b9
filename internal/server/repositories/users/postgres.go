package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// roles is read back as text so pq.StringArray can parse it regardless of
// which database/sql driver is underneath.
const userColumns = `id, name, email, email_verified, image, avatar_blob_ref, roles::text, date_joined`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u                          models.User
		name, email, image, avatar sql.NullString
		verified                   sql.NullTime
		roles                      pq.StringArray
	)

	if err := row.Scan(&u.ID, &name, &email, &verified, &image, &avatar, &roles, &u.DateJoined); err != nil {
		return nil, err
	}

	u.Name = dbx.StringPtr(name)
	u.Email = dbx.StringPtr(email)
	u.EmailVerified = dbx.TimePtr(verified)
	u.Image = dbx.StringPtr(image)
	u.AvatarBlobRef = dbx.StringPtr(avatar)
	u.Roles = []string(roles)

	return &u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (name, email, email_verified, image, avatar_blob_ref, roles)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, date_joined
		 `

	var roles pq.StringArray
	if user.Roles != nil {
		roles = pq.StringArray(user.Roles)
	}

	err := r.db.QueryRowContext(ctx, query,
		dbx.NullString(user.Name),
		dbx.NullString(user.Email),
		dbx.NullTime(user.EmailVerified),
		dbx.NullString(user.Image),
		dbx.NullString(user.AvatarBlobRef),
		roles,
	).Scan(&user.ID, &user.DateJoined)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// Update applies the fields set in patch and returns the row as stored.
// Each column has a "present" flag so that an explicit null clears the
// column while an unset field keeps it.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error) {

	query :=
		`UPDATE users SET
		   name = CASE WHEN $2::boolean THEN $3::text ELSE name END,
		   email = CASE WHEN $4::boolean THEN $5::text ELSE email END,
		   email_verified = CASE WHEN $6::boolean THEN $7::timestamptz ELSE email_verified END,
		   image = CASE WHEN $8::boolean THEN $9::text ELSE image END
		 WHERE id = $1
		 RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query, id,
		patch.Name.Set, dbx.NullString(patch.Name.Value),
		patch.Email.Set, dbx.NullString(patch.Email.Value),
		patch.EmailVerified.Set, dbx.NullTime(patch.EmailVerified.Value),
		patch.Image.Set, dbx.NullString(patch.Image.Value),
	)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorLostUpdate
		}
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// Delete removes the user row. Linked accounts and sessions are left alone.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

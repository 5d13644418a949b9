package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "name", "email", "email_verified", "image", "avatar_blob_ref", "roles", "date_joined"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func strp(s string) *string { return &s }

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	joined := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	q := `(?s)^INSERT\s+INTO\s+users\s*\(name,\s*email,\s*email_verified,\s*image,\s*avatar_blob_ref,\s*roles\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id,\s*date_joined\s*$`
	mock.ExpectQuery(q).
		WithArgs("Alice", "a@x.io", nil, nil, nil, `{"user"}`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date_joined"}).AddRow(id.String(), joined))

	u := &models.User{Name: strp("Alice"), Email: strp("a@x.io"), Roles: []string{"user"}}
	got, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, joined, got.DateJoined)
	assert.Equal(t, []string{"user"}, got.Roles)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_NoRolesStoresNull(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WithArgs(nil, "a@x.io", nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date_joined"}).AddRow(uuid.NewString(), time.Now()))

	_, err := repo.Create(context.Background(), &models.User{Email: strp("a@x.io")})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{Email: strp("a@x.io")})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	verified := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	q := `(?s)^SELECT\s+id,\s*name,\s*email,\s*email_verified,\s*image,\s*avatar_blob_ref,\s*roles::text,\s*date_joined\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`
	mock.ExpectQuery(q).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(id.String(), "Alice", "a@x.io", verified, nil, "avatars/k1", "{user,admin}", joined))

	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)

	want := &models.User{
		ID:            id,
		Name:          strp("Alice"),
		Email:         strp("a@x.io"),
		EmailVerified: &verified,
		AvatarBlobRef: strp("avatars/k1"),
		Roles:         []string{"user", "admin"},
		DateJoined:    joined,
	}
	assert.Equal(t, want, got)
}

func TestGetByID_NullRoles(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM\s+users\s+WHERE\s+id`).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(id.String(), nil, nil, nil, nil, nil, nil, time.Now()))

	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, got.Roles)
	assert.Nil(t, got.Name)
	assert.Nil(t, got.Email)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM\s+users\s+WHERE\s+id`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`).
		WithArgs("a@x.io").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(id.String(), nil, "a@x.io", nil, nil, nil, nil, time.Now()))

	got, err := repo.GetByEmail(context.Background(), "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	mock.ExpectQuery(`SELECT .* FROM\s+users\s+WHERE\s+email`).
		WithArgs("nobody@x.io").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err = repo.GetByEmail(context.Background(), "nobody@x.io")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByEmail_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM\s+users`).WillReturnError(errors.New("boom"))

	_, err := repo.GetByEmail(context.Background(), "a@x.io")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_PartialPatch(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	joined := time.Now().UTC()

	// name set, email untouched, email_verified cleared, image untouched
	mock.ExpectQuery(`(?s)^UPDATE\s+users\s+SET.*WHERE\s+id\s*=\s*\$1\s+RETURNING\s+id,`).
		WithArgs(id.String(), true, "Bob", false, nil, true, nil, false, nil).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(id.String(), "Bob", "a@x.io", nil, nil, nil, nil, joined))

	patch := models.UserPatch{
		Name:          models.Some("Bob"),
		EmailVerified: models.Null[time.Time](),
	}
	got, err := repo.Update(context.Background(), id, patch)
	require.NoError(t, err)
	assert.Equal(t, "Bob", *got.Name)
	assert.Equal(t, "a@x.io", *got.Email)
	assert.Nil(t, got.EmailVerified)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_Vanished(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+users`).
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := repo.Update(context.Background(), uuid.New(), models.UserPatch{Name: models.Some("x")})
	assert.ErrorIs(t, err, common.ErrorLostUpdate)
}

func TestUpdate_EmailTaken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Update(context.Background(), uuid.New(), models.UserPatch{Email: models.Some("b@x.io")})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(`^DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), id))

	mock.ExpectExec(`DELETE\s+FROM\s+users`).
		WillReturnError(errors.New("down"))
	assert.Error(t, repo.Delete(context.Background(), id))
}

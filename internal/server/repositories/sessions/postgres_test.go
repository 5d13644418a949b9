package sessions

import (
	"context"
	"database/sql"
	"errors"
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

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestPostgresCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	userID := uuid.New()
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+sessions\s*\(session_token,\s*user_id,\s*expires\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*$`).
		WithArgs("tok-1", userID.String(), exp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	in := &models.Session{SessionToken: "tok-1", UserID: userID, Expires: exp}
	got, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Same(t, in, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreate_DuplicateToken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+sessions`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "sessions_pkey"})

	_, err := repo.Create(context.Background(), &models.Session{SessionToken: "tok-1"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestPostgresGetByToken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	userID := uuid.New()
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	q := `(?s)^SELECT\s+session_token,\s*user_id,\s*expires\s+FROM\s+sessions\s+WHERE\s+session_token\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).WithArgs("tok-1").
		WillReturnRows(sqlmock.NewRows([]string{"session_token", "user_id", "expires"}).
			AddRow("tok-1", userID.String(), exp))
	mock.ExpectQuery(q).WithArgs("tok-2").WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByToken(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, &models.Session{SessionToken: "tok-1", UserID: userID, Expires: exp}, got)

	_, err = repo.GetByToken(context.Background(), "tok-2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	userID := uuid.New()
	exp := time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)

	q := `(?s)^UPDATE\s+sessions\s+SET\s+user_id\s*=\s*COALESCE\(\$2,\s*user_id\),\s*expires\s*=\s*COALESCE\(\$3,\s*expires\)\s+WHERE\s+session_token\s*=\s*\$1\s+RETURNING`

	// expiry only; owner untouched
	mock.ExpectQuery(q).WithArgs("tok-1", nil, exp).
		WillReturnRows(sqlmock.NewRows([]string{"session_token", "user_id", "expires"}).
			AddRow("tok-1", userID.String(), exp))

	got, err := repo.Update(context.Background(), models.SessionPatch{SessionToken: "tok-1", Expires: &exp})
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, exp, got.Expires)

	other := uuid.New()
	mock.ExpectQuery(q).WithArgs("tok-1", other.String(), nil).
		WillReturnRows(sqlmock.NewRows([]string{"session_token", "user_id", "expires"}).
			AddRow("tok-1", other.String(), exp))

	got, err = repo.Update(context.Background(), models.SessionPatch{SessionToken: "tok-1", UserID: &other})
	require.NoError(t, err)
	assert.Equal(t, other, got.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdate_Missing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+sessions`).
		WillReturnRows(sqlmock.NewRows([]string{"session_token", "user_id", "expires"}))

	exp := time.Now()
	_, err := repo.Update(context.Background(), models.SessionPatch{SessionToken: "gone", Expires: &exp})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE\s+FROM\s+sessions\s+WHERE\s+session_token\s*=\s*\$1$`).
		WithArgs("tok-1").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.Delete(context.Background(), "tok-1"))

	mock.ExpectExec(`DELETE\s+FROM\s+sessions`).WillReturnError(errors.New("down"))
	err := repo.Delete(context.Background(), "tok-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

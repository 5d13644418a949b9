package mocks

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/verificationtokens"
)

// RepositoryManager hands out the same in-memory repositories regardless of
// the DBTX it is given.
type RepositoryManager struct {
	UsersRepo              *UsersRepo
	AccountsRepo           *AccountsRepo
	SessionsRepo           *SessionsRepo
	VerificationTokensRepo *VerificationTokensRepo

	MigrateErr error
}

func NewRepositoryManager() *RepositoryManager {
	return &RepositoryManager{
		UsersRepo:              NewUsersRepo(),
		AccountsRepo:           NewAccountsRepo(),
		SessionsRepo:           NewSessionsRepo(),
		VerificationTokensRepo: NewVerificationTokensRepo(),
	}
}

func (m *RepositoryManager) RunMigrations(context.Context, *sql.DB) error { return m.MigrateErr }

func (m *RepositoryManager) Users(dbx.DBTX) users.Repository { return m.UsersRepo }

func (m *RepositoryManager) Accounts(dbx.DBTX) accounts.Repository { return m.AccountsRepo }

func (m *RepositoryManager) Sessions(dbx.DBTX) sessions.Repository { return m.SessionsRepo }

func (m *RepositoryManager) VerificationTokens(dbx.DBTX) verificationtokens.Repository {
	return m.VerificationTokensRepo
}

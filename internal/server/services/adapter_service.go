package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/avatars"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var _ Adapter = (*AdapterService)(nil)

var errNoAvatarStore = errors.New("no avatar store configured")

// AdapterService implements Adapter on top of the repositories vended by a
// RepositoryManager.
type AdapterService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	avatars     avatars.Store
	opts        Options
	log         logging.Logger
}

// NewAdapterService wires the facade. store may be nil when StoreImage is
// off; log may be nil to discard logs.
func NewAdapterService(db *sql.DB, m repomanager.RepositoryManager, store avatars.Store, opts Options, log logging.Logger) *AdapterService {
	if log == nil {
		log = logging.Nop{}
	}
	return &AdapterService{
		db:          db,
		repomanager: m,
		avatars:     store,
		opts:        opts,
		log:         log,
	}
}

// parseID translates a framework id into a native key.
func parseID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", common.ErrorInvalidID, id)
	}
	return u, nil
}

func toAdapterUser(u *models.User) *AdapterUser {
	return &AdapterUser{
		ID:            u.ID.String(),
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Image:         u.Image,
		AvatarBlobRef: u.AvatarBlobRef,
		Roles:         u.Roles,
		DateJoined:    u.DateJoined,
	}
}

func toAdapterSession(s *models.Session) *AdapterSession {
	return &AdapterSession{
		SessionToken: s.SessionToken,
		UserID:       s.UserID.String(),
		Expires:      s.Expires,
	}
}

// absentUser turns a repository miss into the framework's absent result.
func absentUser(u *models.User, err error) (*AdapterUser, error) {
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toAdapterUser(u), nil
}

// CreateUser stores a new user. With StoreImage the image is mirrored
// first; a failed mirror leaves AvatarBlobRef empty and never fails the
// call.
func (s *AdapterService) CreateUser(ctx context.Context, nu NewUser) (*AdapterUser, error) {
	u := &models.User{
		Name:          nu.Name,
		Email:         nu.Email,
		EmailVerified: nu.EmailVerified,
		Image:         nu.Image,
	}

	if s.opts.StoreImage && nu.Image != nil && *nu.Image != "" {
		u.AvatarBlobRef = s.mirrorAvatar(ctx, *nu.Image)
	}
	if s.opts.RoleBased {
		u.Roles = []string{common.DefaultRole}
	}

	created, err := s.repomanager.Users(s.db).Create(ctx, u)
	if err != nil {
		return nil, err
	}
	return toAdapterUser(created), nil
}

// mirrorAvatar returns the blob reference of the stored copy, or nil. The
// ingest error is reported to the log and the hook and then dropped.
func (s *AdapterService) mirrorAvatar(ctx context.Context, url string) *string {
	ref, err := s.ingestAvatar(ctx, url)
	if err != nil {
		s.log.Warn(ctx, "avatar mirroring failed, creating user without it", "url", url, "error", err)
		if s.opts.OnAvatarFailure != nil {
			s.opts.OnAvatarFailure(ctx, url, err)
		}
		return nil
	}
	return &ref
}

func (s *AdapterService) ingestAvatar(ctx context.Context, url string) (string, error) {
	if s.avatars == nil {
		return "", errNoAvatarStore
	}
	return s.avatars.Ingest(ctx, url)
}

func (s *AdapterService) GetUser(ctx context.Context, id string) (*AdapterUser, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return absentUser(s.repomanager.Users(s.db).GetByID(ctx, uid))
}

func (s *AdapterService) GetUserByEmail(ctx context.Context, email string) (*AdapterUser, error) {
	return absentUser(s.repomanager.Users(s.db).GetByEmail(ctx, email))
}

// GetUserByAccount resolves the account link and then its owner. A link
// whose user no longer exists reads as absent.
func (s *AdapterService) GetUserByAccount(ctx context.Context, provider, providerAccountID string) (*AdapterUser, error) {
	account, err := s.repomanager.Accounts(s.db).GetByProviderAccount(ctx, provider, providerAccountID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return absentUser(s.repomanager.Users(s.db).GetByID(ctx, account.UserID))
}

// UpdateUser applies the supplied fields and returns the stored result.
// common.ErrorLostUpdate means the user disappeared underneath the update.
func (s *AdapterService) UpdateUser(ctx context.Context, upd UserUpdate) (*AdapterUser, error) {
	uid, err := parseID(upd.ID)
	if err != nil {
		return nil, err
	}

	patch := models.UserPatch{
		Name:          upd.Name,
		Email:         upd.Email,
		EmailVerified: upd.EmailVerified,
		Image:         upd.Image,
	}

	repo := s.repomanager.Users(s.db)

	if patch.Empty() {
		u, err := repo.GetByID(ctx, uid)
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorLostUpdate
		}
		if err != nil {
			return nil, err
		}
		return toAdapterUser(u), nil
	}

	u, err := repo.Update(ctx, uid, patch)
	if err != nil {
		return nil, err
	}
	return toAdapterUser(u), nil
}

// DeleteUser removes the user only. Accounts and sessions pointing at it
// stay behind and read as absent through the join lookups.
func (s *AdapterService) DeleteUser(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repomanager.Users(s.db).Delete(ctx, uid)
}

func (s *AdapterService) LinkAccount(ctx context.Context, a AdapterAccount) error {
	uid, err := parseID(a.UserID)
	if err != nil {
		return err
	}

	_, err = s.repomanager.Accounts(s.db).Create(ctx, &models.Account{
		UserID:            uid,
		Type:              a.Type,
		Provider:          a.Provider,
		ProviderAccountID: a.ProviderAccountID,
		RefreshToken:      a.RefreshToken,
		AccessToken:       a.AccessToken,
		ExpiresAt:         a.ExpiresAt,
		TokenType:         a.TokenType,
		Scope:             a.Scope,
		IDToken:           a.IDToken,
		SessionState:      a.SessionState,
	})
	return err
}

func (s *AdapterService) UnlinkAccount(ctx context.Context, provider, providerAccountID string) error {
	return s.repomanager.Accounts(s.db).Delete(ctx, provider, providerAccountID)
}

// CreateSession stores the session and hands the input back unchanged.
func (s *AdapterService) CreateSession(ctx context.Context, in AdapterSession) (*AdapterSession, error) {
	uid, err := parseID(in.UserID)
	if err != nil {
		return nil, err
	}

	_, err = s.repomanager.Sessions(s.db).Create(ctx, &models.Session{
		SessionToken: in.SessionToken,
		UserID:       uid,
		Expires:      in.Expires,
	})
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// GetSessionAndUser returns the session with its owner. A missing session
// and a session whose user is gone both read as absent.
func (s *AdapterService) GetSessionAndUser(ctx context.Context, sessionToken string) (*SessionAndUser, error) {
	sess, err := s.repomanager.Sessions(s.db).GetByToken(ctx, sessionToken)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user, err := absentUser(s.repomanager.Users(s.db).GetByID(ctx, sess.UserID))
	if err != nil || user == nil {
		return nil, err
	}

	return &SessionAndUser{Session: *toAdapterSession(sess), User: *user}, nil
}

func (s *AdapterService) UpdateSession(ctx context.Context, upd SessionUpdate) (*AdapterSession, error) {
	patch := models.SessionPatch{SessionToken: upd.SessionToken, Expires: upd.Expires}
	if upd.UserID != nil {
		uid, err := parseID(*upd.UserID)
		if err != nil {
			return nil, err
		}
		patch.UserID = &uid
	}

	sess, err := s.repomanager.Sessions(s.db).Update(ctx, patch)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toAdapterSession(sess), nil
}

func (s *AdapterService) DeleteSession(ctx context.Context, sessionToken string) error {
	return s.repomanager.Sessions(s.db).Delete(ctx, sessionToken)
}

func (s *AdapterService) CreateVerificationToken(ctx context.Context, t VerificationToken) (*VerificationToken, error) {
	_, err := s.repomanager.VerificationTokens(s.db).Create(ctx, &models.VerificationToken{
		Identifier: t.Identifier,
		Token:      t.Token,
		Expires:    t.Expires,
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UseVerificationToken consumes the token. It returns the token the first
// time and absent on every later call.
func (s *AdapterService) UseVerificationToken(ctx context.Context, identifier, token string) (*VerificationToken, error) {
	t, err := s.repomanager.VerificationTokens(s.db).Consume(ctx, identifier, token)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &VerificationToken{Identifier: t.Identifier, Token: t.Token, Expires: t.Expires}, nil
}

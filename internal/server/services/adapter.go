// Package services contains the adapter facade. AdapterService implements
// the method set an authentication framework expects from its persistence
// backend and translates between the framework's string ids and the
// stores' native UUID keys.
package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Adapter is the persistence contract consumed by the authentication
// framework. Lookups return (nil, nil) when nothing matches.
type Adapter interface {
	CreateUser(ctx context.Context, user NewUser) (*AdapterUser, error)
	GetUser(ctx context.Context, id string) (*AdapterUser, error)
	GetUserByEmail(ctx context.Context, email string) (*AdapterUser, error)
	GetUserByAccount(ctx context.Context, provider, providerAccountID string) (*AdapterUser, error)
	UpdateUser(ctx context.Context, update UserUpdate) (*AdapterUser, error)
	DeleteUser(ctx context.Context, id string) error

	LinkAccount(ctx context.Context, account AdapterAccount) error
	UnlinkAccount(ctx context.Context, provider, providerAccountID string) error

	CreateSession(ctx context.Context, session AdapterSession) (*AdapterSession, error)
	GetSessionAndUser(ctx context.Context, sessionToken string) (*SessionAndUser, error)
	UpdateSession(ctx context.Context, update SessionUpdate) (*AdapterSession, error)
	DeleteSession(ctx context.Context, sessionToken string) error

	CreateVerificationToken(ctx context.Context, token VerificationToken) (*VerificationToken, error)
	UseVerificationToken(ctx context.Context, identifier, token string) (*VerificationToken, error)
}

// AdapterUser is a user as seen by the framework.
type AdapterUser struct {
	ID            string     `json:"id"`
	Name          *string    `json:"name"`
	Email         *string    `json:"email"`
	EmailVerified *time.Time `json:"emailVerified"`
	Image         *string    `json:"image"`
	AvatarBlobRef *string    `json:"avatarBlobRef,omitempty"`
	Roles         []string   `json:"roles,omitempty"`
	DateJoined    time.Time  `json:"dateJoined"`
}

// NewUser carries the attributes of a user about to be created.
type NewUser struct {
	Name          *string    `json:"name"`
	Email         *string    `json:"email"`
	EmailVerified *time.Time `json:"emailVerified"`
	Image         *string    `json:"image"`
}

// UserUpdate is a partial user. Only fields that are Set change; a Set
// field with a nil Value clears the stored value.
type UserUpdate struct {
	ID            string                     `json:"id"`
	Name          models.Nullable[string]    `json:"name,omitzero"`
	Email         models.Nullable[string]    `json:"email,omitzero"`
	EmailVerified models.Nullable[time.Time] `json:"emailVerified,omitzero"`
	Image         models.Nullable[string]    `json:"image,omitzero"`
}

// AdapterAccount is a provider account link.
type AdapterAccount struct {
	UserID            string  `json:"userId"`
	Type              string  `json:"type"`
	Provider          string  `json:"provider"`
	ProviderAccountID string  `json:"providerAccountId"`
	RefreshToken      *string `json:"refresh_token,omitempty"`
	AccessToken       *string `json:"access_token,omitempty"`
	ExpiresAt         *int64  `json:"expires_at,omitempty"`
	TokenType         *string `json:"token_type,omitempty"`
	Scope             *string `json:"scope,omitempty"`
	IDToken           *string `json:"id_token,omitempty"`
	SessionState      *string `json:"session_state,omitempty"`
}

type AdapterSession struct {
	SessionToken string    `json:"sessionToken"`
	UserID       string    `json:"userId"`
	Expires      time.Time `json:"expires"`
}

// SessionUpdate patches the session identified by SessionToken. Nil
// fields keep their stored value.
type SessionUpdate struct {
	SessionToken string     `json:"sessionToken"`
	UserID       *string    `json:"userId,omitempty"`
	Expires      *time.Time `json:"expires,omitempty"`
}

type SessionAndUser struct {
	Session AdapterSession `json:"session"`
	User    AdapterUser    `json:"user"`
}

type VerificationToken struct {
	Identifier string    `json:"identifier"`
	Token      string    `json:"token"`
	Expires    time.Time `json:"expires"`
}

// AvatarFailureFunc is told about every avatar that could not be mirrored.
type AvatarFailureFunc func(ctx context.Context, url string, err error)

// Options are resolved once at construction.
type Options struct {
	// StoreImage mirrors the image URL of new users into the avatar store
	// and records the blob reference on the user.
	StoreImage bool
	// RoleBased gives new users the default role set {"user"}.
	RoleBased bool
	// OnAvatarFailure, if set, is called when mirroring fails. User
	// creation proceeds without an avatar either way.
	OnAvatarFailure AvatarFailureFunc
}

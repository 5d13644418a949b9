package models

import "github.com/google/uuid"

// Account links a provider identity to a user. (Provider, ProviderAccountID)
// is the natural key; UserID is not checked against the users table.
type Account struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Type              string
	Provider          string
	ProviderAccountID string
	RefreshToken      *string
	AccessToken       *string
	// ExpiresAt is the access token expiry in unix seconds.
	ExpiresAt    *int64
	TokenType    *string
	Scope        *string
	IDToken      *string
	SessionState *string
}

package rpc

import "github.com/dmitrijs2005/authkeeper/internal/server/services"

// Responses carrying a pointer use null for the framework's absent result.

type Empty struct{}

type CreateUserRequest struct {
	User services.NewUser `json:"user"`
}

type GetUserRequest struct {
	ID string `json:"id"`
}

type GetUserByEmailRequest struct {
	Email string `json:"email"`
}

type GetUserByAccountRequest struct {
	Provider          string `json:"provider"`
	ProviderAccountID string `json:"providerAccountId"`
}

type UpdateUserRequest struct {
	User services.UserUpdate `json:"user"`
}

type DeleteUserRequest struct {
	ID string `json:"id"`
}

type UserResponse struct {
	User *services.AdapterUser `json:"user"`
}

type LinkAccountRequest struct {
	Account services.AdapterAccount `json:"account"`
}

type UnlinkAccountRequest struct {
	Provider          string `json:"provider"`
	ProviderAccountID string `json:"providerAccountId"`
}

type CreateSessionRequest struct {
	Session services.AdapterSession `json:"session"`
}

type GetSessionAndUserRequest struct {
	SessionToken string `json:"sessionToken"`
}

type UpdateSessionRequest struct {
	Session services.SessionUpdate `json:"session"`
}

type DeleteSessionRequest struct {
	SessionToken string `json:"sessionToken"`
}

type SessionResponse struct {
	Session *services.AdapterSession `json:"session"`
}

type SessionAndUserResponse struct {
	Result *services.SessionAndUser `json:"result"`
}

type CreateVerificationTokenRequest struct {
	Token services.VerificationToken `json:"token"`
}

type UseVerificationTokenRequest struct {
	Identifier string `json:"identifier"`
	Token      string `json:"token"`
}

type VerificationTokenResponse struct {
	Token *services.VerificationToken `json:"token"`
}

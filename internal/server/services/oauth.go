package services

import (
	"golang.org/x/oauth2"
)

// AccountFromOAuth2Token builds the account link for a provider identity
// from the token returned by an OAuth2 exchange.
func AccountFromOAuth2Token(userID, provider, providerAccountID string, tok *oauth2.Token) AdapterAccount {
	a := AdapterAccount{
		UserID:            userID,
		Type:              "oauth",
		Provider:          provider,
		ProviderAccountID: providerAccountID,
	}
	if tok == nil {
		return a
	}

	a.AccessToken = nonEmpty(tok.AccessToken)
	a.RefreshToken = nonEmpty(tok.RefreshToken)
	a.TokenType = nonEmpty(tok.TokenType)
	if !tok.Expiry.IsZero() {
		exp := tok.Expiry.Unix()
		a.ExpiresAt = &exp
	}

	a.IDToken = extraString(tok, "id_token")
	a.Scope = extraString(tok, "scope")
	a.SessionState = extraString(tok, "session_state")

	if a.IDToken != nil {
		a.Type = "oidc"
	}

	return a
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func extraString(tok *oauth2.Token, key string) *string {
	v, ok := tok.Extra(key).(string)
	if !ok {
		return nil
	}
	return nonEmpty(v)
}

// Package auth issues and verifies the HS256 service tokens that callers of
// the gRPC surface present in the access_token metadata header.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "authkeeper"

// Claims identifies the calling service.
type Claims struct {
	jwt.RegisteredClaims
	Caller string `json:"caller"`
}

// GenerateToken signs a token for caller. A zero validity yields a token
// without an expiry.
func GenerateToken(caller string, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	rc := jwt.RegisteredClaims{
		Issuer:   issuer,
		Subject:  caller,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if validity != 0 {
		rc.ExpiresAt = jwt.NewNumericDate(now.Add(validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: rc,
		Caller:           caller,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetCallerFromToken verifies tokenString and returns the caller it was
// issued to.
func GetCallerFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Caller == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Caller, nil
}

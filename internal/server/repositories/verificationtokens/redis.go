package verificationtokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/redis/go-redis/v9"
)

var _ Repository = (*RedisRepository)(nil)

// RedisRepository keeps each token as a key holding its expiry, with a
// TTL that matches. Consume uses GETDEL, which Redis executes atomically.
type RedisRepository struct {
	client redis.UniversalClient
}

func NewRedisRepository(client redis.UniversalClient) *RedisRepository {
	return &RedisRepository{client: client}
}

// tokenKey length-prefixes the identifier so that no (identifier, token)
// pair can collide with another one containing a colon.
func tokenKey(identifier, token string) string {
	return fmt.Sprintf("verification:%d:%s:%s", len(identifier), identifier, token)
}

// Create stores the token unless the same pair already exists. A token
// that has already expired is not written.
func (r *RedisRepository) Create(ctx context.Context, t *models.VerificationToken) (*models.VerificationToken, error) {
	ttl := time.Until(t.Expires)
	if ttl <= 0 {
		return t, nil
	}

	ok, err := r.client.SetNX(ctx, tokenKey(t.Identifier, t.Token), t.Expires.UTC().Format(time.RFC3339Nano), ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to save verification token: %w", err)
	}
	if !ok {
		return nil, common.ErrorAlreadyExists
	}

	return t, nil
}

func (r *RedisRepository) Consume(ctx context.Context, identifier, token string) (*models.VerificationToken, error) {
	val, err := r.client.GetDel(ctx, tokenKey(identifier, token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume verification token: %w", err)
	}

	expires, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return nil, fmt.Errorf("failed to parse verification token expiry: %w", err)
	}

	return &models.VerificationToken{Identifier: identifier, Token: token, Expires: expires}, nil
}

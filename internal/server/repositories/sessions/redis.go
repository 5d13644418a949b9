package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var _ Repository = (*RedisRepository)(nil)

const (
	sessionPrefix = "session:"

	// updateRetries bounds optimistic-lock retries in Update.
	updateRetries = 3
)

// RedisRepository stores each session as a JSON value under
// "session:<token>" whose TTL tracks the session expiry, so expired
// sessions disappear on their own.
type RedisRepository struct {
	client redis.UniversalClient
}

func NewRedisRepository(client redis.UniversalClient) *RedisRepository {
	return &RedisRepository{client: client}
}

type redisSession struct {
	UserID  uuid.UUID `json:"userId"`
	Expires time.Time `json:"expires"`
}

func sessionKey(token string) string {
	return sessionPrefix + token
}

// Create stores the session unless the token is already in use. A session
// whose expiry has already passed is not written.
func (r *RedisRepository) Create(ctx context.Context, s *models.Session) (*models.Session, error) {
	ttl := time.Until(s.Expires)
	if ttl <= 0 {
		return s, nil
	}

	data, err := json.Marshal(redisSession{UserID: s.UserID, Expires: s.Expires})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	ok, err := r.client.SetNX(ctx, sessionKey(s.SessionToken), data, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	if !ok {
		return nil, common.ErrorAlreadyExists
	}

	return s, nil
}

func (r *RedisRepository) GetByToken(ctx context.Context, sessionToken string) (*models.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionToken)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return decodeSession(sessionToken, data)
}

// Update rewrites the session under WATCH so that a concurrent change
// between the read and the write aborts and retries. Moving the expiry
// into the past removes the session.
func (r *RedisRepository) Update(ctx context.Context, patch models.SessionPatch) (*models.Session, error) {
	key := sessionKey(patch.SessionToken)

	var updated *models.Session
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return common.ErrorNotFound
		}
		if err != nil {
			return err
		}

		s, err := decodeSession(patch.SessionToken, data)
		if err != nil {
			return err
		}
		if patch.UserID != nil {
			s.UserID = *patch.UserID
		}
		if patch.Expires != nil {
			s.Expires = *patch.Expires
		}

		ttl := time.Until(s.Expires)
		out, err := json.Marshal(redisSession{UserID: s.UserID, Expires: s.Expires})
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if ttl <= 0 {
				pipe.Del(ctx, key)
				return nil
			}
			pipe.Set(ctx, key, out, ttl)
			return nil
		})
		if err != nil {
			return err
		}

		if ttl > 0 {
			updated = s
		}
		return nil
	}

	for i := 0; i < updateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		if err != nil {
			return nil, fmt.Errorf("failed to update session: %w", err)
		}
		if updated == nil {
			return nil, common.ErrorNotFound
		}
		return updated, nil
	}

	return nil, fmt.Errorf("failed to update session: %w", redis.TxFailedErr)
}

func (r *RedisRepository) Delete(ctx context.Context, sessionToken string) error {
	if err := r.client.Del(ctx, sessionKey(sessionToken)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func decodeSession(token string, data []byte) (*models.Session, error) {
	var rs redisSession
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &models.Session{SessionToken: token, UserID: rs.UserID, Expires: rs.Expires}, nil
}

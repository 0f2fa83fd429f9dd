package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrRefreshTokenInvalid covers unknown, expired and already-rotated tokens
// alike; callers cannot tell them apart and should not try.
var ErrRefreshTokenInvalid = errors.New("refresh token invalid")

// RedisTokenStore is an allowlist of live refresh tokens. A token is a
// random opaque id mapped to its user; rotation revokes the old token and
// issues a new one, so a replayed token fails.
type RedisTokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisTokenStore(rdb *redis.Client, ttl time.Duration) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb, ttl: ttl}
}

func refreshKey(token string) string {
	return "refresh:" + token
}

func (s *RedisTokenStore) Issue(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	err := s.rdb.Set(ctx, refreshKey(token), strconv.FormatInt(userID, 10), s.ttl).Err()
	if err != nil {
		return "", fmt.Errorf("store refresh token: %w", err)
	}
	return token, nil
}

// Rotate atomically consumes the token and returns its owner.
func (s *RedisTokenStore) Rotate(ctx context.Context, token string) (int64, error) {
	val, err := s.rdb.GetDel(ctx, refreshKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrRefreshTokenInvalid
	}
	if err != nil {
		return 0, fmt.Errorf("load refresh token: %w", err)
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, ErrRefreshTokenInvalid
	}
	return userID, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, refreshKey(token)).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Lifespan() time.Duration {
	return s.ttl
}

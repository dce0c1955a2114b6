package blocklist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store remembers revoked token ids until their TTL runs out.
type Store interface {
	Add(ctx context.Context, jti string) error
	Contains(ctx context.Context, jti string) (bool, error)
}

type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: client, TTL: ttl}
}

// Add is idempotent: re-adding a jti only refreshes its TTL.
func (s *RedisStore) Add(ctx context.Context, jti string) error {
	if err := s.Client.Set(ctx, jti, "", s.TTL).Err(); err != nil {
		return fmt.Errorf("blocklist add: %w", err)
	}
	return nil
}

func (s *RedisStore) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := s.Client.Exists(ctx, jti).Result()
	if err != nil {
		return false, fmt.Errorf("blocklist lookup: %w", err)
	}
	return n > 0, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

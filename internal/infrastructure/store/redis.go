package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/localkonnect/mobile-core/internal/core/domain"
)

const (
	keyPrefix      = "cred:"
	connectTimeout = 5 * time.Second
)

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// RedisStore is a credential store backed by Redis, used where several
// processes share one session (integration rigs, server-side agents).
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("credential read: %w", err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("credential write: %w", err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("credential remove: %w", err)
	}
	return nil
}

// Clear deletes the access token in its own round trip before the remaining
// keys, keeping the interrupted-clear guarantee of the file store.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, keyPrefix+domain.KeyAccessToken).Err(); err != nil {
		return fmt.Errorf("credential clear: %w", err)
	}
	rest := make([]string, 0, len(domain.KnownKeys))
	for _, key := range domain.KnownKeys {
		if key != domain.KeyAccessToken {
			rest = append(rest, keyPrefix+key)
		}
	}
	if err := s.client.Del(ctx, rest...).Err(); err != nil {
		return fmt.Errorf("credential clear: %w", err)
	}
	return nil
}

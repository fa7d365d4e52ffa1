// Package cache provides a redis-backed store.SessionRepo for sessions that
// should expire instead of living in the local database.
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/smartest/internal/store"
)

type sessionCache struct {
	client *redis.Client
	cfg    Config
}

// NewClient opens a redis client for cfg and verifies it with a ping.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// NewSessionCache wraps client as a store.SessionRepo. Payloads expire
// cfg.TTL after their last save.
func NewSessionCache(client *redis.Client, cfg Config) store.SessionRepo {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultConfig().Prefix
	}
	return &sessionCache{client: client, cfg: cfg}
}

func (c *sessionCache) key(scope, key string) string {
	return c.cfg.Prefix + ":session:" + scope + ":" + key
}

func (c *sessionCache) Save(ctx context.Context, scope, key string, payload []byte) error {
	if err := c.client.Set(ctx, c.key(scope, key), payload, c.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("redis set %s/%s: %w", scope, key, err)
	}
	return nil
}

func (c *sessionCache) Load(ctx context.Context, scope, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.key(scope, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s/%s: %w", scope, key, err)
	}
	return data, nil
}

func (c *sessionCache) Delete(ctx context.Context, scope, key string) error {
	if err := c.client.Del(ctx, c.key(scope, key)).Err(); err != nil {
		return fmt.Errorf("redis del %s/%s: %w", scope, key, err)
	}
	return nil
}

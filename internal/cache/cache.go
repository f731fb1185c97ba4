// Package cache is a JSON value cache on Redis. A Cache without a client
// is valid and caches nothing, so callers do not need to branch on whether
// Redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/apmap/internal/config"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

// Cache stores JSON-encoded values under a key prefix
type Cache struct {
	client *redis.Client
	prefix string
}

// NewRedisClient connects to the configured Redis server. It returns nil
// when Redis is not configured or does not answer a ping.
func NewRedisClient(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, caching disabled", "addr", cfg.Redis.Addr, "error", err)
		_ = client.Close()
		return nil
	}

	return client
}

// New creates a cache over client, which may be nil.
func New(client *redis.Client, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

// Enabled reports whether values are actually stored.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get decodes the value stored under key into dst
func (c *Cache) Get(ctx context.Context, key string, dst interface{}) error {
	if !c.Enabled() {
		return ErrMiss
	}

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return fmt.Errorf("reading cache: %w", err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshaling cached value: %w", err)
	}
	return nil
}

// Set stores value under key for ttl
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling value: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// GetOrSet fills dst from the cache, or from fetch on a miss and then
// stores the fetched value. Cache failures are logged and never fail the
// call.
func (c *Cache) GetOrSet(ctx context.Context, key string, dst interface{}, ttl time.Duration, fetch func(ctx context.Context) (interface{}, error)) error {
	err := c.Get(ctx, key, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrMiss) {
		slog.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}

	value, err := fetch(ctx)
	if err != nil {
		return err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		slog.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}

	return assignValue(value, dst)
}

// assignValue copies src into dst through a JSON round trip
func assignValue(src interface{}, dst interface{}) error {
	if v, ok := dst.(*interface{}); ok {
		*v = src
		return nil
	}

	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("marshaling value: %w", err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshaling value: %w", err)
	}

	return nil
}

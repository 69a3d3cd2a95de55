// Package cache keeps rendered catalog reads in redis. A nil *Catalog is a
// valid cache that never hits, so callers need no redis in development.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KeyProducts    = "catalog:products"
	KeyAccessories = "catalog:accessories"
)

func ProductKey(id uint) string {
	return fmt.Sprintf("catalog:product:%d", id)
}

func AccessoryKey(id uint) string {
	return fmt.Sprintf("catalog:accessory:%d", id)
}

type Catalog struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Catalog{rdb: rdb, ttl: ttl}
}

// Dial parses a redis:// url and pings the server.
func Dial(ctx context.Context, url string, ttl time.Duration) (*Catalog, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(rdb, ttl), nil
}

// Get decodes the cached value for key into dst and reports whether it was found.
func (c *Catalog) Get(ctx context.Context, key string, dst any) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("Cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		slog.Warn("Cache entry undecodable", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Catalog) Set(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Warn("Cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		slog.Warn("Cache write failed", "key", key, "error", err)
	}
}

func (c *Catalog) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("Cache invalidation failed", "keys", keys, "error", err)
	}
}

func (c *Catalog) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

package summary

import (
	"context"
	"errors"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "markettrends:summary:"

// Cache stores summaries by request fingerprint. Lookups never fail: a broken
// backend is logged and treated as a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

type MemoryCache struct {
	entries *lru.Cache[string, string]
}

func NewMemoryCache(size int) (*MemoryCache, error) {
	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{entries: entries}, nil
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	return c.entries.Get(key)
}

func (c *MemoryCache) Set(_ context.Context, key, value string) {
	c.entries.Add(key, value)
}

// redisStore is the part of *redis.Client the cache uses.
type redisStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type RedisCache struct {
	client redisStore
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		slog.Warn("summary cache read failed", "error", err)
		return "", false
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key, value string) {
	if err := c.client.Set(ctx, redisKeyPrefix+key, value, c.ttl).Err(); err != nil {
		slog.Warn("summary cache write failed", "error", err)
	}
}

// Tiered consults each cache in order and back-fills the faster tiers on a hit.
type Tiered []Cache

func (t Tiered) Get(ctx context.Context, key string) (string, bool) {
	for i, c := range t {
		if value, ok := c.Get(ctx, key); ok {
			for _, faster := range t[:i] {
				faster.Set(ctx, key, value)
			}
			return value, true
		}
	}
	return "", false
}

func (t Tiered) Set(ctx context.Context, key, value string) {
	for _, c := range t {
		c.Set(ctx, key, value)
	}
}

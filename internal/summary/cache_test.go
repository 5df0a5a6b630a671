package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/redis/go-redis/v9"
)

type mapCache map[string]string

func (m mapCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapCache) Set(_ context.Context, key, value string) {
	m[key] = value
}

// fakeRedis keeps values in a map. err, when set, fails every command.
type fakeRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.values[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestMemoryCacheEvicts(t *testing.T) {
	c, err := NewMemoryCache(2)
	assert.Equal(t, nil, err)

	ctx := context.Background()
	c.Set(ctx, "a", "1")
	c.Set(ctx, "b", "2")
	c.Set(ctx, "c", "3")

	_, ok := c.Get(ctx, "a")
	assert.Equal(t, false, ok)
	v, ok := c.Get(ctx, "c")
	assert.Equal(t, true, ok)
	assert.Equal(t, "3", v)
}

func TestMemoryCacheRejectsZeroSize(t *testing.T) {
	_, err := NewMemoryCache(0)
	assert.NotEqual(t, nil, err)
}

func TestRedisCacheHit(t *testing.T) {
	store := newFakeRedis()
	c := &RedisCache{client: store, ttl: time.Hour}
	ctx := context.Background()

	c.Set(ctx, "k", "summary text")

	assert.Equal(t, "summary text", store.values[redisKeyPrefix+"k"])
	assert.Equal(t, time.Hour, store.ttls[redisKeyPrefix+"k"])

	v, ok := c.Get(ctx, "k")
	assert.Equal(t, true, ok)
	assert.Equal(t, "summary text", v)
}

func TestRedisCacheMiss(t *testing.T) {
	c := &RedisCache{client: newFakeRedis(), ttl: time.Hour}

	v, ok := c.Get(context.Background(), "absent")
	assert.Equal(t, false, ok)
	assert.Equal(t, "", v)
}

func TestRedisCacheErrorIsMiss(t *testing.T) {
	store := newFakeRedis()
	store.values[redisKeyPrefix+"k"] = "stale"
	store.err = errors.New("connection refused")
	c := &RedisCache{client: store, ttl: time.Hour}
	ctx := context.Background()

	v, ok := c.Get(ctx, "k")
	assert.Equal(t, false, ok)
	assert.Equal(t, "", v)

	c.Set(ctx, "n", "m")
	_, stored := store.values[redisKeyPrefix+"n"]
	assert.Equal(t, false, stored)
}

func TestTieredBackfills(t *testing.T) {
	fast, slow := mapCache{}, mapCache{"k": "v"}
	tiers := Tiered{fast, slow}

	v, ok := tiers.Get(context.Background(), "k")
	assert.Equal(t, true, ok)
	assert.Equal(t, "v", v)
	assert.Equal(t, "v", fast["k"])

	tiers.Set(context.Background(), "n", "m")
	assert.Equal(t, "m", fast["n"])
	assert.Equal(t, "m", slow["n"])
}

func TestTieredRedisBackfillsMemory(t *testing.T) {
	memory, err := NewMemoryCache(4)
	assert.Equal(t, nil, err)
	store := newFakeRedis()
	store.values[redisKeyPrefix+"k"] = "from redis"
	tiers := Tiered{memory, &RedisCache{client: store, ttl: time.Hour}}
	ctx := context.Background()

	v, ok := tiers.Get(ctx, "k")
	assert.Equal(t, true, ok)
	assert.Equal(t, "from redis", v)

	v, ok = memory.Get(ctx, "k")
	assert.Equal(t, true, ok)
	assert.Equal(t, "from redis", v)
}

func TestCacheKeyDependsOnInputs(t *testing.T) {
	b := Bounds{MinLength: 1, MaxLength: 2}
	assert.Equal(t, cacheKey("m", b, "x"), cacheKey("m", b, "x"))
	assert.NotEqual(t, cacheKey("m", b, "x"), cacheKey("n", b, "x"))
	assert.NotEqual(t, cacheKey("m", b, "x"), cacheKey("m", Bounds{MinLength: 1, MaxLength: 3}, "x"))
}

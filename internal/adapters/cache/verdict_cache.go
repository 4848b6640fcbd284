// Package cache provides a Redis-backed implementation of
// ports.VerdictCache, mirroring the teacher's RedisCache in
// internal/dns/server/redis.go.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "dnssecd:verdict:"

// RedisVerdictCache caches verification outcomes keyed by a
// caller-supplied fingerprint, avoiding repeated crypto work for an
// unchanged (rrset, rrsig, dnskey) triple within ttl.
type RedisVerdictCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisVerdictCache returns a RedisVerdictCache connecting to addr,
// caching entries for ttl.
func NewRedisVerdictCache(addr, password string, db int, ttl time.Duration) *RedisVerdictCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisVerdictCache{client: rdb, ttl: ttl}
}

// Get implements ports.VerdictCache.
func (c *RedisVerdictCache) Get(ctx context.Context, fingerprint string) (string, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+fingerprint).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set implements ports.VerdictCache.
func (c *RedisVerdictCache) Set(ctx context.Context, fingerprint string, verdict string) error {
	return c.client.Set(ctx, keyPrefix+fingerprint, verdict, c.ttl).Err()
}

// Ping checks connectivity to the backing Redis instance.
func (c *RedisVerdictCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

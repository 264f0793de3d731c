package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a Redis-backed TTL memoization of store reads. It is not a
// correctness mechanism: callers must tolerate a stale value for up to one
// TTL window and must treat every cache failure as a miss.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New builds a Redis-backed cache with a fixed TTL.
func New(addr, password, prefix string, ttl time.Duration) *Cache {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "facultybot:cache"
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get returns the cached value for key, with a miss on expiry or error.
func (c *Cache) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	val, err := c.client.Get(ctx, c.prefix+":"+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Put stores a value under key for one TTL window.
func (c *Cache) Put(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return c.client.Set(ctx, c.prefix+":"+key, value, c.ttl).Err()
}

// Invalidate drops the given keys. Write paths call this so the next read
// after a write sees fresh data instead of waiting out the TTL.
func (c *Cache) Invalidate(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.prefix+":"+k)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.client.Del(ctx, full...).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}

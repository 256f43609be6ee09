package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const localCleanupInterval = 10 * time.Minute

// Client is a fail-safe cache: backend errors behave like misses and writes
// never fail the caller. A nil *Client is a valid, always-missing cache.
type Client struct {
	redis *redis.Client
	local *gocache.Cache
}

// New creates a Redis-backed client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{redis: redis.NewClient(opts)}
}

// NewLocal creates an in-process client for single-instance deployments and tests.
func NewLocal() *Client {
	return &Client{local: gocache.New(gocache.NoExpiration, localCleanupInterval)}
}

// Ping reports whether the backend is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.redis == nil {
		return nil
	}
	return c.redis.Ping(ctx).Err()
}

// Get returns value or nil if missing or the backend is unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	switch {
	case c == nil:
		return nil, nil
	case c.redis != nil:
		res, err := c.redis.Get(ctx, key).Bytes()
		if err != nil {
			// redis.Nil or connectivity: behave like cache miss
			return nil, nil
		}
		return res, nil
	case c.local != nil:
		if v, ok := c.local.Get(key); ok {
			return v.([]byte), nil
		}
	}
	return nil, nil
}

// Set stores value with TTL, ignoring backend errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	switch {
	case c == nil:
	case c.redis != nil:
		_ = c.redis.Set(ctx, key, value, ttl).Err()
	case c.local != nil:
		c.local.Set(key, value, ttl)
	}
	return nil
}

// Delete removes keys, ignoring backend errors.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	switch {
	case c == nil:
	case c.redis != nil:
		_ = c.redis.Del(ctx, keys...).Err()
	case c.local != nil:
		for _, key := range keys {
			c.local.Delete(key)
		}
	}
	return nil
}

// Close releases the backend connection.
func (c *Client) Close() error {
	if c == nil || c.redis == nil {
		return nil
	}
	return c.redis.Close()
}

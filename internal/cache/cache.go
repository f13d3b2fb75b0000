package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe: an unreachable Redis behaves like
// an always-empty cache, never like an error.
type Client struct {
	client *redis.Client
}

// New creates a new Redis-backed cache client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// GetString returns the cached value, or "" on miss or redis failure.
func (c *Client) GetString(ctx context.Context, key string) string {
	if c == nil || c.client == nil {
		return ""
	}
	res, err := c.client.Get(ctx, key).Result()
	if err != nil {
		// miss and connectivity failure are indistinguishable on purpose
		return ""
	}
	return res
}

// SetString stores value with TTL, ignoring redis errors.
func (c *Client) SetString(ctx context.Context, key, value string, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, key).Err()
}

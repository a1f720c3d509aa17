package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a fail-safe JSON cache over Redis: when the server is unreachable
// every operation degrades to a miss instead of surfacing an error. A nil
// Client behaves the same way, so callers never need to guard for it.
type Client struct {
	rdb *redis.Client
}

// New creates a new Redis-backed cache client.
func New(addr, password string, db int) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// GetJSON unmarshals the cached value into dest. It reports false on a miss,
// a Redis failure, or a stale payload that no longer unmarshals.
func (c *Client) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// SetJSON stores value marshaled as JSON with the given TTL. Marshaling and
// Redis failures are ignored.
func (c *Client) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, data, ttl).Err()
}

// Invalidate drops a key, ignoring Redis failures.
func (c *Client) Invalidate(ctx context.Context, key string) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, key).Err()
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a fail-safe session cache over Redis: connectivity errors read as misses and
// writes are best effort. The marketplace snapshot itself goes through blob.Redis, which does not fail safe.
type Client struct {
	client *redis.Client
}

// NewRedisClient opens the Redis client shared by the session cache and the Redis blob backend.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// New wraps an existing Redis client.
func New(client *redis.Client) *Client {
	return &Client{client: client}
}

// GetJSON decodes the value under key into v. It reports false on a miss, an unreachable
// Redis or an undecodable value.
func (c *Client) GetJSON(ctx context.Context, key string, v interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// SetJSON stores v encoded as JSON with a TTL. Only encoding failures are reported.
func (c *Client) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Set(ctx, key, payload, ttl).Err()
	return nil
}

// Mark sets a presence flag under key for ttl.
func (c *Client) Mark(ctx context.Context, key string, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, "1", ttl).Err()
}

// Marked reports whether key is present. An unreachable Redis reads as absent.
func (c *Client) Marked(ctx context.Context, key string) bool {
	if c == nil || c.client == nil {
		return false
	}
	n, err := c.client.Exists(ctx, key).Result()
	return err == nil && n > 0
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, key).Err()
}

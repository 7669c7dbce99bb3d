package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const bundleKey = "advisor:bundle"

// RedisCache stores bundles as JSON in Redis with a TTL.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) GetBundle(ctx context.Context) (*Bundle, error) {
	raw, err := c.client.Get(ctx, bundleKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}

	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decoding cached bundle: %w", err)
	}

	return &b, nil
}

func (c *RedisCache) SetBundle(ctx context.Context, b *Bundle, ttl time.Duration) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}

	if err := c.client.Set(ctx, bundleKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// NopCache always misses. Used when no Redis address is configured.
type NopCache struct{}

func (NopCache) GetBundle(context.Context) (*Bundle, error) {
	return nil, ErrCacheMiss
}

func (NopCache) SetBundle(context.Context, *Bundle, time.Duration) error {
	return nil
}

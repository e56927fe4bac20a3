// Package cache implements the RouteViewCache port on Redis. Cached driver
// route views are keyed by access token and carry a short TTL as a safety net
// on top of explicit invalidation from the stop-mutation commands.
package cache

import (
	"context"
	"errors"
	"time"

	"routeplan/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "routeview:"

// RedisRouteViewCache stores serialized route views in Redis.
type RedisRouteViewCache struct {
	client *redis.Client
}

// NewRedisRouteViewCache creates a cache backed by the given Redis client.
func NewRedisRouteViewCache(client *redis.Client) *RedisRouteViewCache {
	return &RedisRouteViewCache{client: client}
}

// Get returns the cached view for a token, or ErrCacheMiss when absent.
func (c *RedisRouteViewCache) Get(ctx context.Context, token string) ([]byte, error) {
	view, err := c.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrCacheMiss
		}
		return nil, err
	}
	return view, nil
}

// Set stores a view under the token with the given TTL.
func (c *RedisRouteViewCache) Set(ctx context.Context, token string, view []byte, ttl time.Duration) error {
	return c.client.Set(ctx, keyPrefix+token, view, ttl).Err()
}

// Invalidate removes the cached view for a token. Removing a token that was
// never cached is not an error.
func (c *RedisRouteViewCache) Invalidate(ctx context.Context, token string) error {
	return c.client.Del(ctx, keyPrefix+token).Err()
}

package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const imageCachePrefix = "recipe_img:"

// RedisCache is the subset of the redis client used by the image cache.
type RedisCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedResolver keeps encoded images in Redis so list and detail reads do
// not re-read and re-encode the blob on every request.
//
// References are never reused for different content, so entries only expire
// and are never invalidated. Redis failures degrade to an uncached read.
type CachedResolver struct {
	next   ImageResolver
	redis  RedisCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedResolver wraps next with a Redis cache.
func NewCachedResolver(next ImageResolver, client RedisCache, ttl time.Duration, logger *zap.Logger) *CachedResolver {
	return &CachedResolver{next: next, redis: client, ttl: ttl, logger: logger}
}

// Resolve returns the cached data URI for ref, filling the cache on a miss.
func (c *CachedResolver) Resolve(ctx context.Context, ref string) (string, error) {
	key := imageCachePrefix + ref

	cached, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("image cache read failed", zap.String("ref", ref), zap.Error(err))
	}

	uri, err := c.next.Resolve(ctx, ref)
	if err != nil {
		return "", err
	}

	if err := c.redis.Set(ctx, key, uri, c.ttl).Err(); err != nil {
		c.logger.Warn("image cache write failed", zap.String("ref", ref), zap.Error(err))
	}
	return uri, nil
}

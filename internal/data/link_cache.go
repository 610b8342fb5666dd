package data

import (
	"context"
	"errors"
	"time"

	"go-promoter/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
)

const linkCachePrefix = "link:"

// Compile-time interface checks
var (
	_ domain.LinkCache = (*RedisLinkCache)(nil)
	_ domain.LinkCache = (*noopLinkCache)(nil)
)

// RedisLinkCache maps short codes to destination URLs in redis.
type RedisLinkCache struct {
	rdb *redis.Client
	log *log.Helper
}

// NewLinkCache creates a redis backed link cache.
// Returns a no-op cache if redis is disabled.
func NewLinkCache(data *Data, logger log.Logger) domain.LinkCache {
	return NewRedisLinkCache(data.rdb, logger)
}

// NewRedisLinkCache creates a redis link cache, or a no-op cache if rdb is nil.
func NewRedisLinkCache(rdb *redis.Client, logger log.Logger) domain.LinkCache {
	if rdb == nil {
		return &noopLinkCache{}
	}
	return &RedisLinkCache{
		rdb: rdb,
		log: log.NewHelper(logger),
	}
}

func (c *RedisLinkCache) cacheKey(code string) string {
	return linkCachePrefix + code
}

// Get returns the cached destination, or "" on a miss.
func (c *RedisLinkCache) Get(ctx context.Context, code string) (string, error) {
	dest, err := c.rdb.Get(ctx, c.cacheKey(code)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return dest, err
}

// Set stores the destination with ttl.
func (c *RedisLinkCache) Set(ctx context.Context, code, destination string, ttl time.Duration) error {
	return c.rdb.Set(ctx, c.cacheKey(code), destination, ttl).Err()
}

// Invalidate removes a code from the cache.
func (c *RedisLinkCache) Invalidate(ctx context.Context, code string) error {
	return c.rdb.Del(ctx, c.cacheKey(code)).Err()
}

// noopLinkCache is used when redis is not available.
type noopLinkCache struct{}

func (noopLinkCache) Get(context.Context, string) (string, error) {
	return "", nil
}

func (noopLinkCache) Set(context.Context, string, string, time.Duration) error {
	return nil
}

func (noopLinkCache) Invalidate(context.Context, string) error {
	return nil
}

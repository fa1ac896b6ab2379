package scopeconfig

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/productattach/pkg/logger"
)

const redisKeyPrefix = "scopeconfig:"

// RedisCache caches values of another Source in Redis. Redis failures are
// logged and the lookup goes to the wrapped source.
type RedisCache struct {
	next   Source
	client redis.Cmdable
	ttl    time.Duration
	log    *slog.Logger
}

// RedisCacheOption configures a RedisCache.
type RedisCacheOption func(*RedisCache)

func WithRedisLogger(l *slog.Logger) RedisCacheOption {
	return func(c *RedisCache) {
		if l != nil {
			c.log = l
		}
	}
}

// NewRedisCache wraps next. A non-positive ttl caches values without expiry.
func NewRedisCache(next Source, client redis.Cmdable, ttl time.Duration, opts ...RedisCacheOption) *RedisCache {
	c := &RedisCache{
		next:   next,
		client: client,
		ttl:    max(ttl, 0),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("scopeconfig.redis"))
	return c
}

func (c *RedisCache) Lookup(ctx context.Context, path string, scope Scope, scopeID int) (string, error) {
	k := redisKeyPrefix + newKey(path, scope, scopeID).String()

	v, err := c.client.Get(ctx, k).Result()
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, redis.Nil):
	default:
		c.log.WarnContext(ctx, "redis lookup failed", logger.ConfigPath(path), logger.Error(err))
	}

	v, err = c.next.Lookup(ctx, path, scope, scopeID)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, k, v, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "redis store failed", logger.ConfigPath(path), logger.Error(err))
	}
	return v, nil
}

// Invalidate drops the cached value of one scope.
func (c *RedisCache) Invalidate(ctx context.Context, path string, scope Scope, scopeID int) error {
	if err := c.client.Del(ctx, redisKeyPrefix+newKey(path, scope, scopeID).String()).Err(); err != nil {
		return errors.Join(ErrCacheFailed, err)
	}
	return nil
}

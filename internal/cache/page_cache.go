// Package cache memoizes rendered feed pages in Redis for a short TTL.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"socialblog/internal/config"
)

const indexKeyPrefix = "index_page"

// PageCache holds fully rendered page bytes keyed by page number.
// Within the TTL readers get the cached bytes even if new posts were
// written in the meantime; that staleness is the intended trade-off.
type PageCache interface {
	Get(ctx context.Context, page int) ([]byte, bool)
	Set(ctx context.Context, page int, body []byte)
	Invalidate(ctx context.Context) error
}

type RedisPageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPageCache(cfg *config.Config) *RedisPageCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return &RedisPageCache{client: client, ttl: cfg.PageCacheTTL}
}

func NewRedisPageCacheWithClient(client *redis.Client, ttl time.Duration) *RedisPageCache {
	return &RedisPageCache{client: client, ttl: ttl}
}

func (c *RedisPageCache) key(page int) string {
	return fmt.Sprintf("%s:%d", indexKeyPrefix, page)
}

// Get treats every Redis failure as a miss so the caller falls back to
// rendering directly.
func (c *RedisPageCache) Get(ctx context.Context, page int) ([]byte, bool) {
	body, err := c.client.Get(ctx, c.key(page)).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

func (c *RedisPageCache) Set(ctx context.Context, page int, body []byte) {
	_ = c.client.Set(ctx, c.key(page), body, c.ttl).Err()
}

func (c *RedisPageCache) Invalidate(ctx context.Context) error {
	keys, err := c.client.Keys(ctx, indexKeyPrefix+":*").Result()
	if err != nil {
		return fmt.Errorf("failed to list cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to drop cache keys: %w", err)
	}
	return nil
}

func (c *RedisPageCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisPageCache) Close() error {
	return c.client.Close()
}

package health

import (
	"context"

	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/go-redis/redis/v8"
)

// docStoreHealthChecker probes the document store with a read for a
// sentinel id. A missing document is fine; only transport errors count.
type docStoreHealthChecker struct{ store ports.DocumentStore }

func (d *docStoreHealthChecker) Name() string { return "docstore" }

func (d *docStoreHealthChecker) Check(ctx context.Context) error {
	_, err := d.store.Get(ctx, "health", "probe")
	return err
}

// redisHealthChecker wraps the redis client for health checks.
type redisHealthChecker struct{ client *redis.Client }

func (r *redisHealthChecker) Name() string                    { return "redis" }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// cacheHealthChecker exercises the cache port itself, covering the
// in-memory backend where no redis client exists.
type cacheHealthChecker struct{ cache ports.Cache }

func (c *cacheHealthChecker) Name() string { return "cache" }

func (c *cacheHealthChecker) Check(ctx context.Context) error {
	_, _, err := c.cache.Retrieve(ctx, "health_probe")
	return err
}

// NewDocStoreHealthChecker creates a health checker for the document store.
func NewDocStoreHealthChecker(store ports.DocumentStore) ports.HealthChecker {
	return &docStoreHealthChecker{store: store}
}

// NewRedisHealthChecker creates a health checker for Redis.
func NewRedisHealthChecker(client *redis.Client) ports.HealthChecker {
	return &redisHealthChecker{client: client}
}

// NewCacheHealthChecker creates a health checker for the cache port.
func NewCacheHealthChecker(cache ports.Cache) ports.HealthChecker {
	return &cacheHealthChecker{cache: cache}
}

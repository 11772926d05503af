package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/go-redis/redis/v8"
)

// envelope wraps a cached value with its write timestamp so the
// retrieve/isExpired split survives the round trip through Redis.
type envelope struct {
	Value    []byte    `json:"v"`
	StoredAt time.Time `json:"t"`
}

// Cache implements ports.Cache on a Redis client. Entries carry no Redis
// TTL: like the in-memory store, staleness is decided by the caller's
// max-age check, and entries live until removed.
type Cache struct {
	r redis.Cmdable
	// key prefix to namespace entries; also scopes ClearAll
	prefix string
}

// NewCache creates a new Redis-backed cache.
func NewCache(r redis.Cmdable, prefix string) *Cache {
	return &Cache{r: r, prefix: prefix}
}

func (c *Cache) namespaced(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

// Store implements Cache.Store.
func (c *Cache) Store(ctx context.Context, key string, value []byte) error {
	b, err := json.Marshal(envelope{Value: value, StoredAt: time.Now()})
	if err != nil {
		return err
	}
	return c.r.Set(ctx, c.namespaced(key), b, 0).Err()
}

// Retrieve implements Cache.Retrieve.
func (c *Cache) Retrieve(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.r.Get(ctx, c.namespaced(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var e envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, false, err
	}
	return e.Value, true, nil
}

// IsExpired implements Cache.IsExpired.
func (c *Cache) IsExpired(ctx context.Context, key string, maxAge time.Duration) (bool, error) {
	b, err := c.r.Get(ctx, c.namespaced(key)).Bytes()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	var e envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return true, err
	}
	return time.Since(e.StoredAt) > maxAge, nil
}

// Remove implements Cache.Remove.
func (c *Cache) Remove(ctx context.Context, key string) error {
	return c.r.Del(ctx, c.namespaced(key)).Err()
}

// ClearAll implements Cache.ClearAll by scanning the prefix.
func (c *Cache) ClearAll(ctx context.Context) error {
	pattern := c.namespaced("*")
	iter := c.r.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.r.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

var _ ports.Cache = (*Cache)(nil)

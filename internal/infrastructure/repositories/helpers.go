package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// Collection names used across the repositories.
const (
	colUsers          = "users"
	colPosts          = "posts"
	colReels          = "reels"
	colReelComments   = "reel_comments"
	colReviews        = "reviews"
	colMessages       = "messages"
	colConversations  = "conversations"
	colNotifications  = "notifications"
	colStatuses       = "statuses"
	colPortfolioCards = "portfolio_cards"
	colSavedItems     = "saved_items"
)

// timeLayout is the wire format for timestamps inside document fields.
// Fixed width and UTC so the strings sort lexicographically and range
// filters on time fields behave.
const timeLayout = "2006-01-02T15:04:05.000Z"

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func decodeTime(v any) time.Time {
	switch val := v.(type) {
	case string:
		t, err := time.Parse(timeLayout, val)
		if err != nil {
			return time.Time{}
		}
		return t
	case time.Time:
		return val
	default:
		return time.Time{}
	}
}

// Field readers for the schemaless document maps. Missing or mistyped
// fields read as zero values; the document store already round-trips
// numbers as float64.

func docString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func docBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func docFloat(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func docInt(m map[string]any, key string) int {
	return int(docFloat(m, key))
}

func docStrings(m map[string]any, key string) []string {
	switch v := m[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case ports.StringSet:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func docStringMap(m map[string]any, key string) map[string]string {
	out := make(map[string]string)
	switch v := m[key].(type) {
	case map[string]string:
		for k, s := range v {
			out[k] = s
		}
	case map[string]any:
		for k, e := range v {
			if s, ok := e.(string); ok {
				out[k] = s
			}
		}
	}
	return out
}

// Cache helpers. Every cache failure is treated as a miss; the cache is
// never allowed to fail a repository operation.

func cacheGet[T any](c ports.Cache, ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	b, ok, err := c.Retrieve(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// cacheFresh returns the cached value only when the entry is younger than
// maxAge. cacheGet ignores age, which is what the stale-fallback path wants.
func cacheFresh[T any](c ports.Cache, ctx context.Context, key string, maxAge time.Duration) (*T, bool) {
	if c == nil {
		return nil, false
	}
	expired, err := c.IsExpired(ctx, key, maxAge)
	if err != nil || expired {
		return nil, false
	}
	return cacheGet[T](c, ctx, key)
}

func cacheStoreSilently(c ports.Cache, ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Store(ctx, key, b)
}

func cacheRemove(c ports.Cache, ctx context.Context, keys ...string) {
	if c == nil {
		return
	}
	for _, key := range keys {
		_ = c.Remove(ctx, key)
	}
}

// loadListSingleflight serves a list read through the cache, coalescing
// concurrent misses for the same key into one backend load. When the load
// fails, a stale cached copy is returned as a best-effort fallback.
func loadListSingleflight[T any](c ports.Cache, ctx context.Context, key string, maxAge time.Duration, loader func() ([]T, error)) ([]T, error) {
	if v, ok := cacheFresh[[]T](c, ctx, key, maxAge); ok {
		return *v, nil
	}
	res, err, _ := sf.Do(key, func() (any, error) {
		if v, ok := cacheFresh[[]T](c, ctx, key, maxAge); ok {
			return *v, nil
		}
		list, err := loader()
		if err != nil {
			return nil, err
		}
		cacheStoreSilently(c, ctx, key, list)
		return list, nil
	})
	if err != nil {
		if v, ok := cacheGet[[]T](c, ctx, key); ok {
			return *v, nil
		}
		return nil, err
	}
	list, ok := res.([]T)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight result")
	}
	return list, nil
}

// mapDocs converts a query result into domain values.
func mapDocs[T any](docs []ports.Document, from func(*ports.Document) *T) []*T {
	out := make([]*T, 0, len(docs))
	for i := range docs {
		out = append(out, from(&docs[i]))
	}
	return out
}

// nextCursor returns the id of the last item when the page came back full,
// meaning another page may exist. A short page ends the listing.
func nextCursor[T any](items []*T, limit int, id func(*T) string) string {
	if limit <= 0 || len(items) < limit {
		return ""
	}
	return id(items[len(items)-1])
}

// matchesQuery reports whether any of the fields contains the needle,
// case-insensitively. Search endpoints over-fetch and filter with this.
func matchesQuery(needle string, fields ...string) bool {
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// searchFetchLimit bounds the over-fetch that backs substring search.
const searchFetchLimit = 100

// singleflight group shared by all repositories for coalescing
// cache-miss list loads in-process.
var sf singleflight.Group

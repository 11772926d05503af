package ports

import (
	"context"
	"time"
)

// Cache is the shared TTL cache store every repository reads through.
//
// Staleness is a caller policy, not a store policy: Retrieve never checks
// age, and IsExpired answers "is the entry older than maxAge" without
// returning the value. Keeping the two primitives separate lets a caller
// fall back to a best-effort stale value when a live fetch fails while
// still being able to ask whether the network can be skipped.
//
// The in-memory implementation never fails; the error returns exist so the
// Redis-backed implementation can satisfy the same contract. Callers must
// treat any cache error as a miss, never as a failure of the operation.
type Cache interface {
	// Store inserts or replaces the entry for key, stamping the current time.
	Store(ctx context.Context, key string, value []byte) error
	// Retrieve returns the stored value for key. ok=false if absent.
	Retrieve(ctx context.Context, key string) ([]byte, bool, error)
	// IsExpired reports whether no entry exists for key or the entry is
	// older than maxAge.
	IsExpired(ctx context.Context, key string, maxAge time.Duration) (bool, error)
	// Remove deletes the entry for key; absence is not an error.
	Remove(ctx context.Context, key string) error
	// ClearAll empties the store. Reserved for writes whose blast radius
	// cannot be enumerated key by key.
	ClearAll(ctx context.Context) error
}

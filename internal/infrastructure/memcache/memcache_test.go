package memcache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStoreRetrieve(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, ok, err := s.Retrieve(ctx, "post_1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Store(ctx, "post_1", []byte(`{"id":"1"}`)))

	v, ok, err := s.Retrieve(ctx, "post_1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte(`{"id":"1"}`), v)

	// Repeated retrieves with no intervening write return the same value.
	v2, ok, err := s.Retrieve(ctx, "post_1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, v, v2)
}

func TestIsExpired(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now()
	s.now = func() time.Time { return now }

	// Absent keys are expired.
	expired, err := s.IsExpired(ctx, "user_1", time.Minute)
	require.NoError(t, err)
	require.True(t, expired)

	require.NoError(t, s.Store(ctx, "user_1", []byte("v")))

	expired, err = s.IsExpired(ctx, "user_1", time.Minute)
	require.NoError(t, err)
	require.False(t, expired)

	// Advance past maxAge without any further write.
	now = now.Add(time.Minute + time.Second)
	expired, err = s.IsExpired(ctx, "user_1", time.Minute)
	require.NoError(t, err)
	require.True(t, expired)

	// Retrieve still serves the stale value; staleness is caller policy.
	_, ok, err := s.Retrieve(ctx, "user_1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStoreReplacesTimestamp(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Store(ctx, "k", []byte("a")))
	now = now.Add(50 * time.Second)
	require.NoError(t, s.Store(ctx, "k", []byte("b")))

	expired, err := s.IsExpired(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.False(t, expired)

	v, _, _ := s.Retrieve(ctx, "k")
	require.Equal(t, []byte("b"), v)
}

func TestRemoveAndClearAll(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Store(ctx, "a", []byte("1")))
	require.NoError(t, s.Store(ctx, "b", []byte("2")))

	require.NoError(t, s.Remove(ctx, "a"))
	expired, err := s.IsExpired(ctx, "a", time.Hour)
	require.NoError(t, err)
	require.True(t, expired)

	// Removing a missing key is a no-op.
	require.NoError(t, s.Remove(ctx, "a"))

	require.NoError(t, s.ClearAll(ctx))
	require.Equal(t, 0, s.Len())
	_, ok, _ := s.Retrieve(ctx, "b")
	require.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = s.Store(ctx, "shared", []byte{byte(n)})
				_, _, _ = s.Retrieve(ctx, "shared")
				_, _ = s.IsExpired(ctx, "shared", time.Minute)
				if j%50 == 0 {
					_ = s.Remove(ctx, "shared")
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestCallerOwnsReturnedSlice(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Store(ctx, "k", []byte("abc")))

	v, _, _ := s.Retrieve(ctx, "k")
	v[0] = 'x'

	v2, _, _ := s.Retrieve(ctx, "k")
	require.Equal(t, []byte("abc"), v2)
}

package realtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetReplacesExistingListener(t *testing.T) {
	r := NewRegistry()
	firstCancelled := false
	r.Set("comments_reel_r1", func() { firstCancelled = true })
	require.Equal(t, 1, r.Len())

	r.Set("comments_reel_r1", func() {})
	require.True(t, firstCancelled, "re-subscribing must cancel the previous listener")
	require.Equal(t, 1, r.Len())
}

func TestCancel(t *testing.T) {
	r := NewRegistry()
	cancelled := false
	r.Set("messages_c1", func() { cancelled = true })

	r.Cancel("messages_c1")
	require.True(t, cancelled)
	require.Equal(t, 0, r.Len())

	// Cancelling an unknown key is a no-op.
	r.Cancel("messages_c1")
}

func TestCancelAll(t *testing.T) {
	r := NewRegistry()
	n := 0
	r.Set("a", func() { n++ })
	r.Set("b", func() { n++ })
	r.Set("c", func() { n++ })

	r.CancelAll()
	require.Equal(t, 3, n)
	require.Equal(t, 0, r.Len())
}

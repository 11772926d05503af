package memory

import (
	"context"
	"testing"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/stretchr/testify/require"
)

func TestCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.Create(ctx, "posts", map[string]any{"title": "hello", "is_active": true})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := s.Get(ctx, "posts", id)
	require.NoError(t, err)
	require.Equal(t, "hello", doc.Data["title"])

	require.NoError(t, s.Update(ctx, "posts", id, map[string]any{"title": "bye"}))
	doc, _ = s.Get(ctx, "posts", id)
	require.Equal(t, "bye", doc.Data["title"])
	require.Equal(t, true, doc.Data["is_active"])

	require.NoError(t, s.Delete(ctx, "posts", id))
	doc, err = s.Get(ctx, "posts", id)
	require.NoError(t, err)
	require.Nil(t, doc)
}

func TestGetMissingIsNotError(t *testing.T) {
	doc, err := New().Get(context.Background(), "posts", "nope")
	require.NoError(t, err)
	require.Nil(t, doc)
}

func TestQueryFiltersOrderCursor(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.Create(ctx, "posts", map[string]any{
			"author_id":  "u1",
			"is_active":  i != 3,
			"created_at": base.Add(time.Duration(i) * time.Hour),
			"n":          i,
		})
		require.NoError(t, err)
	}

	docs, err := s.Query(ctx, ports.Query{
		Collection: "posts",
		Filters: []ports.Filter{
			{Field: "author_id", Op: ports.OpEqual, Value: "u1"},
			{Field: "is_active", Op: ports.OpEqual, Value: true},
		},
		OrderBy:    "created_at",
		Descending: true,
	})
	require.NoError(t, err)
	require.Len(t, docs, 4)
	// Newest first; the soft-deleted one (n=3) is filtered out.
	require.Equal(t, 4, docs[0].Data["n"])
	require.Equal(t, 2, docs[1].Data["n"])

	// Cursor resumes after the given doc id.
	page, err := s.Query(ctx, ports.Query{
		Collection: "posts",
		OrderBy:    "created_at",
		Descending: true,
		Limit:      2,
		StartAfter: docs[0].ID,
	})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, 3, page[0].Data["n"])
}

func TestQueryArrayContainsAndIn(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, _ = s.Create(ctx, "statuses", map[string]any{"author_id": "a", "viewed_by": []string{"x", "y"}})
	_, _ = s.Create(ctx, "statuses", map[string]any{"author_id": "b", "viewed_by": []string{"z"}})

	docs, err := s.Query(ctx, ports.Query{
		Collection: "statuses",
		Filters:    []ports.Filter{{Field: "viewed_by", Op: ports.OpArrayContains, Value: "y"}},
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	docs, err = s.Query(ctx, ports.Query{
		Collection: "statuses",
		Filters:    []ports.Filter{{Field: "author_id", Op: ports.OpIn, Value: []string{"a", "b"}}},
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
}

func TestBatchAtomicity(t *testing.T) {
	ctx := context.Background()
	s := New()
	reelID, _ := s.Create(ctx, "reels", map[string]any{"like_count": 0, "liked_by": []string{}})

	// Second op targets a missing document, so the first must not apply.
	err := s.RunBatch(ctx, []ports.BatchOp{
		{Kind: ports.BatchIncrement, Collection: "reels", ID: reelID, Fields: map[string]any{"like_count": 1}},
		{Kind: ports.BatchUpdate, Collection: "reels", ID: "missing", Fields: map[string]any{"x": 1}},
	})
	require.Error(t, err)
	doc, _ := s.Get(ctx, "reels", reelID)
	require.Equal(t, 0, doc.Data["like_count"])

	err = s.RunBatch(ctx, []ports.BatchOp{
		{Kind: ports.BatchIncrement, Collection: "reels", ID: reelID, Fields: map[string]any{"like_count": 1}},
		{Kind: ports.BatchArrayUnion, Collection: "reels", ID: reelID, Fields: map[string]any{"liked_by": []string{"u1"}}},
	})
	require.NoError(t, err)
	doc, _ = s.Get(ctx, "reels", reelID)
	require.Equal(t, float64(1), doc.Data["like_count"])
	require.Len(t, doc.Data["liked_by"].([]any), 1)

	// Union is idempotent, remove undoes it.
	require.NoError(t, s.RunBatch(ctx, []ports.BatchOp{
		{Kind: ports.BatchArrayUnion, Collection: "reels", ID: reelID, Fields: map[string]any{"liked_by": []string{"u1"}}},
	}))
	doc, _ = s.Get(ctx, "reels", reelID)
	require.Len(t, doc.Data["liked_by"].([]any), 1)
	require.NoError(t, s.RunBatch(ctx, []ports.BatchOp{
		{Kind: ports.BatchArrayRemove, Collection: "reels", ID: reelID, Fields: map[string]any{"liked_by": []string{"u1"}}},
	}))
	doc, _ = s.Get(ctx, "reels", reelID)
	require.Len(t, doc.Data["liked_by"].([]any), 0)
}

func TestSubscribeDeliversSnapshots(t *testing.T) {
	ctx := context.Background()
	s := New()

	var snapshots [][]ports.Document
	cancel, err := s.Subscribe(ctx, ports.Query{
		Collection: "messages",
		Filters:    []ports.Filter{{Field: "conversation_id", Op: ports.OpEqual, Value: "c1"}},
	}, func(docs []ports.Document) {
		snapshots = append(snapshots, docs)
	})
	require.NoError(t, err)
	require.Len(t, snapshots, 1) // initial snapshot
	require.Empty(t, snapshots[0])

	_, err = s.Create(ctx, "messages", map[string]any{"conversation_id": "c1", "text": "hi"})
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	require.Len(t, snapshots[1], 1)

	// Writes to other collections do not notify.
	_, _ = s.Create(ctx, "posts", map[string]any{})
	require.Len(t, snapshots, 2)

	cancel()
	_, _ = s.Create(ctx, "messages", map[string]any{"conversation_id": "c1", "text": "again"})
	require.Len(t, snapshots, 2)
}

package repositories

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/post"
	"github.com/craftyard/marketplace-backend/internal/core/domain/reel"
	"github.com/craftyard/marketplace-backend/internal/core/domain/status"
	"github.com/craftyard/marketplace-backend/internal/core/domain/user"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/docstore/memory"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/memcache"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/realtime"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// countingStore wraps a DocumentStore and counts backend reads, so tests
// can assert which reads were served from the cache.
type countingStore struct {
	ports.DocumentStore
	gets    int
	queries int
}

func (c *countingStore) Get(ctx context.Context, collection, id string) (*ports.Document, error) {
	c.gets++
	return c.DocumentStore.Get(ctx, collection, id)
}

func (c *countingStore) Query(ctx context.Context, q ports.Query) ([]ports.Document, error) {
	c.queries++
	return c.DocumentStore.Query(ctx, q)
}

// failingStore returns an error for every read.
type failingStore struct {
	ports.DocumentStore
}

func (f *failingStore) Get(context.Context, string, string) (*ports.Document, error) {
	return nil, errors.New("store down")
}

func (f *failingStore) Query(context.Context, ports.Query) ([]ports.Document, error) {
	return nil, errors.New("store down")
}

func TestUserRepositoryCacheAside(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{DocumentStore: memory.New()}
	cache := memcache.New()
	repo := NewUserRepository(store, cache, time.Minute, testLogger())

	id, err := repo.Create(ctx, &user.User{Username: "ana", DisplayName: "Ana", IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)

	first, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "ana", first.Username)
	require.Equal(t, 1, store.gets)

	// Second read within max age must not touch the backend.
	second, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, first.Username, second.Username)
	require.Equal(t, 1, store.gets)

	// A write invalidates the entry, so the next read goes to the backend.
	first.Bio = "painter"
	require.NoError(t, repo.Update(ctx, first))
	third, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "painter", third.Bio)
	require.Equal(t, 2, store.gets)
}

func TestUserRepositoryMissingIsNotAnError(t *testing.T) {
	repo := NewUserRepository(memory.New(), memcache.New(), time.Minute, testLogger())
	u, err := repo.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, u)
}

func TestUserRepositoryStaleFallback(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	cache := memcache.New()

	id, err := NewUserRepository(mem, cache, time.Minute, testLogger()).
		Create(ctx, &user.User{Username: "ben", IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)

	// Prime the cache through a healthy read, then expire the entry.
	healthy := NewUserRepository(mem, cache, time.Minute, testLogger())
	_, err = healthy.GetByID(ctx, id)
	require.NoError(t, err)

	// Zero max age forces a backend read; the backend is down, so the
	// stale cached copy must be served instead of an error.
	broken := NewUserRepository(&failingStore{DocumentStore: mem}, cache, 0, testLogger())
	u, err := broken.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "ben", u.Username)

	// With nothing cached the failure propagates as a backend error.
	require.NoError(t, cache.ClearAll(ctx))
	_, err = broken.GetByID(ctx, id)
	require.ErrorIs(t, err, apperrors.ErrBackendUnavailable)
}

func TestUserFollowIsAtomicAndInvalidates(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	cache := memcache.New()
	repo := NewUserRepository(mem, cache, time.Minute, testLogger())

	a, err := repo.Create(ctx, &user.User{Username: "a", IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)
	b, err := repo.Create(ctx, &user.User{Username: "b", IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, repo.Follow(ctx, a, b))
	// A repeated follow is a membership no-op.
	require.NoError(t, repo.Follow(ctx, a, b))

	follower, err := repo.GetByID(ctx, a)
	require.NoError(t, err)
	require.Equal(t, []string{b}, follower.Following)
	followee, err := repo.GetByID(ctx, b)
	require.NoError(t, err)
	require.Equal(t, []string{a}, followee.Followers)

	require.NoError(t, repo.Unfollow(ctx, a, b))
	follower, err = repo.GetByID(ctx, a)
	require.NoError(t, err)
	require.Empty(t, follower.Following)
}

func TestPostListPageOnlyFirstPageCached(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{DocumentStore: memory.New()}
	cache := memcache.New()
	repo := NewPostRepository(store, cache, time.Minute, testLogger())

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, &post.Post{
			AuthorID:  "author",
			Kind:      post.KindOffer,
			Title:     "offer",
			IsActive:  true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	page1, cursor, err := repo.ListPage(ctx, 2, "")
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.NotEmpty(t, cursor)
	firstQueries := store.queries

	// The first page replays from the cache.
	_, _, err = repo.ListPage(ctx, 2, "")
	require.NoError(t, err)
	require.Equal(t, firstQueries, store.queries)

	// A cursored page always hits the backend.
	page2, _, err := repo.ListPage(ctx, 2, cursor)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	require.Equal(t, firstQueries+1, store.queries)
	require.NotEqual(t, page1[0].ID, page2[0].ID)
}

func TestPostSoftDeleteHidesFromListings(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(memory.New(), memcache.New(), time.Minute, testLogger())

	id, err := repo.Create(ctx, &post.Post{AuthorID: "a", Kind: post.KindRequest, Title: "gone soon", IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, repo.SoftDelete(ctx, id))

	listed, _, err := repo.ListPage(ctx, 10, "")
	require.NoError(t, err)
	require.Empty(t, listed)

	// Direct lookup still resolves the document.
	p, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.False(t, p.IsActive)
}

func TestReelLikeKeepsCounterWithMembership(t *testing.T) {
	ctx := context.Background()
	repo := NewReelRepository(memory.New(), memcache.New(), realtime.NewRegistry(), time.Minute, testLogger())

	id, err := repo.Create(ctx, &reel.Reel{AuthorID: "a", VideoURL: "v", IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, repo.Like(ctx, id, "u1"))
	require.NoError(t, repo.Like(ctx, id, "u2"))
	rl, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 2, rl.LikeCount)
	require.ElementsMatch(t, []string{"u1", "u2"}, rl.LikedBy)

	require.NoError(t, repo.Unlike(ctx, id, "u1"))
	rl, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, rl.LikeCount)
	require.Equal(t, []string{"u2"}, rl.LikedBy)
}

func TestReelLikeAndUnlikeAreIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewReelRepository(memory.New(), memcache.New(), realtime.NewRegistry(), time.Minute, testLogger())

	id, err := repo.Create(ctx, &reel.Reel{AuthorID: "a", VideoURL: "v", IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)

	// A retried like must not inflate the counter past the membership set.
	require.NoError(t, repo.Like(ctx, id, "u1"))
	require.NoError(t, repo.Like(ctx, id, "u1"))
	rl, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{"u1"}, rl.LikedBy)
	require.Equal(t, 1, rl.LikeCount)

	// Unliking without a prior like must not drive the counter negative.
	require.NoError(t, repo.Unlike(ctx, id, "u2"))
	require.NoError(t, repo.Unlike(ctx, id, "u1"))
	require.NoError(t, repo.Unlike(ctx, id, "u1"))
	rl, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Empty(t, rl.LikedBy)
	require.Equal(t, 0, rl.LikeCount)
}

func TestReelCommentCountersFollowChildWrites(t *testing.T) {
	ctx := context.Background()
	repo := NewReelRepository(memory.New(), memcache.New(), realtime.NewRegistry(), time.Minute, testLogger())

	reelID, err := repo.Create(ctx, &reel.Reel{AuthorID: "a", VideoURL: "v", IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)

	top, err := repo.AddComment(ctx, &reel.Comment{ReelID: reelID, AuthorID: "u1", Text: "nice", CreatedAt: time.Now()})
	require.NoError(t, err)
	_, err = repo.AddComment(ctx, &reel.Comment{ReelID: reelID, AuthorID: "u2", Text: "re", ParentID: top, CreatedAt: time.Now()})
	require.NoError(t, err)

	rl, err := repo.GetByID(ctx, reelID)
	require.NoError(t, err)
	require.Equal(t, 2, rl.CommentCount)

	parent, err := repo.GetComment(ctx, top)
	require.NoError(t, err)
	require.Equal(t, 1, parent.ReplyCount)
}

func TestReelSubscribeReplacesListener(t *testing.T) {
	ctx := context.Background()
	registry := realtime.NewRegistry()
	repo := NewReelRepository(memory.New(), memcache.New(), registry, time.Minute, testLogger())

	reelID, err := repo.Create(ctx, &reel.Reel{AuthorID: "a", VideoURL: "v", IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, repo.SubscribeComments(ctx, reelID, func([]*reel.Comment) {}))
	require.NoError(t, repo.SubscribeComments(ctx, reelID, func([]*reel.Comment) {}))
	require.Equal(t, 1, registry.Len())

	repo.UnsubscribeComments(reelID)
	require.Equal(t, 0, registry.Len())
}

func TestTrendingReelsOrderedByLikes(t *testing.T) {
	ctx := context.Background()
	repo := NewReelRepository(memory.New(), memcache.New(), realtime.NewRegistry(), time.Minute, testLogger())

	quiet, err := repo.Create(ctx, &reel.Reel{AuthorID: "a", VideoURL: "v1", IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)
	popular, err := repo.Create(ctx, &reel.Reel{AuthorID: "b", VideoURL: "v2", IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, repo.Like(ctx, popular, "u1"))
	require.NoError(t, repo.Like(ctx, popular, "u2"))
	require.NoError(t, repo.Like(ctx, quiet, "u3"))

	trending, err := repo.Trending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, trending, 2)
	require.Equal(t, popular, trending[0].ID)
}

func TestFollowingFeedBypassesCache(t *testing.T) {
	ctx := context.Background()
	repo := NewStatusRepository(memory.New(), memcache.New(), time.Hour, testLogger())

	now := time.Now()
	_, err := repo.Create(ctx, &status.Status{AuthorID: "a", MediaURL: "m1", IsActive: true, CreatedAt: now, ExpiresAt: now.Add(24 * time.Hour)})
	require.NoError(t, err)

	feed, err := repo.ListForAuthors(ctx, []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, feed, 1)

	// The feed is per caller and never cached, so a status posted after a
	// prior read shows up immediately even within the list max age.
	_, err = repo.Create(ctx, &status.Status{AuthorID: "b", MediaURL: "m2", IsActive: true, CreatedAt: now.Add(time.Second), ExpiresAt: now.Add(24 * time.Hour)})
	require.NoError(t, err)
	feed, err = repo.ListForAuthors(ctx, []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, feed, 2)
}

func TestStatusExpiryCleanup(t *testing.T) {
	ctx := context.Background()
	repo := NewStatusRepository(memory.New(), memcache.New(), time.Minute, testLogger())

	now := time.Now()
	_, err := repo.Create(ctx, &status.Status{AuthorID: "a", MediaURL: "m1", IsActive: true, CreatedAt: now.Add(-48 * time.Hour), ExpiresAt: now.Add(-24 * time.Hour)})
	require.NoError(t, err)
	fresh, err := repo.Create(ctx, &status.Status{AuthorID: "a", MediaURL: "m2", IsActive: true, CreatedAt: now, ExpiresAt: now.Add(24 * time.Hour)})
	require.NoError(t, err)

	removed, err := repo.DeleteExpiredBefore(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	remaining, err := repo.ListByAuthor(ctx, "a")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, fresh, remaining[0].ID)
}

func TestStatusListForAuthorsChunksInFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewStatusRepository(memory.New(), memcache.New(), time.Minute, testLogger())

	now := time.Now()
	authors := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		author := string(rune('a'+i%26)) + "-author"
		authors = append(authors, author)
		_, err := repo.Create(ctx, &status.Status{AuthorID: author, MediaURL: "m", IsActive: true, CreatedAt: now.Add(time.Duration(i) * time.Second), ExpiresAt: now.Add(24 * time.Hour)})
		require.NoError(t, err)
	}

	all, err := repo.ListForAuthors(ctx, authors)
	require.NoError(t, err)
	require.Len(t, all, 25)
	// Newest first across chunk boundaries.
	require.True(t, all[0].CreatedAt.After(all[len(all)-1].CreatedAt))
}

func TestProfileImageChangeFlushesCache(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	cache := memcache.New()
	users := NewUserRepository(mem, cache, time.Minute, testLogger())
	posts := NewPostRepository(mem, cache, time.Minute, testLogger())

	uid, err := users.Create(ctx, &user.User{Username: "carl", IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)
	_, err = posts.Create(ctx, &post.Post{AuthorID: uid, Kind: post.KindOffer, Title: "t", IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)

	// Warm a few entries, then change the image.
	_, err = users.GetByID(ctx, uid)
	require.NoError(t, err)
	_, _, err = posts.ListPage(ctx, 10, "")
	require.NoError(t, err)
	require.NotZero(t, cache.Len())

	require.NoError(t, posts.UpdateAuthorImage(ctx, uid, "https://img/new.png"))
	require.NoError(t, users.SetProfileImage(ctx, uid, "https://img/new.png"))
	require.Zero(t, cache.Len())

	listed, _, err := posts.ListPage(ctx, 10, "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "https://img/new.png", listed[0].AuthorImage)
}

func TestCacheKeysRoundTripThroughInvalidation(t *testing.T) {
	// The invalidation path must spell exactly the key the read path
	// stored. A stale post list after an update would mean they diverged.
	ctx := context.Background()
	repo := NewPostRepository(memory.New(), memcache.New(), time.Hour, testLogger())

	id, err := repo.Create(ctx, &post.Post{AuthorID: "a", Kind: post.KindOffer, Title: "before", IsActive: true, CreatedAt: time.Now()})
	require.NoError(t, err)

	listed, _, err := repo.ListPage(ctx, 10, "")
	require.NoError(t, err)
	require.Equal(t, "before", listed[0].Title)

	p, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	p.Title = "after"
	require.NoError(t, repo.Update(ctx, p))

	listed, _, err = repo.ListPage(ctx, 10, "")
	require.NoError(t, err)
	require.Equal(t, "after", listed[0].Title)
}

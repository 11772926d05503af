package repositories

import (
	"context"
	"slices"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/cachekey"
	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/reel"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/realtime"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReelRepository implements ports.ReelRepository over the document store.
// Likes and comments adjust the denormalized counters on the parent
// document in the same atomic batch as the child write, so the counters
// can never drift from the children.
type ReelRepository struct {
	store    ports.DocumentStore
	cache    ports.Cache
	registry *realtime.Registry
	maxAge   time.Duration
	logger   *logrus.Logger
}

// NewReelRepository creates a new reel repository.
func NewReelRepository(store ports.DocumentStore, cache ports.Cache, registry *realtime.Registry, maxAge time.Duration, logger *logrus.Logger) ports.ReelRepository {
	return &ReelRepository{store: store, cache: cache, registry: registry, maxAge: maxAge, logger: logger}
}

func reelToDoc(r *reel.Reel) map[string]any {
	return map[string]any{
		"author_id":     r.AuthorID,
		"author_name":   r.AuthorName,
		"author_image":  r.AuthorImage,
		"video_url":     r.VideoURL,
		"thumbnail_url": r.ThumbnailURL,
		"caption":       r.Caption,
		"liked_by":      ports.StringSet(r.LikedBy),
		"like_count":    r.LikeCount,
		"comment_count": r.CommentCount,
		"is_active":     r.IsActive,
		"created_at":    encodeTime(r.CreatedAt),
	}
}

func reelFromDoc(doc *ports.Document) *reel.Reel {
	m := doc.Data
	return &reel.Reel{
		ID:           doc.ID,
		AuthorID:     docString(m, "author_id"),
		AuthorName:   docString(m, "author_name"),
		AuthorImage:  docString(m, "author_image"),
		VideoURL:     docString(m, "video_url"),
		ThumbnailURL: docString(m, "thumbnail_url"),
		Caption:      docString(m, "caption"),
		LikedBy:      docStrings(m, "liked_by"),
		LikeCount:    docInt(m, "like_count"),
		CommentCount: docInt(m, "comment_count"),
		IsActive:     docBool(m, "is_active"),
		CreatedAt:    decodeTime(m["created_at"]),
	}
}

func commentToDoc(c *reel.Comment) map[string]any {
	return map[string]any{
		"reel_id":      c.ReelID,
		"author_id":    c.AuthorID,
		"author_name":  c.AuthorName,
		"author_image": c.AuthorImage,
		"text":         c.Text,
		"parent_id":    c.ParentID,
		"reply_count":  c.ReplyCount,
		"created_at":   encodeTime(c.CreatedAt),
	}
}

func commentFromDoc(doc *ports.Document) *reel.Comment {
	m := doc.Data
	return &reel.Comment{
		ID:          doc.ID,
		ReelID:      docString(m, "reel_id"),
		AuthorID:    docString(m, "author_id"),
		AuthorName:  docString(m, "author_name"),
		AuthorImage: docString(m, "author_image"),
		Text:        docString(m, "text"),
		ParentID:    docString(m, "parent_id"),
		ReplyCount:  docInt(m, "reply_count"),
		CreatedAt:   decodeTime(m["created_at"]),
	}
}

// Create writes a new reel document.
func (r *ReelRepository) Create(ctx context.Context, rl *reel.Reel) (string, error) {
	id, err := r.store.Create(ctx, colReels, reelToDoc(rl))
	if err != nil {
		return "", apperrors.Backend("create reel", err)
	}
	rl.ID = id
	cacheRemove(r.cache, ctx,
		cachekey.ReelsPage1(),
		cachekey.ReelsOfUser(rl.AuthorID),
		cachekey.TrendingReels,
	)
	r.logger.WithFields(logrus.Fields{"reel_id": id, "author_id": rl.AuthorID}).Info("reel created")
	return id, nil
}

// GetByID returns the reel or (nil, nil) when the id does not resolve.
func (r *ReelRepository) GetByID(ctx context.Context, id string) (*reel.Reel, error) {
	key := cachekey.Reel(id)
	if v, ok := cacheFresh[reel.Reel](r.cache, ctx, key, r.maxAge); ok {
		return v, nil
	}
	doc, err := r.store.Get(ctx, colReels, id)
	if err != nil {
		if v, ok := cacheGet[reel.Reel](r.cache, ctx, key); ok {
			return v, nil
		}
		return nil, apperrors.Backend("get reel", err)
	}
	if doc == nil {
		return nil, nil
	}
	rl := reelFromDoc(doc)
	cacheStoreSilently(r.cache, ctx, key, rl)
	return rl, nil
}

// SoftDelete flips is_active off so listings exclude the reel.
func (r *ReelRepository) SoftDelete(ctx context.Context, id string) error {
	doc, err := r.store.Get(ctx, colReels, id)
	if err != nil {
		return apperrors.Backend("get reel", err)
	}
	if doc == nil {
		return apperrors.NotFoundf("reel %s", id)
	}
	if err := r.store.Update(ctx, colReels, id, map[string]any{"is_active": false}); err != nil {
		return apperrors.Backend("soft delete reel", err)
	}
	cacheRemove(r.cache, ctx,
		cachekey.Reel(id),
		cachekey.ReelsPage1(),
		cachekey.ReelsOfUser(docString(doc.Data, "author_id")),
		cachekey.TrendingReels,
	)
	return nil
}

// ListPage returns one page of active reels, newest first. Only the first
// page is served through the cache.
func (r *ReelRepository) ListPage(ctx context.Context, limit int, cursor string) ([]*reel.Reel, string, error) {
	q := ports.Query{
		Collection: colReels,
		Filters:    []ports.Filter{{Field: "is_active", Op: ports.OpEqual, Value: true}},
		OrderBy:    "created_at",
		Descending: true,
		Limit:      limit,
		StartAfter: cursor,
	}
	if cursor == "" {
		reels, err := loadListSingleflight(r.cache, ctx, cachekey.ReelsPage1(), r.maxAge, func() ([]*reel.Reel, error) {
			docs, err := r.store.Query(ctx, q)
			if err != nil {
				return nil, apperrors.Backend("list reels", err)
			}
			return mapDocs(docs, reelFromDoc), nil
		})
		if err != nil {
			return nil, "", err
		}
		return reels, nextCursor(reels, limit, func(rl *reel.Reel) string { return rl.ID }), nil
	}
	docs, err := r.store.Query(ctx, q)
	if err != nil {
		return nil, "", apperrors.Backend("list reels", err)
	}
	reels := mapDocs(docs, reelFromDoc)
	return reels, nextCursor(reels, limit, func(rl *reel.Reel) string { return rl.ID }), nil
}

// ListByAuthor returns the author's active reels, newest first.
func (r *ReelRepository) ListByAuthor(ctx context.Context, authorID string) ([]*reel.Reel, error) {
	return loadListSingleflight(r.cache, ctx, cachekey.ReelsOfUser(authorID), r.maxAge, func() ([]*reel.Reel, error) {
		docs, err := r.store.Query(ctx, ports.Query{
			Collection: colReels,
			Filters: []ports.Filter{
				{Field: "author_id", Op: ports.OpEqual, Value: authorID},
				{Field: "is_active", Op: ports.OpEqual, Value: true},
			},
			OrderBy:    "created_at",
			Descending: true,
		})
		if err != nil {
			return nil, apperrors.Backend("list reels by author", err)
		}
		return mapDocs(docs, reelFromDoc), nil
	})
}

// Trending returns the active reels with the highest like counts.
func (r *ReelRepository) Trending(ctx context.Context, limit int) ([]*reel.Reel, error) {
	return loadListSingleflight(r.cache, ctx, cachekey.TrendingReels, r.maxAge, func() ([]*reel.Reel, error) {
		docs, err := r.store.Query(ctx, ports.Query{
			Collection: colReels,
			Filters:    []ports.Filter{{Field: "is_active", Op: ports.OpEqual, Value: true}},
			OrderBy:    "like_count",
			Descending: true,
			Limit:      limit,
		})
		if err != nil {
			return nil, apperrors.Backend("trending reels", err)
		}
		return mapDocs(docs, reelFromDoc), nil
	})
}

// likedBy reads the authoritative membership set straight from the
// store. The counter only moves when membership actually changes, so a
// retried like or unlike cannot drift like_count away from liked_by.
func (r *ReelRepository) likedBy(ctx context.Context, reelID string) ([]string, error) {
	doc, err := r.store.Get(ctx, colReels, reelID)
	if err != nil {
		return nil, apperrors.Backend("get reel", err)
	}
	if doc == nil {
		return nil, apperrors.NotFoundf("reel %s", reelID)
	}
	return docStrings(doc.Data, "liked_by"), nil
}

// Like records the like and bumps the counter in one atomic batch.
// Liking a reel the caller already liked is a no-op.
func (r *ReelRepository) Like(ctx context.Context, reelID, userID string) error {
	liked, err := r.likedBy(ctx, reelID)
	if err != nil {
		return err
	}
	if slices.Contains(liked, userID) {
		return nil
	}
	err = r.store.RunBatch(ctx, []ports.BatchOp{
		{Kind: ports.BatchArrayUnion, Collection: colReels, ID: reelID, Fields: map[string]any{"liked_by": []string{userID}}},
		{Kind: ports.BatchIncrement, Collection: colReels, ID: reelID, Fields: map[string]any{"like_count": 1}},
	})
	if err != nil {
		return apperrors.Backend("like reel", err)
	}
	cacheRemove(r.cache, ctx, cachekey.Reel(reelID), cachekey.ReelsPage1(), cachekey.TrendingReels)
	return nil
}

// Unlike removes the like and drops the counter in one atomic batch.
// Unliking a reel the caller never liked is a no-op.
func (r *ReelRepository) Unlike(ctx context.Context, reelID, userID string) error {
	liked, err := r.likedBy(ctx, reelID)
	if err != nil {
		return err
	}
	if !slices.Contains(liked, userID) {
		return nil
	}
	err = r.store.RunBatch(ctx, []ports.BatchOp{
		{Kind: ports.BatchArrayRemove, Collection: colReels, ID: reelID, Fields: map[string]any{"liked_by": []string{userID}}},
		{Kind: ports.BatchIncrement, Collection: colReels, ID: reelID, Fields: map[string]any{"like_count": -1}},
	})
	if err != nil {
		return apperrors.Backend("unlike reel", err)
	}
	cacheRemove(r.cache, ctx, cachekey.Reel(reelID), cachekey.ReelsPage1(), cachekey.TrendingReels)
	return nil
}

// AddComment writes the comment and bumps the parent counters in one
// atomic batch. A reply also bumps reply_count on its parent comment.
func (r *ReelRepository) AddComment(ctx context.Context, c *reel.Comment) (string, error) {
	id := uuid.NewString()
	c.ID = id
	ops := []ports.BatchOp{
		{Kind: ports.BatchSet, Collection: colReelComments, ID: id, Fields: commentToDoc(c)},
		{Kind: ports.BatchIncrement, Collection: colReels, ID: c.ReelID, Fields: map[string]any{"comment_count": 1}},
	}
	if c.ParentID != "" {
		ops = append(ops, ports.BatchOp{
			Kind:       ports.BatchIncrement,
			Collection: colReelComments,
			ID:         c.ParentID,
			Fields:     map[string]any{"reply_count": 1},
		})
	}
	if err := r.store.RunBatch(ctx, ops); err != nil {
		return "", apperrors.Backend("add comment", err)
	}
	cacheRemove(r.cache, ctx,
		cachekey.CommentsOfReel(c.ReelID),
		cachekey.Reel(c.ReelID),
		cachekey.ReelsPage1(),
	)
	return id, nil
}

// DeleteComment removes the comment and reverses the counters it added.
func (r *ReelRepository) DeleteComment(ctx context.Context, c *reel.Comment) error {
	ops := []ports.BatchOp{
		{Kind: ports.BatchDelete, Collection: colReelComments, ID: c.ID},
		{Kind: ports.BatchIncrement, Collection: colReels, ID: c.ReelID, Fields: map[string]any{"comment_count": -1}},
	}
	if c.ParentID != "" {
		ops = append(ops, ports.BatchOp{
			Kind:       ports.BatchIncrement,
			Collection: colReelComments,
			ID:         c.ParentID,
			Fields:     map[string]any{"reply_count": -1},
		})
	}
	if err := r.store.RunBatch(ctx, ops); err != nil {
		return apperrors.Backend("delete comment", err)
	}
	cacheRemove(r.cache, ctx,
		cachekey.CommentsOfReel(c.ReelID),
		cachekey.Reel(c.ReelID),
		cachekey.ReelsPage1(),
	)
	return nil
}

// GetComment returns the comment or (nil, nil) when the id does not resolve.
func (r *ReelRepository) GetComment(ctx context.Context, id string) (*reel.Comment, error) {
	doc, err := r.store.Get(ctx, colReelComments, id)
	if err != nil {
		return nil, apperrors.Backend("get comment", err)
	}
	if doc == nil {
		return nil, nil
	}
	return commentFromDoc(doc), nil
}

// ListComments returns the reel's comments, oldest first.
func (r *ReelRepository) ListComments(ctx context.Context, reelID string) ([]*reel.Comment, error) {
	return loadListSingleflight(r.cache, ctx, cachekey.CommentsOfReel(reelID), r.maxAge, func() ([]*reel.Comment, error) {
		docs, err := r.store.Query(ctx, ports.Query{
			Collection: colReelComments,
			Filters:    []ports.Filter{{Field: "reel_id", Op: ports.OpEqual, Value: reelID}},
			OrderBy:    "created_at",
		})
		if err != nil {
			return nil, apperrors.Backend("list comments", err)
		}
		return mapDocs(docs, commentFromDoc), nil
	})
}

// SubscribeComments installs a live listener for the reel's comments.
// Re-subscribing to the same reel replaces the previous listener. Each
// snapshot also refreshes the cached comment list.
func (r *ReelRepository) SubscribeComments(ctx context.Context, reelID string, fn func([]*reel.Comment)) error {
	cancel, err := r.store.Subscribe(ctx, ports.Query{
		Collection: colReelComments,
		Filters:    []ports.Filter{{Field: "reel_id", Op: ports.OpEqual, Value: reelID}},
		OrderBy:    "created_at",
	}, func(docs []ports.Document) {
		comments := mapDocs(docs, commentFromDoc)
		cacheStoreSilently(r.cache, ctx, cachekey.CommentsOfReel(reelID), comments)
		fn(comments)
	})
	if err != nil {
		return apperrors.Backend("subscribe comments", err)
	}
	r.registry.Set(cachekey.CommentsOfReel(reelID), cancel)
	return nil
}

// UnsubscribeComments stops the live listener for the reel, if any.
func (r *ReelRepository) UnsubscribeComments(reelID string) {
	r.registry.Cancel(cachekey.CommentsOfReel(reelID))
}

// UpdateAuthorImage rewrites the denormalized author image on every reel
// and comment by the author.
func (r *ReelRepository) UpdateAuthorImage(ctx context.Context, authorID, url string) error {
	for _, col := range []string{colReels, colReelComments} {
		docs, err := r.store.Query(ctx, ports.Query{
			Collection: col,
			Filters:    []ports.Filter{{Field: "author_id", Op: ports.OpEqual, Value: authorID}},
		})
		if err != nil {
			return apperrors.Backend("list by author", err)
		}
		if len(docs) == 0 {
			continue
		}
		ops := make([]ports.BatchOp, 0, len(docs))
		for _, doc := range docs {
			ops = append(ops, ports.BatchOp{
				Kind:       ports.BatchUpdate,
				Collection: col,
				ID:         doc.ID,
				Fields:     map[string]any{"author_image": url},
			})
		}
		if err := r.store.RunBatch(ctx, ops); err != nil {
			return apperrors.Backend("update reel author image", err)
		}
	}
	return nil
}

var _ ports.ReelRepository = (*ReelRepository)(nil)

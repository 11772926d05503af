package repositories

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/cachekey"
	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/post"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// PostRepository implements ports.PostRepository over the document store
// with cache-aside reads.
type PostRepository struct {
	store  ports.DocumentStore
	cache  ports.Cache
	maxAge time.Duration
	logger *logrus.Logger
}

// NewPostRepository creates a new post repository.
func NewPostRepository(store ports.DocumentStore, cache ports.Cache, maxAge time.Duration, logger *logrus.Logger) ports.PostRepository {
	return &PostRepository{store: store, cache: cache, maxAge: maxAge, logger: logger}
}

func postToDoc(p *post.Post) map[string]any {
	return map[string]any{
		"author_id":    p.AuthorID,
		"author_name":  p.AuthorName,
		"author_image": p.AuthorImage,
		"kind":         string(p.Kind),
		"title":        p.Title,
		"description":  p.Description,
		"category":     p.Category,
		"price":        p.Price,
		"image_urls":   p.ImageURLs,
		"location":     p.Location,
		"is_active":    p.IsActive,
		"created_at":   encodeTime(p.CreatedAt),
		"updated_at":   encodeTime(p.UpdatedAt),
	}
}

func postFromDoc(doc *ports.Document) *post.Post {
	m := doc.Data
	return &post.Post{
		ID:          doc.ID,
		AuthorID:    docString(m, "author_id"),
		AuthorName:  docString(m, "author_name"),
		AuthorImage: docString(m, "author_image"),
		Kind:        post.Kind(docString(m, "kind")),
		Title:       docString(m, "title"),
		Description: docString(m, "description"),
		Category:    docString(m, "category"),
		Price:       docFloat(m, "price"),
		ImageURLs:   docStrings(m, "image_urls"),
		Location:    docString(m, "location"),
		IsActive:    docBool(m, "is_active"),
		CreatedAt:   decodeTime(m["created_at"]),
		UpdatedAt:   decodeTime(m["updated_at"]),
	}
}

// Create writes a new post document.
func (r *PostRepository) Create(ctx context.Context, p *post.Post) (string, error) {
	id, err := r.store.Create(ctx, colPosts, postToDoc(p))
	if err != nil {
		return "", apperrors.Backend("create post", err)
	}
	p.ID = id
	cacheRemove(r.cache, ctx, cachekey.PostsPage1(), cachekey.PostsOfUser(p.AuthorID))
	r.logger.WithFields(logrus.Fields{"post_id": id, "author_id": p.AuthorID}).Info("post created")
	return id, nil
}

// GetByID returns the post or (nil, nil) when the id does not resolve.
// Soft-deleted posts still resolve here; only listings exclude them.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*post.Post, error) {
	key := cachekey.Post(id)
	if v, ok := cacheFresh[post.Post](r.cache, ctx, key, r.maxAge); ok {
		return v, nil
	}
	doc, err := r.store.Get(ctx, colPosts, id)
	if err != nil {
		if v, ok := cacheGet[post.Post](r.cache, ctx, key); ok {
			return v, nil
		}
		return nil, apperrors.Backend("get post", err)
	}
	if doc == nil {
		return nil, nil
	}
	p := postFromDoc(doc)
	cacheStoreSilently(r.cache, ctx, key, p)
	return p, nil
}

// Update replaces the post document.
func (r *PostRepository) Update(ctx context.Context, p *post.Post) error {
	p.UpdatedAt = time.Now()
	if err := r.store.Set(ctx, colPosts, p.ID, postToDoc(p)); err != nil {
		return apperrors.Backend("update post", err)
	}
	cacheRemove(r.cache, ctx,
		cachekey.Post(p.ID),
		cachekey.PostsPage1(),
		cachekey.PostsOfUser(p.AuthorID),
	)
	return nil
}

// SoftDelete flips is_active off so listings exclude the post while the
// document stays resolvable.
func (r *PostRepository) SoftDelete(ctx context.Context, id string) error {
	doc, err := r.store.Get(ctx, colPosts, id)
	if err != nil {
		return apperrors.Backend("get post", err)
	}
	if doc == nil {
		return apperrors.NotFoundf("post %s", id)
	}
	err = r.store.Update(ctx, colPosts, id, map[string]any{
		"is_active":  false,
		"updated_at": encodeTime(time.Now()),
	})
	if err != nil {
		return apperrors.Backend("soft delete post", err)
	}
	cacheRemove(r.cache, ctx,
		cachekey.Post(id),
		cachekey.PostsPage1(),
		cachekey.PostsOfUser(docString(doc.Data, "author_id")),
	)
	return nil
}

// ListPage returns one page of active posts, newest first. Only the first
// page is served through the cache.
func (r *PostRepository) ListPage(ctx context.Context, limit int, cursor string) ([]*post.Post, string, error) {
	q := ports.Query{
		Collection: colPosts,
		Filters:    []ports.Filter{{Field: "is_active", Op: ports.OpEqual, Value: true}},
		OrderBy:    "created_at",
		Descending: true,
		Limit:      limit,
		StartAfter: cursor,
	}
	if cursor == "" {
		posts, err := loadListSingleflight(r.cache, ctx, cachekey.PostsPage1(), r.maxAge, func() ([]*post.Post, error) {
			docs, err := r.store.Query(ctx, q)
			if err != nil {
				return nil, apperrors.Backend("list posts", err)
			}
			return mapDocs(docs, postFromDoc), nil
		})
		if err != nil {
			return nil, "", err
		}
		return posts, nextCursor(posts, limit, func(p *post.Post) string { return p.ID }), nil
	}
	docs, err := r.store.Query(ctx, q)
	if err != nil {
		return nil, "", apperrors.Backend("list posts", err)
	}
	posts := mapDocs(docs, postFromDoc)
	return posts, nextCursor(posts, limit, func(p *post.Post) string { return p.ID }), nil
}

// ListByAuthor returns the author's active posts, newest first.
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*post.Post, error) {
	return loadListSingleflight(r.cache, ctx, cachekey.PostsOfUser(authorID), r.maxAge, func() ([]*post.Post, error) {
		docs, err := r.store.Query(ctx, ports.Query{
			Collection: colPosts,
			Filters: []ports.Filter{
				{Field: "author_id", Op: ports.OpEqual, Value: authorID},
				{Field: "is_active", Op: ports.OpEqual, Value: true},
			},
			OrderBy:    "created_at",
			Descending: true,
		})
		if err != nil {
			return nil, apperrors.Backend("list posts by author", err)
		}
		return mapDocs(docs, postFromDoc), nil
	})
}

// Search over-fetches recent posts and filters by case-insensitive
// substring on title, description and category.
func (r *PostRepository) Search(ctx context.Context, query string, limit int) ([]*post.Post, error) {
	docs, err := r.store.Query(ctx, ports.Query{
		Collection: colPosts,
		Filters:    []ports.Filter{{Field: "is_active", Op: ports.OpEqual, Value: true}},
		OrderBy:    "created_at",
		Descending: true,
		Limit:      searchFetchLimit,
	})
	if err != nil {
		return nil, apperrors.Backend("search posts", err)
	}
	out := make([]*post.Post, 0, limit)
	for _, doc := range docs {
		p := postFromDoc(&doc)
		if matchesQuery(query, p.Title, p.Description, p.Category) {
			out = append(out, p)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// UpdateAuthorImage rewrites the denormalized author image on every post
// by the author. Cache invalidation for this fan-out is handled by the
// flush in UserRepository.SetProfileImage.
func (r *PostRepository) UpdateAuthorImage(ctx context.Context, authorID, url string) error {
	docs, err := r.store.Query(ctx, ports.Query{
		Collection: colPosts,
		Filters:    []ports.Filter{{Field: "author_id", Op: ports.OpEqual, Value: authorID}},
	})
	if err != nil {
		return apperrors.Backend("list posts by author", err)
	}
	if len(docs) == 0 {
		return nil
	}
	ops := make([]ports.BatchOp, 0, len(docs))
	for _, doc := range docs {
		ops = append(ops, ports.BatchOp{
			Kind:       ports.BatchUpdate,
			Collection: colPosts,
			ID:         doc.ID,
			Fields:     map[string]any{"author_image": url},
		})
	}
	if err := r.store.RunBatch(ctx, ops); err != nil {
		return apperrors.Backend("update post author image", err)
	}
	return nil
}

var _ ports.PostRepository = (*PostRepository)(nil)

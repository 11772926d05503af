package repositories

import (
	"context"
	"sort"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/cachekey"
	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/status"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// inFilterChunk caps how many values one "in" filter may carry; larger
// author sets are queried in chunks and merged.
const inFilterChunk = 10

// StatusRepository implements ports.StatusRepository over the document
// store. Expiry is a read-time concern of the service; the repository only
// filters soft deletion.
type StatusRepository struct {
	store  ports.DocumentStore
	cache  ports.Cache
	maxAge time.Duration
	logger *logrus.Logger
}

// NewStatusRepository creates a new status repository.
func NewStatusRepository(store ports.DocumentStore, cache ports.Cache, maxAge time.Duration, logger *logrus.Logger) ports.StatusRepository {
	return &StatusRepository{store: store, cache: cache, maxAge: maxAge, logger: logger}
}

func statusToDoc(s *status.Status) map[string]any {
	return map[string]any{
		"author_id":    s.AuthorID,
		"author_name":  s.AuthorName,
		"author_image": s.AuthorImage,
		"media_url":    s.MediaURL,
		"caption":      s.Caption,
		"viewed_by":    ports.StringSet(s.ViewedBy),
		"is_active":    s.IsActive,
		"created_at":   encodeTime(s.CreatedAt),
		"expires_at":   encodeTime(s.ExpiresAt),
	}
}

func statusFromDoc(doc *ports.Document) *status.Status {
	m := doc.Data
	return &status.Status{
		ID:          doc.ID,
		AuthorID:    docString(m, "author_id"),
		AuthorName:  docString(m, "author_name"),
		AuthorImage: docString(m, "author_image"),
		MediaURL:    docString(m, "media_url"),
		Caption:     docString(m, "caption"),
		ViewedBy:    docStrings(m, "viewed_by"),
		IsActive:    docBool(m, "is_active"),
		CreatedAt:   decodeTime(m["created_at"]),
		ExpiresAt:   decodeTime(m["expires_at"]),
	}
}

// Create writes a new status document.
func (r *StatusRepository) Create(ctx context.Context, s *status.Status) (string, error) {
	id, err := r.store.Create(ctx, colStatuses, statusToDoc(s))
	if err != nil {
		return "", apperrors.Backend("create status", err)
	}
	s.ID = id
	cacheRemove(r.cache, ctx, cachekey.StatusesOfUser(s.AuthorID))
	r.logger.WithFields(logrus.Fields{"status_id": id, "author_id": s.AuthorID}).Info("status created")
	return id, nil
}

// GetByID returns the status or (nil, nil) when the id does not resolve.
func (r *StatusRepository) GetByID(ctx context.Context, id string) (*status.Status, error) {
	doc, err := r.store.Get(ctx, colStatuses, id)
	if err != nil {
		return nil, apperrors.Backend("get status", err)
	}
	if doc == nil {
		return nil, nil
	}
	return statusFromDoc(doc), nil
}

// SoftDelete flips is_active off so listings exclude the status.
func (r *StatusRepository) SoftDelete(ctx context.Context, id string) error {
	doc, err := r.store.Get(ctx, colStatuses, id)
	if err != nil {
		return apperrors.Backend("get status", err)
	}
	if doc == nil {
		return apperrors.NotFoundf("status %s", id)
	}
	if err := r.store.Update(ctx, colStatuses, id, map[string]any{"is_active": false}); err != nil {
		return apperrors.Backend("soft delete status", err)
	}
	cacheRemove(r.cache, ctx,
		cachekey.Status(id),
		cachekey.StatusesOfUser(docString(doc.Data, "author_id")),
	)
	return nil
}

// ListByAuthor returns the author's non-deleted statuses, newest first.
func (r *StatusRepository) ListByAuthor(ctx context.Context, authorID string) ([]*status.Status, error) {
	return loadListSingleflight(r.cache, ctx, cachekey.StatusesOfUser(authorID), r.maxAge, func() ([]*status.Status, error) {
		docs, err := r.store.Query(ctx, ports.Query{
			Collection: colStatuses,
			Filters: []ports.Filter{
				{Field: "author_id", Op: ports.OpEqual, Value: authorID},
				{Field: "is_active", Op: ports.OpEqual, Value: true},
			},
			OrderBy:    "created_at",
			Descending: true,
		})
		if err != nil {
			return nil, apperrors.Backend("list statuses by author", err)
		}
		return mapDocs(docs, statusFromDoc), nil
	})
}

// ListForAuthors returns the non-deleted statuses of the given authors,
// newest first. The author set is chunked to respect the "in" filter cap.
// The result is per caller and never cached, so a follower always sees a
// just-posted status.
func (r *StatusRepository) ListForAuthors(ctx context.Context, authorIDs []string) ([]*status.Status, error) {
	var all []*status.Status
	for start := 0; start < len(authorIDs); start += inFilterChunk {
		end := start + inFilterChunk
		if end > len(authorIDs) {
			end = len(authorIDs)
		}
		chunk := make([]any, 0, end-start)
		for _, id := range authorIDs[start:end] {
			chunk = append(chunk, id)
		}
		docs, err := r.store.Query(ctx, ports.Query{
			Collection: colStatuses,
			Filters: []ports.Filter{
				{Field: "author_id", Op: ports.OpIn, Value: chunk},
				{Field: "is_active", Op: ports.OpEqual, Value: true},
			},
		})
		if err != nil {
			return nil, apperrors.Backend("list statuses for authors", err)
		}
		all = append(all, mapDocs(docs, statusFromDoc)...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

// MarkViewed records the viewer on the status.
func (r *StatusRepository) MarkViewed(ctx context.Context, statusID, viewerID string) error {
	err := r.store.RunBatch(ctx, []ports.BatchOp{
		{Kind: ports.BatchArrayUnion, Collection: colStatuses, ID: statusID, Fields: map[string]any{"viewed_by": []string{viewerID}}},
	})
	if err != nil {
		return apperrors.Backend("mark status viewed", err)
	}
	cacheRemove(r.cache, ctx, cachekey.Status(statusID))
	return nil
}

// DeleteExpiredBefore hard-deletes statuses whose expiry passed before
// cutoff. Expired statuses are already invisible to readers; this batch
// exists only for storage hygiene.
func (r *StatusRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error) {
	docs, err := r.store.Query(ctx, ports.Query{
		Collection: colStatuses,
		Filters:    []ports.Filter{{Field: "expires_at", Op: ports.OpLess, Value: encodeTime(cutoff)}},
	})
	if err != nil {
		return 0, apperrors.Backend("list expired statuses", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}
	authors := make(map[string]struct{})
	ops := make([]ports.BatchOp, 0, len(docs))
	for _, doc := range docs {
		authors[docString(doc.Data, "author_id")] = struct{}{}
		ops = append(ops, ports.BatchOp{Kind: ports.BatchDelete, Collection: colStatuses, ID: doc.ID})
	}
	if err := r.store.RunBatch(ctx, ops); err != nil {
		return 0, apperrors.Backend("delete expired statuses", err)
	}
	keys := make([]string, 0, len(authors))
	for author := range authors {
		keys = append(keys, cachekey.StatusesOfUser(author))
	}
	cacheRemove(r.cache, ctx, keys...)
	r.logger.WithField("count", len(docs)).Info("expired statuses removed")
	return len(docs), nil
}

var _ ports.StatusRepository = (*StatusRepository)(nil)

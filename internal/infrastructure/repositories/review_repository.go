package repositories

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/cachekey"
	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/review"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// ReviewRepository implements ports.ReviewRepository over the document
// store. Reviews are hard deleted.
type ReviewRepository struct {
	store  ports.DocumentStore
	cache  ports.Cache
	maxAge time.Duration
	logger *logrus.Logger
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(store ports.DocumentStore, cache ports.Cache, maxAge time.Duration, logger *logrus.Logger) ports.ReviewRepository {
	return &ReviewRepository{store: store, cache: cache, maxAge: maxAge, logger: logger}
}

func reviewToDoc(rv *review.Review) map[string]any {
	return map[string]any{
		"reviewer_id":    rv.ReviewerID,
		"reviewer_name":  rv.ReviewerName,
		"reviewer_image": rv.ReviewerImage,
		"reviewee_id":    rv.RevieweeID,
		"rating":         rv.Rating,
		"text":           rv.Text,
		"created_at":     encodeTime(rv.CreatedAt),
		"updated_at":     encodeTime(rv.UpdatedAt),
	}
}

func reviewFromDoc(doc *ports.Document) *review.Review {
	m := doc.Data
	return &review.Review{
		ID:            doc.ID,
		ReviewerID:    docString(m, "reviewer_id"),
		ReviewerName:  docString(m, "reviewer_name"),
		ReviewerImage: docString(m, "reviewer_image"),
		RevieweeID:    docString(m, "reviewee_id"),
		Rating:        docInt(m, "rating"),
		Text:          docString(m, "text"),
		CreatedAt:     decodeTime(m["created_at"]),
		UpdatedAt:     decodeTime(m["updated_at"]),
	}
}

// Create writes a new review document.
func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) (string, error) {
	id, err := r.store.Create(ctx, colReviews, reviewToDoc(rv))
	if err != nil {
		return "", apperrors.Backend("create review", err)
	}
	rv.ID = id
	cacheRemove(r.cache, ctx, cachekey.ReviewsOfUser(rv.RevieweeID))
	r.logger.WithFields(logrus.Fields{"review_id": id, "reviewee_id": rv.RevieweeID}).Info("review created")
	return id, nil
}

// GetByID returns the review or (nil, nil) when the id does not resolve.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*review.Review, error) {
	doc, err := r.store.Get(ctx, colReviews, id)
	if err != nil {
		return nil, apperrors.Backend("get review", err)
	}
	if doc == nil {
		return nil, nil
	}
	return reviewFromDoc(doc), nil
}

// Update replaces the review document.
func (r *ReviewRepository) Update(ctx context.Context, rv *review.Review) error {
	rv.UpdatedAt = time.Now()
	if err := r.store.Set(ctx, colReviews, rv.ID, reviewToDoc(rv)); err != nil {
		return apperrors.Backend("update review", err)
	}
	cacheRemove(r.cache, ctx, cachekey.Review(rv.ID), cachekey.ReviewsOfUser(rv.RevieweeID))
	return nil
}

// Delete removes the review document for good.
func (r *ReviewRepository) Delete(ctx context.Context, rv *review.Review) error {
	if err := r.store.Delete(ctx, colReviews, rv.ID); err != nil {
		return apperrors.Backend("delete review", err)
	}
	cacheRemove(r.cache, ctx, cachekey.Review(rv.ID), cachekey.ReviewsOfUser(rv.RevieweeID))
	return nil
}

// ListForUser returns every review left for the user, newest first. The
// full list is what the rating aggregate is recomputed from, so no limit.
func (r *ReviewRepository) ListForUser(ctx context.Context, revieweeID string) ([]*review.Review, error) {
	return loadListSingleflight(r.cache, ctx, cachekey.ReviewsOfUser(revieweeID), r.maxAge, func() ([]*review.Review, error) {
		docs, err := r.store.Query(ctx, ports.Query{
			Collection: colReviews,
			Filters:    []ports.Filter{{Field: "reviewee_id", Op: ports.OpEqual, Value: revieweeID}},
			OrderBy:    "created_at",
			Descending: true,
		})
		if err != nil {
			return nil, apperrors.Backend("list reviews", err)
		}
		return mapDocs(docs, reviewFromDoc), nil
	})
}

// CountByPair returns how many reviews reviewer has left for reviewee.
func (r *ReviewRepository) CountByPair(ctx context.Context, reviewerID, revieweeID string) (int, error) {
	docs, err := r.store.Query(ctx, ports.Query{
		Collection: colReviews,
		Filters: []ports.Filter{
			{Field: "reviewer_id", Op: ports.OpEqual, Value: reviewerID},
			{Field: "reviewee_id", Op: ports.OpEqual, Value: revieweeID},
		},
	})
	if err != nil {
		return 0, apperrors.Backend("count reviews", err)
	}
	return len(docs), nil
}

// UpdateReviewerImage rewrites the denormalized reviewer image on every
// review left by the reviewer.
func (r *ReviewRepository) UpdateReviewerImage(ctx context.Context, reviewerID, url string) error {
	docs, err := r.store.Query(ctx, ports.Query{
		Collection: colReviews,
		Filters:    []ports.Filter{{Field: "reviewer_id", Op: ports.OpEqual, Value: reviewerID}},
	})
	if err != nil {
		return apperrors.Backend("list reviews by reviewer", err)
	}
	if len(docs) == 0 {
		return nil
	}
	ops := make([]ports.BatchOp, 0, len(docs))
	for _, doc := range docs {
		ops = append(ops, ports.BatchOp{
			Kind:       ports.BatchUpdate,
			Collection: colReviews,
			ID:         doc.ID,
			Fields:     map[string]any{"reviewer_image": url},
		})
	}
	if err := r.store.RunBatch(ctx, ops); err != nil {
		return apperrors.Backend("update reviewer image", err)
	}
	return nil
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)

package ports

import (
	"context"

	"github.com/craftyard/marketplace-backend/internal/core/domain/review"
)

// ReviewRepository wraps the reviews collection. Reviews are hard deleted.
type ReviewRepository interface {
	Create(ctx context.Context, r *review.Review) (string, error)
	GetByID(ctx context.Context, id string) (*review.Review, error)
	Update(ctx context.Context, r *review.Review) error
	Delete(ctx context.Context, r *review.Review) error
	ListForUser(ctx context.Context, revieweeID string) ([]*review.Review, error)
	CountByPair(ctx context.Context, reviewerID, revieweeID string) (int, error)
	UpdateReviewerImage(ctx context.Context, reviewerID, url string) error
}

// ReviewService is the rating facade. Every write recomputes the
// reviewee's aggregate from a full scan of their reviews.
type ReviewService interface {
	CreateReview(ctx context.Context, req *review.CreateReviewRequest) (*review.Review, error)
	UpdateReview(ctx context.Context, id string, req *review.UpdateReviewRequest) (*review.Review, error)
	DeleteReview(ctx context.Context, id string) error
	GetUserReviews(ctx context.Context, userID string) ([]*review.Review, error)
}

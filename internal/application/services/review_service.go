package services

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/identity"
	"github.com/craftyard/marketplace-backend/internal/core/domain/notification"
	"github.com/craftyard/marketplace-backend/internal/core/domain/review"
	"github.com/craftyard/marketplace-backend/internal/core/domain/user"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// ReviewService implements ports.ReviewService. After every write the
// reviewee's aggregate is recomputed from a full scan of their reviews,
// never adjusted incrementally, so a drifted counter heals on the next
// write.
type ReviewService struct {
	repo          ports.ReviewRepository
	userRepo      ports.UserRepository
	notifications ports.NotificationService
	validate      *validator.Validate
	logger        *logrus.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(repo ports.ReviewRepository, userRepo ports.UserRepository, notifications ports.NotificationService, validate *validator.Validate, logger *logrus.Logger) ports.ReviewService {
	return &ReviewService{repo: repo, userRepo: userRepo, notifications: notifications, validate: validate, logger: logger}
}

// CreateReview creates a review by the caller for another user, subject to
// the self-review ban and the per-pair cap.
func (s *ReviewService) CreateReview(ctx context.Context, req *review.CreateReviewRequest) (*review.Review, error) {
	u, err := caller(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validationf("%v", err)
	}
	if req.RevieweeID == u.ID {
		return nil, apperrors.Unauthorizedf("users cannot review themselves")
	}
	reviewee, err := s.userRepo.GetByID(ctx, req.RevieweeID)
	if err != nil {
		return nil, err
	}
	if reviewee == nil {
		return nil, apperrors.NotFoundf("user %s", req.RevieweeID)
	}
	count, err := s.repo.CountByPair(ctx, u.ID, req.RevieweeID)
	if err != nil {
		return nil, err
	}
	if count >= review.MaxPerPair {
		return nil, apperrors.Validationf("at most %d reviews per reviewer and reviewee", review.MaxPerPair)
	}
	now := time.Now()
	rv := &review.Review{
		ReviewerID:    u.ID,
		ReviewerName:  u.DisplayName,
		ReviewerImage: u.ProfileImage,
		RevieweeID:    req.RevieweeID,
		Rating:        req.Rating,
		Text:          req.Text,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	s.recomputeStats(ctx, req.RevieweeID)
	s.notifications.Notify(ctx, &notification.Notification{
		RecipientID: req.RevieweeID,
		ActorID:     u.ID,
		ActorName:   u.DisplayName,
		Kind:        notification.KindReview,
		Title:       "New review",
		Body:        u.DisplayName + " left you a review",
		Payload:     map[string]string{"review_id": rv.ID},
	})
	return rv, nil
}

// UpdateReview applies the non-nil fields of req to the caller's review.
func (s *ReviewService) UpdateReview(ctx context.Context, id string, req *review.UpdateReviewRequest) (*review.Review, error) {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, apperrors.NotFoundf("review %s", id)
	}
	if rv.ReviewerID != callerID {
		return nil, apperrors.Unauthorizedf("review %s belongs to another user", id)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validationf("%v", err)
	}
	if req.Rating != nil {
		rv.Rating = *req.Rating
	}
	if req.Text != nil {
		rv.Text = *req.Text
	}
	if err := s.repo.Update(ctx, rv); err != nil {
		return nil, err
	}
	s.recomputeStats(ctx, rv.RevieweeID)
	return rv, nil
}

// DeleteReview hard-deletes the caller's review.
func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return apperrors.ErrUnauthenticated
	}
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rv == nil {
		return apperrors.NotFoundf("review %s", id)
	}
	if rv.ReviewerID != callerID {
		return apperrors.Unauthorizedf("review %s belongs to another user", id)
	}
	if err := s.repo.Delete(ctx, rv); err != nil {
		return err
	}
	s.recomputeStats(ctx, rv.RevieweeID)
	return nil
}

// GetUserReviews returns every review left for the user.
func (s *ReviewService) GetUserReviews(ctx context.Context, userID string) ([]*review.Review, error) {
	return s.repo.ListForUser(ctx, userID)
}

// recomputeStats rebuilds the reviewee's rating aggregate from the full
// review list and writes it onto the user document. Failures are logged,
// not returned: the review write already committed.
func (s *ReviewService) recomputeStats(ctx context.Context, revieweeID string) {
	reviews, err := s.repo.ListForUser(ctx, revieweeID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", revieweeID).Warn("rating recompute scan failed")
		return
	}
	stats := user.RatingStats{ReviewCount: len(reviews)}
	if len(reviews) > 0 {
		sum := 0
		for _, rv := range reviews {
			sum += rv.Rating
		}
		stats.AverageRating = float64(sum) / float64(len(reviews))
	}
	if err := s.userRepo.UpdateRatingStats(ctx, revieweeID, stats); err != nil {
		s.logger.WithError(err).WithField("user_id", revieweeID).Warn("rating aggregate write failed")
	}
}

var _ ports.ReviewService = (*ReviewService)(nil)

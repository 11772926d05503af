package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	impl "github.com/craftyard/marketplace-backend/internal/application/services"
	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/identity"
	"github.com/craftyard/marketplace-backend/internal/core/domain/notification"
	"github.com/craftyard/marketplace-backend/internal/core/domain/review"
	"github.com/craftyard/marketplace-backend/internal/core/domain/user"
	tmocks "github.com/craftyard/marketplace-backend/test/mocks"
)

func callerCtx(id string) context.Context {
	return identity.WithCallerID(context.Background(), id)
}

func knownUsers(ids ...string) *tmocks.UserRepositoryMock {
	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}
	return &tmocks.UserRepositoryMock{GetByIDFn: func(ctx context.Context, id string) (*user.User, error) {
		if !set[id] {
			return nil, nil
		}
		return &user.User{ID: id, DisplayName: "u-" + id, IsActive: true}, nil
	}}
}

func TestCreateReview_SelfReviewRejected(t *testing.T) {
	svc := impl.NewReviewService(&tmocks.ReviewRepositoryMock{}, knownUsers("alice"), &tmocks.NotificationServiceMock{}, validator.New(), logrus.New())
	_, err := svc.CreateReview(callerCtx("alice"), &review.CreateReviewRequest{RevieweeID: "alice", Rating: 5})
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestCreateReview_PerPairCapEnforced(t *testing.T) {
	repo := &tmocks.ReviewRepositoryMock{CountByPairFn: func(ctx context.Context, reviewerID, revieweeID string) (int, error) {
		return review.MaxPerPair, nil
	}}
	svc := impl.NewReviewService(repo, knownUsers("alice", "bob"), &tmocks.NotificationServiceMock{}, validator.New(), logrus.New())
	_, err := svc.CreateReview(callerCtx("alice"), &review.CreateReviewRequest{RevieweeID: "bob", Rating: 4})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateReview_RecomputesAggregateFromFullScan(t *testing.T) {
	stored := []*review.Review{
		{ID: "r1", RevieweeID: "bob", Rating: 5},
		{ID: "r2", RevieweeID: "bob", Rating: 2},
	}
	repo := &tmocks.ReviewRepositoryMock{
		ListForUserFn: func(ctx context.Context, revieweeID string) ([]*review.Review, error) { return stored, nil },
	}
	var gotStats user.RatingStats
	users := knownUsers("alice", "bob")
	users.UpdateRatingStatsFn = func(ctx context.Context, userID string, stats user.RatingStats) error {
		require.Equal(t, "bob", userID)
		gotStats = stats
		return nil
	}
	svc := impl.NewReviewService(repo, users, &tmocks.NotificationServiceMock{}, validator.New(), logrus.New())
	_, err := svc.CreateReview(callerCtx("alice"), &review.CreateReviewRequest{RevieweeID: "bob", Rating: 5})
	require.NoError(t, err)
	require.Equal(t, 2, gotStats.ReviewCount)
	require.InDelta(t, 3.5, gotStats.AverageRating, 0.001)
}

func TestCreateReview_AggregateFailureDoesNotFailWrite(t *testing.T) {
	users := knownUsers("alice", "bob")
	users.UpdateRatingStatsFn = func(ctx context.Context, userID string, stats user.RatingStats) error {
		return errors.New("store down")
	}
	notified := false
	notifications := &tmocks.NotificationServiceMock{NotifyFn: func(ctx context.Context, n *notification.Notification) {
		notified = true
		require.Equal(t, notification.KindReview, n.Kind)
		require.Equal(t, "bob", n.RecipientID)
	}}
	svc := impl.NewReviewService(&tmocks.ReviewRepositoryMock{}, users, notifications, validator.New(), logrus.New())
	r, err := svc.CreateReview(callerCtx("alice"), &review.CreateReviewRequest{RevieweeID: "bob", Rating: 5, Text: "great"})
	require.NoError(t, err)
	require.NotNil(t, r)
	require.True(t, notified)
}

func TestUpdateReview_OwnershipEnforced(t *testing.T) {
	repo := &tmocks.ReviewRepositoryMock{GetByIDFn: func(ctx context.Context, id string) (*review.Review, error) {
		return &review.Review{ID: id, ReviewerID: "alice", RevieweeID: "bob", Rating: 3}, nil
	}}
	svc := impl.NewReviewService(repo, knownUsers("alice", "bob", "mallory"), &tmocks.NotificationServiceMock{}, validator.New(), logrus.New())
	rating := 1
	_, err := svc.UpdateReview(callerCtx("mallory"), "r1", &review.UpdateReviewRequest{Rating: &rating})
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestDeleteReview_MissingReviewIsNotFound(t *testing.T) {
	svc := impl.NewReviewService(&tmocks.ReviewRepositoryMock{}, knownUsers("alice"), &tmocks.NotificationServiceMock{}, validator.New(), logrus.New())
	err := svc.DeleteReview(callerCtx("alice"), "ghost")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

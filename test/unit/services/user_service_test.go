package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	impl "github.com/craftyard/marketplace-backend/internal/application/services"
	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/notification"
	"github.com/craftyard/marketplace-backend/internal/core/domain/user"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	tmocks "github.com/craftyard/marketplace-backend/test/mocks"
)

func newUserService(users *tmocks.UserRepositoryMock, posts *tmocks.PostRepositoryMock, reels *tmocks.ReelRepositoryMock, reviews *tmocks.ReviewRepositoryMock, messages *tmocks.MessageRepositoryMock, blobs *tmocks.BlobStorageMock, notifications *tmocks.NotificationServiceMock) ports.UserService {
	return impl.NewUserService(users, posts, reels, reviews, messages, blobs, notifications, logrus.New())
}

func TestFollow_SelfFollowRejected(t *testing.T) {
	svc := newUserService(knownUsers("alice"), &tmocks.PostRepositoryMock{}, &tmocks.ReelRepositoryMock{}, &tmocks.ReviewRepositoryMock{}, &tmocks.MessageRepositoryMock{}, &tmocks.BlobStorageMock{}, &tmocks.NotificationServiceMock{})
	err := svc.Follow(callerCtx("alice"), "alice")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestFollow_NotifiesTarget(t *testing.T) {
	users := knownUsers("alice", "bob")
	followed := false
	users.FollowFn = func(ctx context.Context, followerID, followeeID string) error {
		require.Equal(t, "alice", followerID)
		require.Equal(t, "bob", followeeID)
		followed = true
		return nil
	}
	var got *notification.Notification
	notifications := &tmocks.NotificationServiceMock{NotifyFn: func(ctx context.Context, n *notification.Notification) { got = n }}
	svc := newUserService(users, &tmocks.PostRepositoryMock{}, &tmocks.ReelRepositoryMock{}, &tmocks.ReviewRepositoryMock{}, &tmocks.MessageRepositoryMock{}, &tmocks.BlobStorageMock{}, notifications)
	require.NoError(t, svc.Follow(callerCtx("alice"), "bob"))
	require.True(t, followed)
	require.NotNil(t, got)
	require.Equal(t, notification.KindFollow, got.Kind)
	require.Equal(t, "bob", got.RecipientID)
}

func TestFollow_UnknownTargetIsNotFound(t *testing.T) {
	svc := newUserService(knownUsers("alice"), &tmocks.PostRepositoryMock{}, &tmocks.ReelRepositoryMock{}, &tmocks.ReviewRepositoryMock{}, &tmocks.MessageRepositoryMock{}, &tmocks.BlobStorageMock{}, &tmocks.NotificationServiceMock{})
	err := svc.Follow(callerCtx("alice"), "ghost")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateProfileImage_FanOutBeforeUserDocument(t *testing.T) {
	var order []string
	users := knownUsers("alice")
	users.SetProfileImageFn = func(ctx context.Context, userID, url string) error {
		order = append(order, "user")
		return nil
	}
	posts := &tmocks.PostRepositoryMock{UpdateAuthorImageFn: func(ctx context.Context, authorID, url string) error {
		order = append(order, "posts")
		return nil
	}}
	reels := &tmocks.ReelRepositoryMock{UpdateAuthorImageFn: func(ctx context.Context, authorID, url string) error {
		order = append(order, "reels")
		return nil
	}}
	reviews := &tmocks.ReviewRepositoryMock{UpdateReviewerImageFn: func(ctx context.Context, reviewerID, url string) error {
		order = append(order, "reviews")
		return nil
	}}
	messages := &tmocks.MessageRepositoryMock{UpdateParticipantImageFn: func(ctx context.Context, userID, url string) error {
		order = append(order, "messages")
		return nil
	}}
	svc := newUserService(users, posts, reels, reviews, messages, &tmocks.BlobStorageMock{}, &tmocks.NotificationServiceMock{})

	url, err := svc.UpdateProfileImage(callerCtx("alice"), []byte{0x1}, "jpeg")
	require.NoError(t, err)
	require.NotEmpty(t, url)
	require.Equal(t, []string{"posts", "reels", "reviews", "messages", "user"}, order)
}

func TestUpdateProfileImage_EmptyPayloadRejected(t *testing.T) {
	svc := newUserService(knownUsers("alice"), &tmocks.PostRepositoryMock{}, &tmocks.ReelRepositoryMock{}, &tmocks.ReviewRepositoryMock{}, &tmocks.MessageRepositoryMock{}, &tmocks.BlobStorageMock{}, &tmocks.NotificationServiceMock{})
	_, err := svc.UpdateProfileImage(callerCtx("alice"), nil, "jpeg")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSearchUsers_EmptyQueryReturnsNothing(t *testing.T) {
	users := knownUsers("alice")
	users.SearchFn = func(ctx context.Context, query string, limit int) ([]*user.User, error) {
		t.Fatal("search should not reach the repository for an empty query")
		return nil, nil
	}
	svc := newUserService(users, &tmocks.PostRepositoryMock{}, &tmocks.ReelRepositoryMock{}, &tmocks.ReviewRepositoryMock{}, &tmocks.MessageRepositoryMock{}, &tmocks.BlobStorageMock{}, &tmocks.NotificationServiceMock{})
	got, err := svc.SearchUsers(callerCtx("alice"), "", 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGetReviewStats_DegradesToZeroOnError(t *testing.T) {
	users := knownUsers("alice")
	users.GetByIDFn = func(ctx context.Context, id string) (*user.User, error) {
		return nil, errors.New("store down")
	}
	svc := newUserService(users, &tmocks.PostRepositoryMock{}, &tmocks.ReelRepositoryMock{}, &tmocks.ReviewRepositoryMock{}, &tmocks.MessageRepositoryMock{}, &tmocks.BlobStorageMock{}, &tmocks.NotificationServiceMock{})
	stats := svc.GetReviewStats(context.Background(), "alice")
	require.Zero(t, stats.ReviewCount)
	require.Zero(t, stats.AverageRating)
}

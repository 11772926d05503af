package services_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	impl "github.com/craftyard/marketplace-backend/internal/application/services"
	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/notification"
	"github.com/craftyard/marketplace-backend/internal/core/domain/reel"
	tmocks "github.com/craftyard/marketplace-backend/test/mocks"
)

func reelRepoWith(r *reel.Reel) *tmocks.ReelRepositoryMock {
	return &tmocks.ReelRepositoryMock{GetByIDFn: func(ctx context.Context, id string) (*reel.Reel, error) {
		if r != nil && r.ID == id {
			return r, nil
		}
		return nil, nil
	}}
}

func TestLikeReel_NotifiesAuthor(t *testing.T) {
	repo := reelRepoWith(&reel.Reel{ID: "r1", AuthorID: "bob", IsActive: true})
	var got *notification.Notification
	notifications := &tmocks.NotificationServiceMock{NotifyFn: func(ctx context.Context, n *notification.Notification) { got = n }}
	svc := impl.NewReelService(repo, knownUsers("alice", "bob"), notifications, validator.New(), logrus.New())
	require.NoError(t, svc.LikeReel(callerCtx("alice"), "r1"))
	require.NotNil(t, got)
	require.Equal(t, notification.KindLike, got.Kind)
	require.Equal(t, "bob", got.RecipientID)
}

func TestLikeReel_OwnReelDoesNotNotify(t *testing.T) {
	repo := reelRepoWith(&reel.Reel{ID: "r1", AuthorID: "alice", IsActive: true})
	notifications := &tmocks.NotificationServiceMock{NotifyFn: func(ctx context.Context, n *notification.Notification) {
		t.Fatal("liking your own reel must not notify")
	}}
	svc := impl.NewReelService(repo, knownUsers("alice"), notifications, validator.New(), logrus.New())
	require.NoError(t, svc.LikeReel(callerCtx("alice"), "r1"))
}

func TestCommentOnReel_ReplyParentMustBelongToSameReel(t *testing.T) {
	repo := reelRepoWith(&reel.Reel{ID: "r1", AuthorID: "bob", IsActive: true})
	repo.GetCommentFn = func(ctx context.Context, id string) (*reel.Comment, error) {
		return &reel.Comment{ID: id, ReelID: "other-reel", AuthorID: "carol"}, nil
	}
	svc := impl.NewReelService(repo, knownUsers("alice", "bob"), &tmocks.NotificationServiceMock{}, validator.New(), logrus.New())
	_, err := svc.CommentOnReel(callerCtx("alice"), "r1", &reel.CreateCommentRequest{Text: "nice", ParentID: "c9"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteComment_AuthorOnly(t *testing.T) {
	repo := &tmocks.ReelRepositoryMock{GetCommentFn: func(ctx context.Context, id string) (*reel.Comment, error) {
		return &reel.Comment{ID: id, ReelID: "r1", AuthorID: "bob"}, nil
	}}
	svc := impl.NewReelService(repo, knownUsers("alice"), &tmocks.NotificationServiceMock{}, validator.New(), logrus.New())
	err := svc.DeleteComment(callerCtx("alice"), "c1")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGetReel_MissingIsNotFound(t *testing.T) {
	svc := impl.NewReelService(reelRepoWith(nil), knownUsers("alice"), &tmocks.NotificationServiceMock{}, validator.New(), logrus.New())
	_, err := svc.GetReel(context.Background(), "ghost")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteReel_OwnershipEnforced(t *testing.T) {
	repo := reelRepoWith(&reel.Reel{ID: "r1", AuthorID: "bob", IsActive: true})
	svc := impl.NewReelService(repo, knownUsers("alice", "bob"), &tmocks.NotificationServiceMock{}, validator.New(), logrus.New())
	err := svc.DeleteReel(callerCtx("alice"), "r1")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

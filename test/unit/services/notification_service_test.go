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
	tmocks "github.com/craftyard/marketplace-backend/test/mocks"
)

func TestNotify_WriteFailureSwallowedAndPushSkipped(t *testing.T) {
	repo := &tmocks.NotificationRepositoryMock{CreateFn: func(ctx context.Context, n *notification.Notification) (string, error) {
		return "", errors.New("store down")
	}}
	push := &tmocks.PushSenderMock{SendFn: func(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
		t.Fatal("push must not run when the write failed")
		return nil
	}}
	svc := impl.NewNotificationService(repo, knownUsers("bob"), push, logrus.New())
	svc.Notify(context.Background(), &notification.Notification{RecipientID: "bob", Kind: notification.KindLike})
}

func TestNotify_NoDeviceTokenSkipsPush(t *testing.T) {
	push := &tmocks.PushSenderMock{SendFn: func(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
		t.Fatal("push must not run without a device token")
		return nil
	}}
	svc := impl.NewNotificationService(&tmocks.NotificationRepositoryMock{}, knownUsers("bob"), push, logrus.New())
	svc.Notify(context.Background(), &notification.Notification{RecipientID: "bob", Kind: notification.KindLike})
}

func TestNotify_PushCarriesKindInPayload(t *testing.T) {
	users := &tmocks.UserRepositoryMock{GetByIDFn: func(ctx context.Context, id string) (*user.User, error) {
		return &user.User{ID: id, DeviceToken: "tok-1", IsActive: true}, nil
	}}
	var gotToken string
	var gotData map[string]string
	push := &tmocks.PushSenderMock{SendFn: func(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
		gotToken = deviceToken
		gotData = data
		return nil
	}}
	svc := impl.NewNotificationService(&tmocks.NotificationRepositoryMock{}, users, push, logrus.New())
	svc.Notify(context.Background(), &notification.Notification{
		RecipientID: "bob",
		Kind:        notification.KindComment,
		Payload:     map[string]string{"reel_id": "r1"},
	})
	require.Equal(t, "tok-1", gotToken)
	require.Equal(t, "comment", gotData["kind"])
	require.Equal(t, "r1", gotData["reel_id"])
}

func TestList_RequiresIdentity(t *testing.T) {
	svc := impl.NewNotificationService(&tmocks.NotificationRepositoryMock{}, knownUsers(), &tmocks.PushSenderMock{}, logrus.New())
	_, err := svc.List(context.Background(), 20)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

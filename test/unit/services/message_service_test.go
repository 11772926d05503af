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
	"github.com/craftyard/marketplace-backend/internal/core/domain/message"
	"github.com/craftyard/marketplace-backend/internal/core/domain/notification"
	tmocks "github.com/craftyard/marketplace-backend/test/mocks"
)

func TestSendMessage_SelfMessageRejected(t *testing.T) {
	svc := impl.NewMessageService(&tmocks.MessageRepositoryMock{}, knownUsers("alice"), &tmocks.NotificationServiceMock{}, validator.New(), logrus.New())
	_, err := svc.SendMessage(callerCtx("alice"), &message.SendMessageRequest{RecipientID: "alice", Text: "hi"})
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSendMessage_CreatesConversationOnFirstContact(t *testing.T) {
	var createdConv *message.Conversation
	repo := &tmocks.MessageRepositoryMock{
		CreateConversationFn: func(ctx context.Context, c *message.Conversation) (string, error) {
			createdConv = c
			c.ID = "conv-1"
			return c.ID, nil
		},
	}
	svc := impl.NewMessageService(repo, knownUsers("alice", "bob"), &tmocks.NotificationServiceMock{}, validator.New(), logrus.New())
	m, err := svc.SendMessage(callerCtx("alice"), &message.SendMessageRequest{RecipientID: "bob", Text: "hi"})
	require.NoError(t, err)
	require.NotNil(t, createdConv)
	require.ElementsMatch(t, []string{"alice", "bob"}, createdConv.ParticipantIDs)
	require.Equal(t, "u-alice", createdConv.ParticipantNames["alice"])
	require.Equal(t, "conv-1", m.ConversationID)
}

func TestSendMessage_ReusesExistingConversation(t *testing.T) {
	repo := &tmocks.MessageRepositoryMock{
		FindConversationFn: func(ctx context.Context, userA, userB string) (*message.Conversation, error) {
			return &message.Conversation{ID: "conv-9", ParticipantIDs: []string{userA, userB}}, nil
		},
		CreateConversationFn: func(ctx context.Context, c *message.Conversation) (string, error) {
			t.Fatal("an existing conversation must be reused")
			return "", nil
		},
	}
	svc := impl.NewMessageService(repo, knownUsers("alice", "bob"), &tmocks.NotificationServiceMock{}, validator.New(), logrus.New())
	m, err := svc.SendMessage(callerCtx("alice"), &message.SendMessageRequest{RecipientID: "bob", Text: "hi again"})
	require.NoError(t, err)
	require.Equal(t, "conv-9", m.ConversationID)
}

func TestSendMessage_PreviewFailureDoesNotFailSend(t *testing.T) {
	var preview string
	repo := &tmocks.MessageRepositoryMock{
		FindConversationFn: func(ctx context.Context, userA, userB string) (*message.Conversation, error) {
			return &message.Conversation{ID: "conv-1", ParticipantIDs: []string{userA, userB}}, nil
		},
		SetLastMessageFn: func(ctx context.Context, conversationID, text string) error {
			preview = text
			return errors.New("store down")
		},
	}
	var notified *notification.Notification
	notifications := &tmocks.NotificationServiceMock{NotifyFn: func(ctx context.Context, n *notification.Notification) { notified = n }}
	svc := impl.NewMessageService(repo, knownUsers("alice", "bob"), notifications, validator.New(), logrus.New())
	m, err := svc.SendMessage(callerCtx("alice"), &message.SendMessageRequest{RecipientID: "bob", MediaURL: "https://cdn.example/p.jpg"})
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "Sent an attachment", preview)
	require.NotNil(t, notified)
	require.Equal(t, notification.KindMessage, notified.Kind)
}

func TestGetMessages_NonParticipantDenied(t *testing.T) {
	repo := &tmocks.MessageRepositoryMock{GetConversationFn: func(ctx context.Context, id string) (*message.Conversation, error) {
		return &message.Conversation{ID: id, ParticipantIDs: []string{"bob", "carol"}}, nil
	}}
	svc := impl.NewMessageService(repo, knownUsers("alice"), &tmocks.NotificationServiceMock{}, validator.New(), logrus.New())
	_, _, err := svc.GetMessages(callerCtx("alice"), "conv-1", 50, "")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestDeleteMessage_SenderOnly(t *testing.T) {
	repo := &tmocks.MessageRepositoryMock{GetMessageFn: func(ctx context.Context, id string) (*message.Message, error) {
		return &message.Message{ID: id, ConversationID: "conv-1", SenderID: "bob", IsActive: true}, nil
	}}
	svc := impl.NewMessageService(repo, knownUsers("alice"), &tmocks.NotificationServiceMock{}, validator.New(), logrus.New())
	err := svc.DeleteMessage(callerCtx("alice"), "m1")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

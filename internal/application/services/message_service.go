package services

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/identity"
	"github.com/craftyard/marketplace-backend/internal/core/domain/message"
	"github.com/craftyard/marketplace-backend/internal/core/domain/notification"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// MessageService implements ports.MessageService. Sending finds or creates
// the two-party conversation, writes the message and refreshes the inbox
// preview denormalized onto the conversation.
type MessageService struct {
	repo          ports.MessageRepository
	userRepo      ports.UserRepository
	notifications ports.NotificationService
	validate      *validator.Validate
	logger        *logrus.Logger
}

// NewMessageService creates a new message service.
func NewMessageService(repo ports.MessageRepository, userRepo ports.UserRepository, notifications ports.NotificationService, validate *validator.Validate, logger *logrus.Logger) ports.MessageService {
	return &MessageService{repo: repo, userRepo: userRepo, notifications: notifications, validate: validate, logger: logger}
}

// SendMessage delivers a message from the caller to the recipient.
func (s *MessageService) SendMessage(ctx context.Context, req *message.SendMessageRequest) (*message.Message, error) {
	sender, err := caller(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validationf("%v", err)
	}
	if req.RecipientID == sender.ID {
		return nil, apperrors.Unauthorizedf("users cannot message themselves")
	}
	recipient, err := s.userRepo.GetByID(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, apperrors.NotFoundf("user %s", req.RecipientID)
	}

	conv, err := s.repo.FindConversation(ctx, sender.ID, req.RecipientID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		conv = &message.Conversation{
			ParticipantIDs: []string{sender.ID, recipient.ID},
			ParticipantNames: map[string]string{
				sender.ID:    sender.DisplayName,
				recipient.ID: recipient.DisplayName,
			},
			ParticipantImages: map[string]string{
				sender.ID:    sender.ProfileImage,
				recipient.ID: recipient.ProfileImage,
			},
			CreatedAt: time.Now(),
		}
		if _, err := s.repo.CreateConversation(ctx, conv); err != nil {
			return nil, err
		}
	}

	m := &message.Message{
		ConversationID: conv.ID,
		SenderID:       sender.ID,
		Text:           req.Text,
		MediaURL:       req.MediaURL,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	if _, err := s.repo.CreateMessage(ctx, m); err != nil {
		return nil, err
	}
	preview := m.Text
	if preview == "" {
		preview = "Sent an attachment"
	}
	if err := s.repo.SetLastMessage(ctx, conv.ID, preview); err != nil {
		// The message itself is committed; a stale preview self-heals on
		// the next send.
		s.logger.WithError(err).WithField("conversation_id", conv.ID).Warn("inbox preview update failed")
	}
	s.notifications.Notify(ctx, &notification.Notification{
		RecipientID: recipient.ID,
		ActorID:     sender.ID,
		ActorName:   sender.DisplayName,
		Kind:        notification.KindMessage,
		Title:       sender.DisplayName,
		Body:        preview,
		Payload:     map[string]string{"conversation_id": conv.ID},
	})
	return m, nil
}

// GetMessages returns one page of the conversation's messages, provided
// the caller takes part in it.
func (s *MessageService) GetMessages(ctx context.Context, conversationID string, limit int, cursor string) ([]*message.Message, string, error) {
	if _, err := s.callerConversation(ctx, conversationID); err != nil {
		return nil, "", err
	}
	return s.repo.ListMessages(ctx, conversationID, limit, cursor)
}

// DeleteMessage soft-deletes the caller's own message.
func (s *MessageService) DeleteMessage(ctx context.Context, id string) error {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return apperrors.ErrUnauthenticated
	}
	m, err := s.repo.GetMessage(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return apperrors.NotFoundf("message %s", id)
	}
	if m.SenderID != callerID {
		return apperrors.Unauthorizedf("message %s belongs to another user", id)
	}
	return s.repo.SoftDeleteMessage(ctx, m)
}

// GetConversations returns the caller's threads.
func (s *MessageService) GetConversations(ctx context.Context) ([]*message.Conversation, error) {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.repo.ListConversations(ctx, callerID)
}

// MarkConversationRead marks every message sent to the caller in the
// conversation as read.
func (s *MessageService) MarkConversationRead(ctx context.Context, conversationID string) error {
	callerID, err := s.callerConversation(ctx, conversationID)
	if err != nil {
		return err
	}
	return s.repo.MarkConversationRead(ctx, conversationID, callerID)
}

// callerConversation checks the caller participates in the conversation
// and returns the caller id.
func (s *MessageService) callerConversation(ctx context.Context, conversationID string) (string, error) {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return "", apperrors.ErrUnauthenticated
	}
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return "", err
	}
	if conv == nil {
		return "", apperrors.NotFoundf("conversation %s", conversationID)
	}
	for _, pid := range conv.ParticipantIDs {
		if pid == callerID {
			return callerID, nil
		}
	}
	return "", apperrors.Unauthorizedf("conversation %s belongs to other users", conversationID)
}

var _ ports.MessageService = (*MessageService)(nil)

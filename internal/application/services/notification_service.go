package services

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/identity"
	"github.com/craftyard/marketplace-backend/internal/core/domain/notification"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// NotificationService implements ports.NotificationService. Notify is
// strictly best-effort: every failure is logged and discarded so the
// primary operation that triggered the notification never sees it.
type NotificationService struct {
	repo     ports.NotificationRepository
	userRepo ports.UserRepository
	push     ports.PushSender
	logger   *logrus.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo ports.NotificationRepository, userRepo ports.UserRepository, push ports.PushSender, logger *logrus.Logger) ports.NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, push: push, logger: logger}
}

// Notify persists the notification and attempts a push delivery.
func (s *NotificationService) Notify(ctx context.Context, n *notification.Notification) {
	n.CreatedAt = time.Now()
	if _, err := s.repo.Create(ctx, n); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"recipient_id": n.RecipientID,
			"kind":         n.Kind,
		}).Warn("notification write failed")
		return
	}
	recipient, err := s.userRepo.GetByID(ctx, n.RecipientID)
	if err != nil || recipient == nil || recipient.DeviceToken == "" {
		return
	}
	payload := map[string]string{"kind": string(n.Kind)}
	for k, v := range n.Payload {
		payload[k] = v
	}
	if err := s.push.Send(ctx, recipient.DeviceToken, n.Title, n.Body, payload); err != nil {
		s.logger.WithError(err).WithField("recipient_id", n.RecipientID).Warn("push delivery failed")
	}
}

// List returns the caller's notifications.
func (s *NotificationService) List(ctx context.Context, limit int) ([]*notification.Notification, error) {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.repo.ListForUser(ctx, callerID, limit)
}

// MarkRead marks one of the caller's notifications read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return apperrors.ErrUnauthenticated
	}
	return s.repo.MarkRead(ctx, id, callerID)
}

// MarkAllRead marks every unread notification of the caller read.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return apperrors.ErrUnauthenticated
	}
	return s.repo.MarkAllRead(ctx, callerID)
}

// UnreadCount returns the caller's unread notification count.
func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return 0, apperrors.ErrUnauthenticated
	}
	return s.repo.UnreadCount(ctx, callerID)
}

var _ ports.NotificationService = (*NotificationService)(nil)

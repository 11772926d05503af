package ports

import (
	"context"

	"github.com/craftyard/marketplace-backend/internal/core/domain/notification"
)

// NotificationRepository wraps the notifications collection.
type NotificationRepository interface {
	Create(ctx context.Context, n *notification.Notification) (string, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]*notification.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	UnreadCount(ctx context.Context, userID string) (int, error)
}

// NotificationService creates and delivers notifications. Notify is
// best-effort: it logs failures and never returns them to the primary
// operation that triggered it.
type NotificationService interface {
	Notify(ctx context.Context, n *notification.Notification)
	List(ctx context.Context, limit int) ([]*notification.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	UnreadCount(ctx context.Context) (int, error)
}

package repositories

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/cachekey"
	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/notification"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// NotificationRepository implements ports.NotificationRepository over the
// document store.
type NotificationRepository struct {
	store  ports.DocumentStore
	cache  ports.Cache
	maxAge time.Duration
	logger *logrus.Logger
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(store ports.DocumentStore, cache ports.Cache, maxAge time.Duration, logger *logrus.Logger) ports.NotificationRepository {
	return &NotificationRepository{store: store, cache: cache, maxAge: maxAge, logger: logger}
}

func notificationToDoc(n *notification.Notification) map[string]any {
	payload := make(map[string]any, len(n.Payload))
	for k, v := range n.Payload {
		payload[k] = v
	}
	return map[string]any{
		"recipient_id": n.RecipientID,
		"actor_id":     n.ActorID,
		"actor_name":   n.ActorName,
		"kind":         string(n.Kind),
		"title":        n.Title,
		"body":         n.Body,
		"payload":      payload,
		"is_read":      n.IsRead,
		"created_at":   encodeTime(n.CreatedAt),
	}
}

func notificationFromDoc(doc *ports.Document) *notification.Notification {
	m := doc.Data
	return &notification.Notification{
		ID:          doc.ID,
		RecipientID: docString(m, "recipient_id"),
		ActorID:     docString(m, "actor_id"),
		ActorName:   docString(m, "actor_name"),
		Kind:        notification.Kind(docString(m, "kind")),
		Title:       docString(m, "title"),
		Body:        docString(m, "body"),
		Payload:     docStringMap(m, "payload"),
		IsRead:      docBool(m, "is_read"),
		CreatedAt:   decodeTime(m["created_at"]),
	}
}

// Create writes a new notification document.
func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) (string, error) {
	id, err := r.store.Create(ctx, colNotifications, notificationToDoc(n))
	if err != nil {
		return "", apperrors.Backend("create notification", err)
	}
	n.ID = id
	cacheRemove(r.cache, ctx, cachekey.NotificationsOfUser(n.RecipientID))
	return id, nil
}

// ListForUser returns the user's notifications, newest first.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID string, limit int) ([]*notification.Notification, error) {
	list, err := loadListSingleflight(r.cache, ctx, cachekey.NotificationsOfUser(userID), r.maxAge, func() ([]*notification.Notification, error) {
		docs, err := r.store.Query(ctx, ports.Query{
			Collection: colNotifications,
			Filters:    []ports.Filter{{Field: "recipient_id", Op: ports.OpEqual, Value: userID}},
			OrderBy:    "created_at",
			Descending: true,
		})
		if err != nil {
			return nil, apperrors.Backend("list notifications", err)
		}
		return mapDocs(docs, notificationFromDoc), nil
	})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// MarkRead marks one notification read after checking it belongs to userID.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	doc, err := r.store.Get(ctx, colNotifications, id)
	if err != nil {
		return apperrors.Backend("get notification", err)
	}
	if doc == nil {
		return apperrors.NotFoundf("notification %s", id)
	}
	if docString(doc.Data, "recipient_id") != userID {
		return apperrors.Unauthorizedf("notification %s belongs to another user", id)
	}
	if err := r.store.Update(ctx, colNotifications, id, map[string]any{"is_read": true}); err != nil {
		return apperrors.Backend("mark notification read", err)
	}
	cacheRemove(r.cache, ctx, cachekey.NotificationsOfUser(userID))
	return nil
}

// MarkAllRead marks every unread notification of the user read in one
// atomic batch.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	docs, err := r.store.Query(ctx, ports.Query{
		Collection: colNotifications,
		Filters: []ports.Filter{
			{Field: "recipient_id", Op: ports.OpEqual, Value: userID},
			{Field: "is_read", Op: ports.OpEqual, Value: false},
		},
	})
	if err != nil {
		return apperrors.Backend("list unread notifications", err)
	}
	if len(docs) == 0 {
		return nil
	}
	ops := make([]ports.BatchOp, 0, len(docs))
	for _, doc := range docs {
		ops = append(ops, ports.BatchOp{
			Kind:       ports.BatchUpdate,
			Collection: colNotifications,
			ID:         doc.ID,
			Fields:     map[string]any{"is_read": true},
		})
	}
	if err := r.store.RunBatch(ctx, ops); err != nil {
		return apperrors.Backend("mark all notifications read", err)
	}
	cacheRemove(r.cache, ctx, cachekey.NotificationsOfUser(userID))
	return nil
}

// UnreadCount returns how many unread notifications the user has.
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	docs, err := r.store.Query(ctx, ports.Query{
		Collection: colNotifications,
		Filters: []ports.Filter{
			{Field: "recipient_id", Op: ports.OpEqual, Value: userID},
			{Field: "is_read", Op: ports.OpEqual, Value: false},
		},
	})
	if err != nil {
		return 0, apperrors.Backend("count unread notifications", err)
	}
	return len(docs), nil
}

var _ ports.NotificationRepository = (*NotificationRepository)(nil)

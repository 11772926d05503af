package ports

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/domain/status"
)

// StatusRepository wraps the statuses collection. Listings exclude
// soft-deleted statuses; expiry is filtered by the service at read time.
type StatusRepository interface {
	Create(ctx context.Context, s *status.Status) (string, error)
	GetByID(ctx context.Context, id string) (*status.Status, error)
	SoftDelete(ctx context.Context, id string) error
	ListByAuthor(ctx context.Context, authorID string) ([]*status.Status, error)
	ListForAuthors(ctx context.Context, authorIDs []string) ([]*status.Status, error)
	MarkViewed(ctx context.Context, statusID, viewerID string) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// StatusService is the story facade.
type StatusService interface {
	PostStatus(ctx context.Context, req *status.CreateStatusRequest) (*status.Status, error)
	GetUserStatuses(ctx context.Context, userID string) ([]*status.Status, error)
	GetFollowingStatuses(ctx context.Context) ([]*status.Status, error)
	ViewStatus(ctx context.Context, id string) error
	DeleteStatus(ctx context.Context, id string) error
	CleanupExpiredStatuses(ctx context.Context) (int, error)
}

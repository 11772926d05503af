package ports

import (
	"context"

	"github.com/craftyard/marketplace-backend/internal/core/domain/reel"
)

// ReelRepository wraps the reels and reel_comments collections. Like and
// comment writes also adjust the denormalized counters on the parent
// document, in the same atomic batch as the child write.
type ReelRepository interface {
	Create(ctx context.Context, r *reel.Reel) (string, error)
	GetByID(ctx context.Context, id string) (*reel.Reel, error)
	SoftDelete(ctx context.Context, id string) error
	ListPage(ctx context.Context, limit int, cursor string) ([]*reel.Reel, string, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*reel.Reel, error)
	Trending(ctx context.Context, limit int) ([]*reel.Reel, error)
	Like(ctx context.Context, reelID, userID string) error
	Unlike(ctx context.Context, reelID, userID string) error
	AddComment(ctx context.Context, c *reel.Comment) (string, error)
	DeleteComment(ctx context.Context, c *reel.Comment) error
	GetComment(ctx context.Context, id string) (*reel.Comment, error)
	ListComments(ctx context.Context, reelID string) ([]*reel.Comment, error)
	SubscribeComments(ctx context.Context, reelID string, fn func([]*reel.Comment)) error
	UnsubscribeComments(reelID string)
	UpdateAuthorImage(ctx context.Context, authorID, url string) error
}

// ReelService is the short-video facade.
type ReelService interface {
	CreateReel(ctx context.Context, req *reel.CreateReelRequest) (*reel.Reel, error)
	GetReel(ctx context.Context, id string) (*reel.Reel, error)
	DeleteReel(ctx context.Context, id string) error
	ListReels(ctx context.Context, limit int, cursor string) ([]*reel.Reel, string, error)
	TrendingReels(ctx context.Context, limit int) ([]*reel.Reel, error)
	LikeReel(ctx context.Context, id string) error
	UnlikeReel(ctx context.Context, id string) error
	CommentOnReel(ctx context.Context, reelID string, req *reel.CreateCommentRequest) (*reel.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
	GetComments(ctx context.Context, reelID string) ([]*reel.Comment, error)
}

package ports

import (
	"context"

	"github.com/craftyard/marketplace-backend/internal/core/domain/user"
)

// UserRepository wraps the users collection with cache-aside reads.
// Reads return (nil, nil) when the id does not resolve; absence is a
// normal result, not an error.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) (string, error)
	GetByID(ctx context.Context, id string) (*user.User, error)
	Update(ctx context.Context, u *user.User) error
	List(ctx context.Context, limit int, cursor string) ([]*user.User, string, error)
	Search(ctx context.Context, query string, limit int) ([]*user.User, error)
	UpdateRatingStats(ctx context.Context, userID string, stats user.RatingStats) error
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	SetProfileImage(ctx context.Context, userID, url string) error
}

// UserService is the profile-facing facade.
type UserService interface {
	GetProfile(ctx context.Context, id string) (*user.User, error)
	CreateProfile(ctx context.Context, username, displayName string) (*user.User, error)
	UpdateProfile(ctx context.Context, req *user.UpdateProfileRequest) (*user.User, error)
	UpdateProfileImage(ctx context.Context, image []byte, ext string) (string, error)
	Follow(ctx context.Context, targetID string) error
	Unfollow(ctx context.Context, targetID string) error
	ListUsers(ctx context.Context, limit int, cursor string) ([]*user.User, string, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]*user.User, error)
	GetReviewStats(ctx context.Context, userID string) user.RatingStats
}

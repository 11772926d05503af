package ports

import (
	"context"

	"github.com/craftyard/marketplace-backend/internal/core/domain/post"
)

// PostRepository wraps the posts collection. Default listings exclude
// soft-deleted posts; GetByID still resolves them for history.
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) (string, error)
	GetByID(ctx context.Context, id string) (*post.Post, error)
	Update(ctx context.Context, p *post.Post) error
	SoftDelete(ctx context.Context, id string) error
	ListPage(ctx context.Context, limit int, cursor string) ([]*post.Post, string, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*post.Post, error)
	Search(ctx context.Context, query string, limit int) ([]*post.Post, error)
	UpdateAuthorImage(ctx context.Context, authorID, url string) error
}

// PostService is the offer/request facade.
type PostService interface {
	CreatePost(ctx context.Context, req *post.CreatePostRequest) (*post.Post, error)
	GetPost(ctx context.Context, id string) (*post.Post, error)
	UpdatePost(ctx context.Context, id string, req *post.UpdatePostRequest) (*post.Post, error)
	DeletePost(ctx context.Context, id string) error
	ListPosts(ctx context.Context, limit int, cursor string) ([]*post.Post, string, error)
	ListUserPosts(ctx context.Context, userID string) ([]*post.Post, error)
	SearchPosts(ctx context.Context, query string, limit int) ([]*post.Post, error)
}

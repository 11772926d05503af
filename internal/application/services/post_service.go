package services

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/identity"
	"github.com/craftyard/marketplace-backend/internal/core/domain/post"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// PostService implements ports.PostService. Mutations require the caller
// to own the post, checked by fetching and comparing author ids.
type PostService struct {
	repo     ports.PostRepository
	userRepo ports.UserRepository
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewPostService creates a new post service.
func NewPostService(repo ports.PostRepository, userRepo ports.UserRepository, validate *validator.Validate, logger *logrus.Logger) ports.PostService {
	return &PostService{repo: repo, userRepo: userRepo, validate: validate, logger: logger}
}

// CreatePost creates a post authored by the caller.
func (s *PostService) CreatePost(ctx context.Context, req *post.CreatePostRequest) (*post.Post, error) {
	author, err := caller(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validationf("%v", err)
	}
	now := time.Now()
	p := &post.Post{
		AuthorID:    author.ID,
		AuthorName:  author.DisplayName,
		AuthorImage: author.ProfileImage,
		Kind:        req.Kind,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURLs:   req.ImageURLs,
		Location:    req.Location,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPost returns the post with the given id.
func (s *PostService) GetPost(ctx context.Context, id string) (*post.Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFoundf("post %s", id)
	}
	return p, nil
}

// UpdatePost applies the non-nil fields of req to the caller's post.
func (s *PostService) UpdatePost(ctx context.Context, id string, req *post.UpdatePostRequest) (*post.Post, error) {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	p, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != callerID {
		return nil, apperrors.Unauthorizedf("post %s belongs to another user", id)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validationf("%v", err)
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePost soft-deletes the caller's post.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return apperrors.ErrUnauthenticated
	}
	p, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if p.AuthorID != callerID {
		return apperrors.Unauthorizedf("post %s belongs to another user", id)
	}
	return s.repo.SoftDelete(ctx, id)
}

// ListPosts returns one page of active posts.
func (s *PostService) ListPosts(ctx context.Context, limit int, cursor string) ([]*post.Post, string, error) {
	return s.repo.ListPage(ctx, limit, cursor)
}

// ListUserPosts returns the user's active posts.
func (s *PostService) ListUserPosts(ctx context.Context, userID string) ([]*post.Post, error) {
	return s.repo.ListByAuthor(ctx, userID)
}

// SearchPosts returns posts matching the query string.
func (s *PostService) SearchPosts(ctx context.Context, query string, limit int) ([]*post.Post, error) {
	if query == "" {
		return []*post.Post{}, nil
	}
	return s.repo.Search(ctx, query, limit)
}

var _ ports.PostService = (*PostService)(nil)

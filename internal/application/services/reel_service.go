package services

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/identity"
	"github.com/craftyard/marketplace-backend/internal/core/domain/notification"
	"github.com/craftyard/marketplace-backend/internal/core/domain/reel"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// defaultTrendingLimit bounds the trending listing when the caller does
// not ask for a specific size.
const defaultTrendingLimit = 20

// ReelService implements ports.ReelService.
type ReelService struct {
	repo          ports.ReelRepository
	userRepo      ports.UserRepository
	notifications ports.NotificationService
	validate      *validator.Validate
	logger        *logrus.Logger
}

// NewReelService creates a new reel service.
func NewReelService(repo ports.ReelRepository, userRepo ports.UserRepository, notifications ports.NotificationService, validate *validator.Validate, logger *logrus.Logger) ports.ReelService {
	return &ReelService{repo: repo, userRepo: userRepo, notifications: notifications, validate: validate, logger: logger}
}

// CreateReel posts a reel authored by the caller.
func (s *ReelService) CreateReel(ctx context.Context, req *reel.CreateReelRequest) (*reel.Reel, error) {
	author, err := caller(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validationf("%v", err)
	}
	r := &reel.Reel{
		AuthorID:     author.ID,
		AuthorName:   author.DisplayName,
		AuthorImage:  author.ProfileImage,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Caption:      req.Caption,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if _, err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// GetReel returns the reel with the given id.
func (s *ReelService) GetReel(ctx context.Context, id string) (*reel.Reel, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperrors.NotFoundf("reel %s", id)
	}
	return r, nil
}

// DeleteReel soft-deletes the caller's reel.
func (s *ReelService) DeleteReel(ctx context.Context, id string) error {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return apperrors.ErrUnauthenticated
	}
	r, err := s.GetReel(ctx, id)
	if err != nil {
		return err
	}
	if r.AuthorID != callerID {
		return apperrors.Unauthorizedf("reel %s belongs to another user", id)
	}
	return s.repo.SoftDelete(ctx, id)
}

// ListReels returns one page of active reels.
func (s *ReelService) ListReels(ctx context.Context, limit int, cursor string) ([]*reel.Reel, string, error) {
	return s.repo.ListPage(ctx, limit, cursor)
}

// TrendingReels returns the most liked active reels.
func (s *ReelService) TrendingReels(ctx context.Context, limit int) ([]*reel.Reel, error) {
	if limit <= 0 {
		limit = defaultTrendingLimit
	}
	return s.repo.Trending(ctx, limit)
}

// LikeReel records a like by the caller and notifies the author.
func (s *ReelService) LikeReel(ctx context.Context, id string) error {
	u, err := caller(ctx, s.userRepo)
	if err != nil {
		return err
	}
	r, err := s.GetReel(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Like(ctx, id, u.ID); err != nil {
		return err
	}
	if r.AuthorID != u.ID {
		s.notifications.Notify(ctx, &notification.Notification{
			RecipientID: r.AuthorID,
			ActorID:     u.ID,
			ActorName:   u.DisplayName,
			Kind:        notification.KindLike,
			Title:       "New like",
			Body:        u.DisplayName + " liked your reel",
			Payload:     map[string]string{"reel_id": id},
		})
	}
	return nil
}

// UnlikeReel removes the caller's like.
func (s *ReelService) UnlikeReel(ctx context.Context, id string) error {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return apperrors.ErrUnauthenticated
	}
	if _, err := s.GetReel(ctx, id); err != nil {
		return err
	}
	return s.repo.Unlike(ctx, id, callerID)
}

// CommentOnReel adds a comment by the caller and notifies the reel author.
func (s *ReelService) CommentOnReel(ctx context.Context, reelID string, req *reel.CreateCommentRequest) (*reel.Comment, error) {
	u, err := caller(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validationf("%v", err)
	}
	r, err := s.GetReel(ctx, reelID)
	if err != nil {
		return nil, err
	}
	if req.ParentID != "" {
		parent, err := s.repo.GetComment(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.ReelID != reelID {
			return nil, apperrors.NotFoundf("comment %s", req.ParentID)
		}
	}
	c := &reel.Comment{
		ReelID:      reelID,
		AuthorID:    u.ID,
		AuthorName:  u.DisplayName,
		AuthorImage: u.ProfileImage,
		Text:        req.Text,
		ParentID:    req.ParentID,
		CreatedAt:   time.Now(),
	}
	if _, err := s.repo.AddComment(ctx, c); err != nil {
		return nil, err
	}
	if r.AuthorID != u.ID {
		s.notifications.Notify(ctx, &notification.Notification{
			RecipientID: r.AuthorID,
			ActorID:     u.ID,
			ActorName:   u.DisplayName,
			Kind:        notification.KindComment,
			Title:       "New comment",
			Body:        u.DisplayName + " commented on your reel",
			Payload:     map[string]string{"reel_id": reelID, "comment_id": c.ID},
		})
	}
	return c, nil
}

// DeleteComment removes the caller's comment and its counter marks.
func (s *ReelService) DeleteComment(ctx context.Context, commentID string) error {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return apperrors.ErrUnauthenticated
	}
	c, err := s.repo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if c == nil {
		return apperrors.NotFoundf("comment %s", commentID)
	}
	if c.AuthorID != callerID {
		return apperrors.Unauthorizedf("comment %s belongs to another user", commentID)
	}
	return s.repo.DeleteComment(ctx, c)
}

// GetComments returns the reel's comments.
func (s *ReelService) GetComments(ctx context.Context, reelID string) ([]*reel.Comment, error) {
	if _, err := s.GetReel(ctx, reelID); err != nil {
		return nil, err
	}
	return s.repo.ListComments(ctx, reelID)
}

var _ ports.ReelService = (*ReelService)(nil)

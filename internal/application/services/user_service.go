package services

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/identity"
	"github.com/craftyard/marketplace-backend/internal/core/domain/notification"
	"github.com/craftyard/marketplace-backend/internal/core/domain/user"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/blobstorage"
	"github.com/sirupsen/logrus"
)

// UserService implements ports.UserService. Profile-image changes fan out
// to every document that denormalizes the image.
type UserService struct {
	repo          ports.UserRepository
	postRepo      ports.PostRepository
	reelRepo      ports.ReelRepository
	reviewRepo    ports.ReviewRepository
	messageRepo   ports.MessageRepository
	blobs         ports.BlobStorage
	notifications ports.NotificationService
	logger        *logrus.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo ports.UserRepository, postRepo ports.PostRepository, reelRepo ports.ReelRepository, reviewRepo ports.ReviewRepository, messageRepo ports.MessageRepository, blobs ports.BlobStorage, notifications ports.NotificationService, logger *logrus.Logger) ports.UserService {
	return &UserService{
		repo:          repo,
		postRepo:      postRepo,
		reelRepo:      reelRepo,
		reviewRepo:    reviewRepo,
		messageRepo:   messageRepo,
		blobs:         blobs,
		notifications: notifications,
		logger:        logger,
	}
}

// caller resolves the authenticated caller's profile or fails with the
// matching sentinel.
func caller(ctx context.Context, repo ports.UserRepository) (*user.User, error) {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	u, err := repo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NotFoundf("user %s", callerID)
	}
	return u, nil
}

// GetProfile returns the user with the given id.
func (s *UserService) GetProfile(ctx context.Context, id string) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NotFoundf("user %s", id)
	}
	return u, nil
}

// CreateProfile creates the caller's profile document.
func (s *UserService) CreateProfile(ctx context.Context, username, displayName string) (*user.User, error) {
	if _, ok := identity.CallerID(ctx); !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	if username == "" {
		return nil, apperrors.Validationf("username is required")
	}
	now := time.Now()
	u := &user.User{
		Username:    username,
		DisplayName: displayName,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfile applies the non-nil fields of req to the caller's profile.
func (s *UserService) UpdateProfile(ctx context.Context, req *user.UpdateProfileRequest) (*user.User, error) {
	u, err := caller(ctx, s.repo)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != nil {
		u.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Skills != nil {
		u.Skills = *req.Skills
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
	if req.DeviceToken != nil {
		u.DeviceToken = *req.DeviceToken
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfileImage uploads the new image and rewrites every denormalized
// copy of the old URL: posts, reels, comments, reviews and conversation
// participant maps, then the user document itself.
func (s *UserService) UpdateProfileImage(ctx context.Context, image []byte, ext string) (string, error) {
	u, err := caller(ctx, s.repo)
	if err != nil {
		return "", err
	}
	if len(image) == 0 {
		return "", apperrors.Validationf("image payload is empty")
	}
	url, err := s.blobs.Upload(ctx, image, blobstorage.ObjectPath("profile", u.ID, 0, ext), "image/"+ext)
	if err != nil {
		return "", apperrors.Backend("upload profile image", err)
	}
	if err := s.postRepo.UpdateAuthorImage(ctx, u.ID, url); err != nil {
		return "", err
	}
	if err := s.reelRepo.UpdateAuthorImage(ctx, u.ID, url); err != nil {
		return "", err
	}
	if err := s.reviewRepo.UpdateReviewerImage(ctx, u.ID, url); err != nil {
		return "", err
	}
	if err := s.messageRepo.UpdateParticipantImage(ctx, u.ID, url); err != nil {
		return "", err
	}
	// Last so the cache flush it triggers covers the fan-out above.
	if err := s.repo.SetProfileImage(ctx, u.ID, url); err != nil {
		return "", err
	}
	s.logger.WithField("user_id", u.ID).Info("profile image updated")
	return url, nil
}

// Follow adds the caller as a follower of targetID.
func (s *UserService) Follow(ctx context.Context, targetID string) error {
	u, err := caller(ctx, s.repo)
	if err != nil {
		return err
	}
	if u.ID == targetID {
		return apperrors.Unauthorizedf("users cannot follow themselves")
	}
	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperrors.NotFoundf("user %s", targetID)
	}
	if err := s.repo.Follow(ctx, u.ID, targetID); err != nil {
		return err
	}
	s.notifications.Notify(ctx, &notification.Notification{
		RecipientID: targetID,
		ActorID:     u.ID,
		ActorName:   u.DisplayName,
		Kind:        notification.KindFollow,
		Title:       "New follower",
		Body:        u.DisplayName + " started following you",
	})
	return nil
}

// Unfollow removes the caller from targetID's followers.
func (s *UserService) Unfollow(ctx context.Context, targetID string) error {
	u, err := caller(ctx, s.repo)
	if err != nil {
		return err
	}
	if u.ID == targetID {
		return apperrors.Unauthorizedf("users cannot unfollow themselves")
	}
	return s.repo.Unfollow(ctx, u.ID, targetID)
}

// ListUsers returns one page of users.
func (s *UserService) ListUsers(ctx context.Context, limit int, cursor string) ([]*user.User, string, error) {
	return s.repo.List(ctx, limit, cursor)
}

// SearchUsers returns users matching the query string.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit int) ([]*user.User, error) {
	if query == "" {
		return []*user.User{}, nil
	}
	return s.repo.Search(ctx, query, limit)
}

// GetReviewStats returns the user's denormalized rating aggregate. A
// lookup failure degrades to the zero aggregate rather than an error so
// profile rendering never breaks on stats.
func (s *UserService) GetReviewStats(ctx context.Context, userID string) user.RatingStats {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		if err != nil {
			s.logger.WithError(err).WithField("user_id", userID).Warn("review stats lookup failed")
		}
		return user.RatingStats{}
	}
	return user.RatingStats{AverageRating: u.AverageRating, ReviewCount: u.ReviewCount}
}

var _ ports.UserService = (*UserService)(nil)

package services

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/identity"
	"github.com/craftyard/marketplace-backend/internal/core/domain/status"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// StatusService implements ports.StatusService. Expiry is enforced lazily
// at read time by filtering on the derived state; the cleanup batch only
// reclaims storage.
type StatusService struct {
	repo     ports.StatusRepository
	userRepo ports.UserRepository
	validate *validator.Validate
	logger   *logrus.Logger
	now      func() time.Time
}

// NewStatusService creates a new status service.
func NewStatusService(repo ports.StatusRepository, userRepo ports.UserRepository, validate *validator.Validate, logger *logrus.Logger) ports.StatusService {
	return &StatusService{repo: repo, userRepo: userRepo, validate: validate, logger: logger, now: time.Now}
}

// PostStatus publishes a status by the caller, visible for the default
// lifetime.
func (s *StatusService) PostStatus(ctx context.Context, req *status.CreateStatusRequest) (*status.Status, error) {
	author, err := caller(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validationf("%v", err)
	}
	now := s.now()
	st := &status.Status{
		AuthorID:    author.ID,
		AuthorName:  author.DisplayName,
		AuthorImage: author.ProfileImage,
		MediaURL:    req.MediaURL,
		Caption:     req.Caption,
		IsActive:    true,
		CreatedAt:   now,
		ExpiresAt:   now.Add(status.DefaultLifetime),
	}
	if _, err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// GetUserStatuses returns the user's currently visible statuses.
func (s *StatusService) GetUserStatuses(ctx context.Context, userID string) ([]*status.Status, error) {
	list, err := s.repo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.visible(list), nil
}

// GetFollowingStatuses returns the visible statuses of every user the
// caller follows, newest first.
func (s *StatusService) GetFollowingStatuses(ctx context.Context) ([]*status.Status, error) {
	u, err := caller(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if len(u.Following) == 0 {
		return []*status.Status{}, nil
	}
	list, err := s.repo.ListForAuthors(ctx, u.Following)
	if err != nil {
		return nil, err
	}
	return s.visible(list), nil
}

// ViewStatus records the caller as a viewer of the status.
func (s *StatusService) ViewStatus(ctx context.Context, id string) error {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return apperrors.ErrUnauthenticated
	}
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if st == nil || st.StateAt(s.now()) != status.StateActive {
		return apperrors.NotFoundf("status %s", id)
	}
	return s.repo.MarkViewed(ctx, id, callerID)
}

// DeleteStatus soft-deletes the caller's status.
func (s *StatusService) DeleteStatus(ctx context.Context, id string) error {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return apperrors.ErrUnauthenticated
	}
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if st == nil {
		return apperrors.NotFoundf("status %s", id)
	}
	if st.AuthorID != callerID {
		return apperrors.Unauthorizedf("status %s belongs to another user", id)
	}
	return s.repo.SoftDelete(ctx, id)
}

// CleanupExpiredStatuses hard-deletes statuses that expired before now.
// Run periodically from the server loop.
func (s *StatusService) CleanupExpiredStatuses(ctx context.Context) (int, error) {
	return s.repo.DeleteExpiredBefore(ctx, s.now())
}

func (s *StatusService) visible(list []*status.Status) []*status.Status {
	now := s.now()
	out := make([]*status.Status, 0, len(list))
	for _, st := range list {
		if st.StateAt(now) == status.StateActive {
			out = append(out, st)
		}
	}
	return out
}

var _ ports.StatusService = (*StatusService)(nil)

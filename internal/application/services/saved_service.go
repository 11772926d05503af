package services

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/identity"
	"github.com/craftyard/marketplace-backend/internal/core/domain/saved"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// SavedService implements ports.SavedService.
type SavedService struct {
	repo   ports.SavedRepository
	logger *logrus.Logger
}

// NewSavedService creates a new saved-items service.
func NewSavedService(repo ports.SavedRepository, logger *logrus.Logger) ports.SavedService {
	return &SavedService{repo: repo, logger: logger}
}

// ToggleSave saves the target when it is not saved and unsaves it when it
// is. The returned bool reports whether the item is saved after the call.
func (s *SavedService) ToggleSave(ctx context.Context, itemType saved.ItemType, itemID string) (bool, error) {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return false, apperrors.ErrUnauthenticated
	}
	if !itemType.Valid() {
		return false, apperrors.Validationf("unknown saved item type %q", itemType)
	}
	if itemID == "" {
		return false, apperrors.Validationf("item id is required")
	}
	existing, err := s.repo.Find(ctx, callerID, itemType, itemID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := s.repo.Delete(ctx, existing); err != nil {
			return true, err
		}
		return false, nil
	}
	item := &saved.Item{
		UserID:   callerID,
		ItemType: itemType,
		ItemID:   itemID,
		SavedAt:  time.Now(),
	}
	if _, err := s.repo.Create(ctx, item); err != nil {
		return false, err
	}
	return true, nil
}

// ListSaved returns the caller's saved items of one type.
func (s *SavedService) ListSaved(ctx context.Context, itemType saved.ItemType) ([]*saved.Item, error) {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	if !itemType.Valid() {
		return nil, apperrors.Validationf("unknown saved item type %q", itemType)
	}
	return s.repo.ListForUser(ctx, callerID, itemType)
}

var _ ports.SavedService = (*SavedService)(nil)

package services

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/identity"
	"github.com/craftyard/marketplace-backend/internal/core/domain/portfolio"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// PortfolioService implements ports.PortfolioService.
type PortfolioService struct {
	repo     ports.PortfolioRepository
	userRepo ports.UserRepository
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(repo ports.PortfolioRepository, userRepo ports.UserRepository, validate *validator.Validate, logger *logrus.Logger) ports.PortfolioService {
	return &PortfolioService{repo: repo, userRepo: userRepo, validate: validate, logger: logger}
}

// AddCard adds a card to the caller's portfolio.
func (s *PortfolioService) AddCard(ctx context.Context, req *portfolio.CreateCardRequest) (*portfolio.Card, error) {
	owner, err := caller(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validationf("%v", err)
	}
	now := time.Now()
	c := &portfolio.Card{
		OwnerID:     owner.ID,
		Title:       req.Title,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCard applies the non-nil fields of req to the caller's card.
func (s *PortfolioService) UpdateCard(ctx context.Context, id string, req *portfolio.UpdateCardRequest) (*portfolio.Card, error) {
	c, err := s.ownedCard(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.ImageURLs != nil {
		c.ImageURLs = *req.ImageURLs
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCard hard-deletes the caller's card.
func (s *PortfolioService) DeleteCard(ctx context.Context, id string) error {
	c, err := s.ownedCard(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, c)
}

// GetUserPortfolio returns the user's cards.
func (s *PortfolioService) GetUserPortfolio(ctx context.Context, userID string) ([]*portfolio.Card, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *PortfolioService) ownedCard(ctx context.Context, id string) (*portfolio.Card, error) {
	callerID, ok := identity.CallerID(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.NotFoundf("portfolio card %s", id)
	}
	if c.OwnerID != callerID {
		return nil, apperrors.Unauthorizedf("portfolio card %s belongs to another user", id)
	}
	return c, nil
}

var _ ports.PortfolioService = (*PortfolioService)(nil)

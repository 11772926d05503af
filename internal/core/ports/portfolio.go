package ports

import (
	"context"

	"github.com/craftyard/marketplace-backend/internal/core/domain/portfolio"
)

// PortfolioRepository wraps the portfolio_cards collection.
type PortfolioRepository interface {
	Create(ctx context.Context, c *portfolio.Card) (string, error)
	GetByID(ctx context.Context, id string) (*portfolio.Card, error)
	Update(ctx context.Context, c *portfolio.Card) error
	Delete(ctx context.Context, c *portfolio.Card) error
	ListForUser(ctx context.Context, ownerID string) ([]*portfolio.Card, error)
}

// PortfolioService is the profile showcase facade.
type PortfolioService interface {
	AddCard(ctx context.Context, req *portfolio.CreateCardRequest) (*portfolio.Card, error)
	UpdateCard(ctx context.Context, id string, req *portfolio.UpdateCardRequest) (*portfolio.Card, error)
	DeleteCard(ctx context.Context, id string) error
	GetUserPortfolio(ctx context.Context, userID string) ([]*portfolio.Card, error)
}

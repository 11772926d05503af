package repositories

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/cachekey"
	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/portfolio"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// PortfolioRepository implements ports.PortfolioRepository over the
// document store. Cards are hard deleted.
type PortfolioRepository struct {
	store  ports.DocumentStore
	cache  ports.Cache
	maxAge time.Duration
	logger *logrus.Logger
}

// NewPortfolioRepository creates a new portfolio repository.
func NewPortfolioRepository(store ports.DocumentStore, cache ports.Cache, maxAge time.Duration, logger *logrus.Logger) ports.PortfolioRepository {
	return &PortfolioRepository{store: store, cache: cache, maxAge: maxAge, logger: logger}
}

func cardToDoc(c *portfolio.Card) map[string]any {
	return map[string]any{
		"owner_id":    c.OwnerID,
		"title":       c.Title,
		"description": c.Description,
		"image_urls":  c.ImageURLs,
		"created_at":  encodeTime(c.CreatedAt),
		"updated_at":  encodeTime(c.UpdatedAt),
	}
}

func cardFromDoc(doc *ports.Document) *portfolio.Card {
	m := doc.Data
	return &portfolio.Card{
		ID:          doc.ID,
		OwnerID:     docString(m, "owner_id"),
		Title:       docString(m, "title"),
		Description: docString(m, "description"),
		ImageURLs:   docStrings(m, "image_urls"),
		CreatedAt:   decodeTime(m["created_at"]),
		UpdatedAt:   decodeTime(m["updated_at"]),
	}
}

// Create writes a new portfolio card.
func (r *PortfolioRepository) Create(ctx context.Context, c *portfolio.Card) (string, error) {
	id, err := r.store.Create(ctx, colPortfolioCards, cardToDoc(c))
	if err != nil {
		return "", apperrors.Backend("create portfolio card", err)
	}
	c.ID = id
	cacheRemove(r.cache, ctx, cachekey.PortfolioOfUser(c.OwnerID))
	return id, nil
}

// GetByID returns the card or (nil, nil) when the id does not resolve.
func (r *PortfolioRepository) GetByID(ctx context.Context, id string) (*portfolio.Card, error) {
	doc, err := r.store.Get(ctx, colPortfolioCards, id)
	if err != nil {
		return nil, apperrors.Backend("get portfolio card", err)
	}
	if doc == nil {
		return nil, nil
	}
	return cardFromDoc(doc), nil
}

// Update replaces the card document.
func (r *PortfolioRepository) Update(ctx context.Context, c *portfolio.Card) error {
	c.UpdatedAt = time.Now()
	if err := r.store.Set(ctx, colPortfolioCards, c.ID, cardToDoc(c)); err != nil {
		return apperrors.Backend("update portfolio card", err)
	}
	cacheRemove(r.cache, ctx, cachekey.PortfolioCard(c.ID), cachekey.PortfolioOfUser(c.OwnerID))
	return nil
}

// Delete removes the card for good.
func (r *PortfolioRepository) Delete(ctx context.Context, c *portfolio.Card) error {
	if err := r.store.Delete(ctx, colPortfolioCards, c.ID); err != nil {
		return apperrors.Backend("delete portfolio card", err)
	}
	cacheRemove(r.cache, ctx, cachekey.PortfolioCard(c.ID), cachekey.PortfolioOfUser(c.OwnerID))
	return nil
}

// ListForUser returns the owner's cards, newest first.
func (r *PortfolioRepository) ListForUser(ctx context.Context, ownerID string) ([]*portfolio.Card, error) {
	return loadListSingleflight(r.cache, ctx, cachekey.PortfolioOfUser(ownerID), r.maxAge, func() ([]*portfolio.Card, error) {
		docs, err := r.store.Query(ctx, ports.Query{
			Collection: colPortfolioCards,
			Filters:    []ports.Filter{{Field: "owner_id", Op: ports.OpEqual, Value: ownerID}},
			OrderBy:    "created_at",
			Descending: true,
		})
		if err != nil {
			return nil, apperrors.Backend("list portfolio cards", err)
		}
		return mapDocs(docs, cardFromDoc), nil
	})
}

var _ ports.PortfolioRepository = (*PortfolioRepository)(nil)

package repositories

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/cachekey"
	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/saved"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// SavedRepository implements ports.SavedRepository over the document
// store. Items are hard deleted on unsave.
type SavedRepository struct {
	store  ports.DocumentStore
	cache  ports.Cache
	maxAge time.Duration
	logger *logrus.Logger
}

// NewSavedRepository creates a new saved-items repository.
func NewSavedRepository(store ports.DocumentStore, cache ports.Cache, maxAge time.Duration, logger *logrus.Logger) ports.SavedRepository {
	return &SavedRepository{store: store, cache: cache, maxAge: maxAge, logger: logger}
}

func savedToDoc(item *saved.Item) map[string]any {
	return map[string]any{
		"user_id":   item.UserID,
		"item_type": string(item.ItemType),
		"item_id":   item.ItemID,
		"saved_at":  encodeTime(item.SavedAt),
	}
}

func savedFromDoc(doc *ports.Document) *saved.Item {
	m := doc.Data
	return &saved.Item{
		ID:       doc.ID,
		UserID:   docString(m, "user_id"),
		ItemType: saved.ItemType(docString(m, "item_type")),
		ItemID:   docString(m, "item_id"),
		SavedAt:  decodeTime(m["saved_at"]),
	}
}

// Create writes a new saved item.
func (r *SavedRepository) Create(ctx context.Context, item *saved.Item) (string, error) {
	id, err := r.store.Create(ctx, colSavedItems, savedToDoc(item))
	if err != nil {
		return "", apperrors.Backend("create saved item", err)
	}
	item.ID = id
	cacheRemove(r.cache, ctx, cachekey.Saved(string(item.ItemType), item.UserID))
	return id, nil
}

// Find returns the user's saved item for the target, or (nil, nil) when
// the target is not saved.
func (r *SavedRepository) Find(ctx context.Context, userID string, itemType saved.ItemType, itemID string) (*saved.Item, error) {
	docs, err := r.store.Query(ctx, ports.Query{
		Collection: colSavedItems,
		Filters: []ports.Filter{
			{Field: "user_id", Op: ports.OpEqual, Value: userID},
			{Field: "item_type", Op: ports.OpEqual, Value: string(itemType)},
			{Field: "item_id", Op: ports.OpEqual, Value: itemID},
		},
		Limit: 1,
	})
	if err != nil {
		return nil, apperrors.Backend("find saved item", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return savedFromDoc(&docs[0]), nil
}

// Delete removes the saved item for good.
func (r *SavedRepository) Delete(ctx context.Context, item *saved.Item) error {
	if err := r.store.Delete(ctx, colSavedItems, item.ID); err != nil {
		return apperrors.Backend("delete saved item", err)
	}
	cacheRemove(r.cache, ctx, cachekey.Saved(string(item.ItemType), item.UserID))
	return nil
}

// ListForUser returns the user's saved items of one type, newest first.
func (r *SavedRepository) ListForUser(ctx context.Context, userID string, itemType saved.ItemType) ([]*saved.Item, error) {
	return loadListSingleflight(r.cache, ctx, cachekey.Saved(string(itemType), userID), r.maxAge, func() ([]*saved.Item, error) {
		docs, err := r.store.Query(ctx, ports.Query{
			Collection: colSavedItems,
			Filters: []ports.Filter{
				{Field: "user_id", Op: ports.OpEqual, Value: userID},
				{Field: "item_type", Op: ports.OpEqual, Value: string(itemType)},
			},
			OrderBy:    "saved_at",
			Descending: true,
		})
		if err != nil {
			return nil, apperrors.Backend("list saved items", err)
		}
		return mapDocs(docs, savedFromDoc), nil
	})
}

var _ ports.SavedRepository = (*SavedRepository)(nil)

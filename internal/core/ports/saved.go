package ports

import (
	"context"

	"github.com/craftyard/marketplace-backend/internal/core/domain/saved"
)

// SavedRepository wraps the saved_items collection.
type SavedRepository interface {
	Create(ctx context.Context, item *saved.Item) (string, error)
	Find(ctx context.Context, userID string, itemType saved.ItemType, itemID string) (*saved.Item, error)
	Delete(ctx context.Context, item *saved.Item) error
	ListForUser(ctx context.Context, userID string, itemType saved.ItemType) ([]*saved.Item, error)
}

// SavedService is the bookmark facade. ToggleSave reports whether the item
// is saved after the call.
type SavedService interface {
	ToggleSave(ctx context.Context, itemType saved.ItemType, itemID string) (bool, error)
	ListSaved(ctx context.Context, itemType saved.ItemType) ([]*saved.Item, error)
}

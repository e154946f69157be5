package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// ItemRepository defines the persistence contract for catalog items
type ItemRepository interface {
	// FindByID returns the item with the given ID, shared.ErrNotFound if absent
	FindByID(ctx context.Context, id uuid.UUID) (*CatalogItem, error)

	// FindAll returns items matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]CatalogItem, error)

	// ItemNames returns a map of item ID to item name for the given IDs
	ItemNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)

	// VariantNames returns a map of variant ID to display name for the given IDs
	VariantNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)

	// Save persists the item (insert or update)
	Save(ctx context.Context, item *CatalogItem) error
}

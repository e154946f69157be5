package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// VendorRepository defines the persistence contract for vendors
type VendorRepository interface {
	// FindByID returns the vendor with the given ID, shared.ErrNotFound if absent
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)

	// FindAll returns vendors matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Vendor, error)

	// DisplayNames returns a map of vendor ID to vendor name for the given IDs
	DisplayNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)

	// Save persists the vendor (insert or update)
	Save(ctx context.Context, vendor *Vendor) error
}

// FundingSourceRepository defines the persistence contract for funding sources
type FundingSourceRepository interface {
	// FindByID returns the funding source with the given ID, shared.ErrNotFound if absent
	FindByID(ctx context.Context, id uuid.UUID) (*FundingSource, error)

	// FindAll returns funding sources matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]FundingSource, error)

	// Save persists the funding source (insert or update)
	Save(ctx context.Context, source *FundingSource) error
}

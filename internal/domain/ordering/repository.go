package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines the persistence contract for purchase orders
type PurchaseOrderRepository interface {
	// FindByID returns the order with its lines, shared.ErrNotFound if absent
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByQuoteRequestID returns the order converted from the given
	// request, shared.ErrNotFound if none exists
	FindByQuoteRequestID(ctx context.Context, requestID uuid.UUID) (*PurchaseOrder, error)

	// FindAll returns orders matching the filter, without lines
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// Count returns the number of orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CreateFromConversion persists the order and flips the source
	// request to converted in one transaction. The order number is
	// allocated from the year-scoped counter inside the same
	// transaction, so a number is never burned without a persisted
	// order.
	CreateFromConversion(ctx context.Context, order *PurchaseOrder, request *procurement.QuoteRequest) error

	// Save persists header changes with an optimistic version check
	Save(ctx context.Context, order *PurchaseOrder) error
}

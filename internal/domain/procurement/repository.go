package procurement

import (
	"context"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// QuoteRequestRepository defines the persistence contract for quote requests
type QuoteRequestRepository interface {
	// FindByID returns the request with its lines, shared.ErrNotFound if absent
	FindByID(ctx context.Context, id uuid.UUID) (*QuoteRequest, error)

	// FindAll returns requests matching the filter, without lines
	FindAll(ctx context.Context, filter shared.Filter) ([]QuoteRequest, error)

	// Count returns the number of requests matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Create persists a new request. The request number is allocated from
	// the year-scoped counter inside the same transaction as the insert.
	Create(ctx context.Context, request *QuoteRequest) error

	// Save persists header changes and replaces the line set wholesale
	// (delete then reinsert) in one transaction, with an optimistic
	// version check on the header
	Save(ctx context.Context, request *QuoteRequest) error

	// SaveWithSelection persists the request header and makes the given
	// quote the single selected quote for it, clearing all siblings, in
	// one transaction. Used by approval.
	SaveWithSelection(ctx context.Context, request *QuoteRequest, selectedQuoteID uuid.UUID) error
}

// VendorQuoteRepository is the ledger of competing bids per request
type VendorQuoteRepository interface {
	// FindByID returns the quote with its lines, shared.ErrNotFound if absent
	FindByID(ctx context.Context, id uuid.UUID) (*VendorQuote, error)

	// FindByRequestID returns all quotes for a request ordered by
	// ascending total amount, each with its lines
	FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]VendorQuote, error)

	// CountByRequestIDs returns a map of request ID to quote count
	CountByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID]int64, error)

	// Create persists a new quote with its lines. When request is not
	// nil its header is saved in the same transaction, so the first
	// quote can flip a sent request to quotes received atomically.
	Create(ctx context.Context, quote *VendorQuote, request *QuoteRequest) error
}

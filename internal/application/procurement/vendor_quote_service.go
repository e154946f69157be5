package procurement

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

// VendorQuoteService records and lists vendor bids against quote requests
type VendorQuoteService struct {
	quoteRepo      procurement.VendorQuoteRepository
	requestRepo    procurement.QuoteRequestRepository
	vendorRepo     partner.VendorRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewVendorQuoteService creates a new vendor quote service
func NewVendorQuoteService(
	quoteRepo procurement.VendorQuoteRepository,
	requestRepo procurement.QuoteRequestRepository,
	vendorRepo partner.VendorRepository,
	logger *zap.Logger,
) *VendorQuoteService {
	return &VendorQuoteService{
		quoteRepo:   quoteRepo,
		requestRepo: requestRepo,
		vendorRepo:  vendorRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *VendorQuoteService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Record records a vendor's bid against a sent request. The first quote
// on a sent request flips it to quotes received in the same transaction
// as the quote insert.
func (s *VendorQuoteService) Record(ctx context.Context, requestID uuid.UUID, req RecordVendorQuoteRequest) (*VendorQuoteResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != procurement.QuoteRequestStatusSent &&
		request.Status != procurement.QuoteRequestStatusQuotesReceived {
		return nil, shared.NewDomainError("INVALID_STATE",
			"Quotes can only be recorded on sent quote requests")
	}

	vendor, err := s.vendorRepo.FindByID(ctx, req.VendorID)
	if err != nil {
		return nil, shared.NewDomainError("VENDOR_NOT_FOUND", "Vendor not found")
	}

	quote, err := procurement.NewVendorQuote(request.ID, vendor.ID, valueobject.NewMoneyUSD(req.TotalAmount))
	if err != nil {
		return nil, err
	}
	if req.ShippingCost != nil {
		if err := quote.SetShippingCost(valueobject.NewMoneyUSD(*req.ShippingCost)); err != nil {
			return nil, err
		}
	}
	if req.LeadTimeDays != nil {
		if err := quote.SetLeadTime(*req.LeadTimeDays); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		quote.SetNotes(req.Notes)
	}
	for _, line := range req.Lines {
		if line.QuoteRequestLineID != nil && request.FindLine(*line.QuoteRequestLineID) == nil {
			return nil, shared.NewDomainError("INVALID_LINE_REFERENCE",
				"Quote line references a request line that does not exist")
		}
		if _, err := quote.AddLine(line.Description, line.Quantity,
			valueobject.NewMoneyUSD(line.UnitPrice), line.QuoteRequestLineID); err != nil {
			return nil, err
		}
	}

	// Only pass the request through when this quote changes its status,
	// so the repository saves the header in the same transaction.
	var statusChange *procurement.QuoteRequest
	if request.Status == procurement.QuoteRequestStatusSent {
		if err := request.MarkQuotesReceived(); err != nil {
			return nil, err
		}
		statusChange = request
	}

	if err := s.quoteRepo.Create(ctx, quote, statusChange); err != nil {
		s.logger.Error("Failed to record vendor quote",
			zap.String("request_id", requestID.String()),
			zap.String("vendor_id", vendor.ID.String()),
			zap.Error(err))
		return nil, err
	}

	s.publishEvents(ctx, quote)
	if statusChange != nil {
		s.publishEvents(ctx, request)
	}

	s.logger.Info("Vendor quote recorded",
		zap.String("request_id", request.ID.String()),
		zap.String("quote_id", quote.ID.String()),
		zap.String("vendor_id", vendor.ID.String()))

	response := ToVendorQuoteResponse(quote, vendor.Name)
	return &response, nil
}

// ListByRequest returns all quotes for a request ordered by ascending
// total amount
func (s *VendorQuoteService) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]VendorQuoteResponse, error) {
	if _, err := s.requestRepo.FindByID(ctx, requestID); err != nil {
		return nil, err
	}

	quotes, err := s.quoteRepo.FindByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	vendorIDs := make([]uuid.UUID, len(quotes))
	for i, quote := range quotes {
		vendorIDs[i] = quote.VendorID
	}
	vendorNames, err := s.vendorRepo.DisplayNames(ctx, vendorIDs)
	if err != nil {
		vendorNames = map[uuid.UUID]string{}
	}

	responses := make([]VendorQuoteResponse, len(quotes))
	for i := range quotes {
		responses[i] = ToVendorQuoteResponse(&quotes[i], vendorNames[quotes[i].VendorID])
	}
	return responses, nil
}

func (s *VendorQuoteService) publishEvents(ctx context.Context, aggregate interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}) {
	if s.eventPublisher == nil {
		aggregate.ClearDomainEvents()
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish domain event",
				zap.String("event_type", event.EventType()), zap.Error(err))
		}
	}
	aggregate.ClearDomainEvents()
}

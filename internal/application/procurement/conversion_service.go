package procurement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/ordering"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
)

// ConversionService converts approved quote requests into purchase orders
type ConversionService struct {
	requestRepo      procurement.QuoteRequestRepository
	quoteRepo        procurement.VendorQuoteRepository
	orderRepo        ordering.PurchaseOrderRepository
	vendorRepo       partner.VendorRepository
	idempotencyStore shared.IdempotencyStore
	idempotencyCfg   shared.IdempotencyConfig
	eventPublisher   shared.EventPublisher
	logger           *zap.Logger
}

// NewConversionService creates a new conversion service
func NewConversionService(
	requestRepo procurement.QuoteRequestRepository,
	quoteRepo procurement.VendorQuoteRepository,
	orderRepo ordering.PurchaseOrderRepository,
	vendorRepo partner.VendorRepository,
	logger *zap.Logger,
) *ConversionService {
	return &ConversionService{
		requestRepo: requestRepo,
		quoteRepo:   quoteRepo,
		orderRepo:   orderRepo,
		vendorRepo:  vendorRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *ConversionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetIdempotencyStore enables Idempotency-Key replay detection on Convert
func (s *ConversionService) SetIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) {
	s.idempotencyStore = store
	s.idempotencyCfg = cfg
}

// Convert converts an approved quote request into a purchase order.
// The order takes its vendor, amounts and lines from the selected quote
// and its notes and funding source from the request. The order insert,
// order number allocation and the request's flip to converted happen in
// one transaction.
//
// idempotencyKey may be empty. A non-empty key that was already seen is
// answered with the existing order instead of a second conversion.
func (s *ConversionService) Convert(ctx context.Context, requestID uuid.UUID, idempotencyKey string) (*ConvertQuoteRequestResponse, error) {
	if replay, err := s.checkReplay(ctx, requestID, idempotencyKey); err != nil {
		return nil, err
	} else if replay != nil {
		return replay, nil
	}

	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status == procurement.QuoteRequestStatusConverted {
		return nil, shared.NewDomainError("INVALID_STATE", "Quote request has already been converted")
	}
	if request.Status != procurement.QuoteRequestStatusApproved {
		return nil, shared.NewDomainError("INVALID_STATE", "Can only convert approved quote requests")
	}

	quotes, err := s.quoteRepo.FindByRequestID(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	var selected *procurement.VendorQuote
	for i := range quotes {
		if quotes[i].Selected {
			selected = &quotes[i]
			break
		}
	}
	if selected == nil {
		s.logger.Error("Approved quote request has no selected quote",
			zap.String("request_id", request.ID.String()))
		return nil, shared.ErrInconsistentData
	}

	vendorNames, err := s.vendorRepo.DisplayNames(ctx, []uuid.UUID{selected.VendorID})
	if err != nil {
		return nil, err
	}

	order, err := ordering.NewPurchaseOrder(selected.VendorID, vendorNames[selected.VendorID],
		selected.TotalMoney(), request.ID, selected.ID)
	if err != nil {
		return nil, err
	}
	if err := order.SetShippingCost(selected.ShippingCost); err != nil {
		return nil, err
	}
	order.SetNotes(request.Notes)
	order.SetFundingSource(request.FundingSourceID)
	for _, line := range selected.Lines {
		if _, err := order.AddLine(line.Description, line.Quantity,
			line.UnitPrice, line.LineTotal, line.QuoteRequestLineID); err != nil {
			return nil, err
		}
	}

	if err := request.MarkConverted(order.ID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.CreateFromConversion(ctx, order, request); err != nil {
		s.logger.Error("Failed to convert quote request",
			zap.String("request_id", request.ID.String()), zap.Error(err))
		return nil, err
	}

	s.publishEvents(ctx, order)
	s.publishEvents(ctx, request)

	s.logger.Info("Quote request converted",
		zap.String("request_id", request.ID.String()),
		zap.String("request_number", request.RequestNumber),
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber))

	return &ConvertQuoteRequestResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
	}, nil
}

// checkReplay returns the existing order when the idempotency key has
// been seen before. A seen key without a persisted order means the
// earlier attempt failed, so the conversion proceeds.
func (s *ConversionService) checkReplay(ctx context.Context, requestID uuid.UUID, key string) (*ConvertQuoteRequestResponse, error) {
	if s.idempotencyStore == nil || !s.idempotencyCfg.Enabled || key == "" {
		return nil, nil
	}

	firstSeen, err := s.idempotencyStore.MarkProcessed(ctx, key, s.idempotencyCfg.TTL)
	if err != nil {
		s.logger.Warn("Idempotency store unavailable, proceeding without replay check",
			zap.Error(err))
		return nil, nil
	}
	if firstSeen {
		return nil, nil
	}

	order, err := s.orderRepo.FindByQuoteRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	s.logger.Info("Replayed conversion answered with existing order",
		zap.String("request_id", requestID.String()),
		zap.String("order_id", order.ID.String()))

	return &ConvertQuoteRequestResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
	}, nil
}

func (s *ConversionService) publishEvents(ctx context.Context, aggregate interface {
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

package ordering

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/ordering"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
)

// PurchaseOrderService handles purchase order queries and lifecycle
// operations after conversion
type PurchaseOrderService struct {
	orderRepo      ordering.PurchaseOrderRepository
	requestRepo    procurement.QuoteRequestRepository
	fundingRepo    partner.FundingSourceRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(
	orderRepo ordering.PurchaseOrderRepository,
	requestRepo procurement.QuoteRequestRepository,
	fundingRepo partner.FundingSourceRepository,
	logger *zap.Logger,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:   orderRepo,
		requestRepo: requestRepo,
		fundingRepo: fundingRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Get returns an order in full detail with its lines and the source
// request number
func (s *PurchaseOrderService) Get(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, order), nil
}

// GetByQuoteRequest returns the order converted from the given request
func (s *PurchaseOrderService) GetByQuoteRequest(ctx context.Context, requestID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByQuoteRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, order), nil
}

// List returns a paginated list of purchase orders
func (s *PurchaseOrderService) List(ctx context.Context, filter PurchaseOrderListFilter) (*shared.Paginated[PurchaseOrderListItemResponse], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != nil {
		status := ordering.PurchaseOrderStatus(*filter.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown purchase order status")
		}
		domainFilter.Filters["status"] = status.String()
	}
	if filter.VendorID != nil {
		domainFilter.Filters["vendor_id"] = *filter.VendorID
	}
	if filter.FundingSourceID != nil {
		domainFilter.Filters["funding_source_id"] = *filter.FundingSourceID
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := ToPurchaseOrderListItemResponses(orders)
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Submit marks a draft order as placed with the vendor
func (s *PurchaseOrderService) Submit(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, (*ordering.PurchaseOrder).Submit)
}

// Cancel cancels a draft order
func (s *PurchaseOrderService) Cancel(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, (*ordering.PurchaseOrder).Cancel)
}

func (s *PurchaseOrderService) transition(ctx context.Context, id uuid.UUID, apply func(*ordering.PurchaseOrder) error) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		s.logger.Error("Failed to save purchase order",
			zap.String("order_id", id.String()), zap.Error(err))
		return nil, err
	}

	s.publishEvents(ctx, order)

	s.logger.Info("Purchase order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("status", order.Status.String()))

	return s.buildResponse(ctx, order), nil
}

func (s *PurchaseOrderService) buildResponse(ctx context.Context, order *ordering.PurchaseOrder) *PurchaseOrderResponse {
	response := ToPurchaseOrderResponse(order)
	if request, err := s.requestRepo.FindByID(ctx, order.QuoteRequestID); err == nil {
		response.QuoteRequestNumber = request.RequestNumber
	}
	if order.FundingSourceID != nil {
		if source, err := s.fundingRepo.FindByID(ctx, *order.FundingSourceID); err == nil {
			response.FundingSourceName = source.Name
		}
	}
	return response
}

func (s *PurchaseOrderService) publishEvents(ctx context.Context, aggregate interface {
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

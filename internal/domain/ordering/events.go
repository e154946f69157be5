package ordering

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/shared"
)

// Aggregate type constant for PurchaseOrder
const AggregateTypePurchaseOrder = "PurchaseOrder"

// Ordering domain event types
const (
	EventTypePurchaseOrderCreated = "PurchaseOrderCreated"
)

// PurchaseOrderCreatedEvent is published when a purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	VendorID       uuid.UUID       `json:"vendor_id"`
	QuoteRequestID uuid.UUID       `json:"quote_request_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(order *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, order.ID),
		VendorID:        order.VendorID,
		QuoteRequestID:  order.QuoteRequestID,
		TotalAmount:     order.TotalAmount,
	}
}

package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

// PurchaseOrderStatus represents the fulfilment status of a purchase order
type PurchaseOrderStatus string

const (
	OrderStatusDraft     PurchaseOrderStatus = "DRAFT"     // Created, not yet placed with the vendor
	OrderStatusOrdered   PurchaseOrderStatus = "ORDERED"   // Placed with the vendor
	OrderStatusCancelled PurchaseOrderStatus = "CANCELLED" // Cancelled before placing
)

// IsValid checks if the status is valid
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusOrdered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// POLine is one ordered item on a purchase order
type POLine struct {
	shared.BaseEntity
	PurchaseOrderID    uuid.UUID
	Description        string
	OrderedQuantity    int
	ReceivedQuantity   int
	UnitCost           decimal.Decimal
	LineTotal          decimal.Decimal
	QuoteRequestLineID *uuid.UUID // originating request line, nil when the winning bid line had no counterpart
	Position           int
}

// PurchaseOrder is an order placed with a vendor. It is created by
// converting an approved quote request and lives as an independent
// aggregate from then on.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber     string // PO-<year>-NNNN, allocated on first persist
	Status          PurchaseOrderStatus
	VendorID        uuid.UUID
	VendorName      string // denormalised at conversion time
	TotalAmount     decimal.Decimal
	ShippingCost    *decimal.Decimal
	Notes           string
	FundingSourceID *uuid.UUID
	QuoteRequestID  uuid.UUID // source request
	VendorQuoteID   uuid.UUID // winning bid
	OrderDate       time.Time
	Lines           []POLine
}

// NewPurchaseOrder creates a new draft purchase order. The order number
// is allocated by the repository when the order is first persisted.
func NewPurchaseOrder(vendorID uuid.UUID, vendorName string, total valueobject.Money, quoteRequestID, vendorQuoteID uuid.UUID) (*PurchaseOrder, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR_ID", "Vendor ID cannot be empty")
	}
	if quoteRequestID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUEST_ID", "Quote request ID cannot be empty")
	}
	if vendorQuoteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_QUOTE_ID", "Vendor quote ID cannot be empty")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order total cannot be negative")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Status:            OrderStatusDraft,
		VendorID:          vendorID,
		VendorName:        strings.TrimSpace(vendorName),
		TotalAmount:       total.Amount(),
		QuoteRequestID:    quoteRequestID,
		VendorQuoteID:     vendorQuoteID,
		OrderDate:         time.Now(),
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// SetShippingCost copies the shipping cost quoted by the vendor
func (o *PurchaseOrder) SetShippingCost(cost *decimal.Decimal) error {
	if cost != nil && cost.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Shipping cost cannot be negative")
	}

	o.ShippingCost = cost
	o.Touch()
	o.IncrementVersion()

	return nil
}

// SetNotes copies the notes from the source request
func (o *PurchaseOrder) SetNotes(notes string) {
	o.Notes = notes
	o.Touch()
	o.IncrementVersion()
}

// SetFundingSource copies the funding source from the source request
func (o *PurchaseOrder) SetFundingSource(fundingSourceID *uuid.UUID) {
	o.FundingSourceID = fundingSourceID
	o.Touch()
	o.IncrementVersion()
}

// AddLine appends an ordered line. Received quantity starts at zero.
// quoteRequestLineID may be nil when the winning bid line carried no
// back-reference to a request line.
func (o *PurchaseOrder) AddLine(description string, quantity int, unitCost, lineTotal decimal.Decimal, quoteRequestLineID *uuid.UUID) (*POLine, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_LINE", "Line description cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_LINE", "Line quantity must be positive")
	}
	if unitCost.IsNegative() || lineTotal.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LINE", "Line amounts cannot be negative")
	}

	line := POLine{
		BaseEntity:         shared.NewBaseEntity(),
		PurchaseOrderID:    o.ID,
		Description:        description,
		OrderedQuantity:    quantity,
		ReceivedQuantity:   0,
		UnitCost:           unitCost,
		LineTotal:          lineTotal,
		QuoteRequestLineID: quoteRequestLineID,
		Position:           len(o.Lines),
	}

	o.Lines = append(o.Lines, line)
	o.Touch()
	o.IncrementVersion()

	return &o.Lines[len(o.Lines)-1], nil
}

// Submit marks the order as placed with the vendor
func (o *PurchaseOrder) Submit() error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Can only submit draft purchase orders")
	}

	o.Status = OrderStatusOrdered
	o.Touch()
	o.IncrementVersion()

	return nil
}

// Cancel cancels a draft order
func (o *PurchaseOrder) Cancel() error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Can only cancel draft purchase orders")
	}

	o.Status = OrderStatusCancelled
	o.Touch()
	o.IncrementVersion()

	return nil
}

// TotalMoney returns the order total as a Money value object
func (o *PurchaseOrder) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}

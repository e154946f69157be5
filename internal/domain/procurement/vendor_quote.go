package procurement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

// VendorQuoteLine is one priced item on a vendor quote
type VendorQuoteLine struct {
	shared.BaseEntity
	VendorQuoteID      uuid.UUID
	Description        string
	Quantity           int
	UnitPrice          decimal.Decimal
	LineTotal          decimal.Decimal
	QuoteRequestLineID *uuid.UUID // back-reference to the request line, nil when the bid line has no counterpart
	Position           int
}

// VendorQuote is one vendor's priced response to a quote request.
// Many quotes compete per request; at most one carries Selected = true.
type VendorQuote struct {
	shared.BaseAggregateRoot
	QuoteRequestID uuid.UUID
	VendorID       uuid.UUID
	TotalAmount    decimal.Decimal
	ShippingCost   *decimal.Decimal
	LeadTimeDays   *int
	Selected       bool
	Notes          string
	Lines          []VendorQuoteLine
}

// NewVendorQuote creates a new unselected vendor quote
func NewVendorQuote(quoteRequestID, vendorID uuid.UUID, total valueobject.Money) (*VendorQuote, error) {
	if quoteRequestID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUEST_ID", "Quote request ID cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR_ID", "Vendor ID cannot be empty")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Quote total cannot be negative")
	}

	quote := &VendorQuote{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		QuoteRequestID:    quoteRequestID,
		VendorID:          vendorID,
		TotalAmount:       total.Amount(),
		Selected:          false,
	}

	quote.AddDomainEvent(NewVendorQuoteRecordedEvent(quote))

	return quote, nil
}

// SetShippingCost sets the quoted shipping cost
func (v *VendorQuote) SetShippingCost(cost valueobject.Money) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Shipping cost cannot be negative")
	}

	amount := cost.Amount()
	v.ShippingCost = &amount
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetLeadTime sets the quoted lead time in days
func (v *VendorQuote) SetLeadTime(days int) error {
	if days < 0 {
		return shared.NewDomainError("INVALID_LEAD_TIME", "Lead time cannot be negative")
	}

	v.LeadTimeDays = &days
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetNotes sets free-form notes on the quote
func (v *VendorQuote) SetNotes(notes string) {
	v.Notes = notes
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// AddLine appends a priced line to the quote.
// quoteRequestLineID links the bid line back to the originating request
// line and may be nil when the vendor quoted something unrequested.
func (v *VendorQuote) AddLine(description string, quantity int, unitPrice valueobject.Money, quoteRequestLineID *uuid.UUID) (*VendorQuoteLine, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_LINE", "Line description cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_LINE", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LINE", "Unit price cannot be negative")
	}

	line := VendorQuoteLine{
		BaseEntity:         shared.NewBaseEntity(),
		VendorQuoteID:      v.ID,
		Description:        description,
		Quantity:           quantity,
		UnitPrice:          unitPrice.Amount(),
		LineTotal:          unitPrice.MultiplyByInt(int64(quantity)).Amount(),
		QuoteRequestLineID: quoteRequestLineID,
		Position:           len(v.Lines),
	}

	v.Lines = append(v.Lines, line)
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return &v.Lines[len(v.Lines)-1], nil
}

// MarkSelected flags this quote as the winning bid.
// Exclusivity across sibling quotes is enforced by the repository in
// one transaction with the clear of all siblings.
func (v *VendorQuote) MarkSelected() {
	if v.Selected {
		return
	}

	v.Selected = true
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVendorQuoteSelectedEvent(v))
}

// ClearSelected removes the winning flag
func (v *VendorQuote) ClearSelected() {
	if !v.Selected {
		return
	}

	v.Selected = false
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// TotalMoney returns the quote total as a Money value object
func (v *VendorQuote) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(v.TotalAmount)
}

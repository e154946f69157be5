package procurement

import (
	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeQuoteRequest = "QuoteRequest"
	AggregateTypeVendorQuote  = "VendorQuote"
)

// Procurement domain event types
const (
	EventTypeQuoteRequestCreated        = "QuoteRequestCreated"
	EventTypeQuoteRequestSent           = "QuoteRequestSent"
	EventTypeQuoteRequestQuotesReceived = "QuoteRequestQuotesReceived"
	EventTypeQuoteRequestApproved       = "QuoteRequestApproved"
	EventTypeQuoteRequestDenied         = "QuoteRequestDenied"
	EventTypeQuoteRequestConverted      = "QuoteRequestConverted"
	EventTypeVendorQuoteRecorded        = "VendorQuoteRecorded"
	EventTypeVendorQuoteSelected        = "VendorQuoteSelected"
)

// QuoteRequestCreatedEvent is published when a quote request is created
type QuoteRequestCreatedEvent struct {
	shared.BaseDomainEvent
	RequesterID uuid.UUID `json:"requester_id"`
	LineCount   int       `json:"line_count"`
}

// NewQuoteRequestCreatedEvent creates a new QuoteRequestCreatedEvent
func NewQuoteRequestCreatedEvent(request *QuoteRequest) *QuoteRequestCreatedEvent {
	return &QuoteRequestCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteRequestCreated, AggregateTypeQuoteRequest, request.ID),
		RequesterID:     request.RequesterID,
		LineCount:       len(request.Lines),
	}
}

// QuoteRequestSentEvent is published when a quote request is sent to vendors
type QuoteRequestSentEvent struct {
	shared.BaseDomainEvent
	RequestNumber string `json:"request_number"`
}

// NewQuoteRequestSentEvent creates a new QuoteRequestSentEvent
func NewQuoteRequestSentEvent(request *QuoteRequest) *QuoteRequestSentEvent {
	return &QuoteRequestSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteRequestSent, AggregateTypeQuoteRequest, request.ID),
		RequestNumber:   request.RequestNumber,
	}
}

// QuoteRequestQuotesReceivedEvent is published when the first vendor quote arrives
type QuoteRequestQuotesReceivedEvent struct {
	shared.BaseDomainEvent
	RequestNumber string `json:"request_number"`
}

// NewQuoteRequestQuotesReceivedEvent creates a new QuoteRequestQuotesReceivedEvent
func NewQuoteRequestQuotesReceivedEvent(request *QuoteRequest) *QuoteRequestQuotesReceivedEvent {
	return &QuoteRequestQuotesReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteRequestQuotesReceived, AggregateTypeQuoteRequest, request.ID),
		RequestNumber:   request.RequestNumber,
	}
}

// QuoteRequestApprovedEvent is published when a quote request is approved
type QuoteRequestApprovedEvent struct {
	shared.BaseDomainEvent
	RequestNumber string    `json:"request_number"`
	ApproverID    uuid.UUID `json:"approver_id"`
}

// NewQuoteRequestApprovedEvent creates a new QuoteRequestApprovedEvent
func NewQuoteRequestApprovedEvent(request *QuoteRequest) *QuoteRequestApprovedEvent {
	event := &QuoteRequestApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteRequestApproved, AggregateTypeQuoteRequest, request.ID),
		RequestNumber:   request.RequestNumber,
	}
	if request.ApproverID != nil {
		event.ApproverID = *request.ApproverID
	}
	return event
}

// QuoteRequestDeniedEvent is published when a quote request is denied
type QuoteRequestDeniedEvent struct {
	shared.BaseDomainEvent
	RequestNumber string    `json:"request_number"`
	DenierID      uuid.UUID `json:"denier_id"`
	Reason        string    `json:"reason,omitempty"`
}

// NewQuoteRequestDeniedEvent creates a new QuoteRequestDeniedEvent
func NewQuoteRequestDeniedEvent(request *QuoteRequest) *QuoteRequestDeniedEvent {
	event := &QuoteRequestDeniedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteRequestDenied, AggregateTypeQuoteRequest, request.ID),
		RequestNumber:   request.RequestNumber,
		Reason:          request.DenialReason,
	}
	if request.DenierID != nil {
		event.DenierID = *request.DenierID
	}
	return event
}

// QuoteRequestConvertedEvent is published when a quote request becomes a purchase order
type QuoteRequestConvertedEvent struct {
	shared.BaseDomainEvent
	RequestNumber   string    `json:"request_number"`
	PurchaseOrderID uuid.UUID `json:"purchase_order_id"`
}

// NewQuoteRequestConvertedEvent creates a new QuoteRequestConvertedEvent
func NewQuoteRequestConvertedEvent(request *QuoteRequest, purchaseOrderID uuid.UUID) *QuoteRequestConvertedEvent {
	return &QuoteRequestConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteRequestConverted, AggregateTypeQuoteRequest, request.ID),
		RequestNumber:   request.RequestNumber,
		PurchaseOrderID: purchaseOrderID,
	}
}

// VendorQuoteRecordedEvent is published when a vendor quote is recorded
type VendorQuoteRecordedEvent struct {
	shared.BaseDomainEvent
	QuoteRequestID uuid.UUID `json:"quote_request_id"`
	VendorID       uuid.UUID `json:"vendor_id"`
}

// NewVendorQuoteRecordedEvent creates a new VendorQuoteRecordedEvent
func NewVendorQuoteRecordedEvent(quote *VendorQuote) *VendorQuoteRecordedEvent {
	return &VendorQuoteRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorQuoteRecorded, AggregateTypeVendorQuote, quote.ID),
		QuoteRequestID:  quote.QuoteRequestID,
		VendorID:        quote.VendorID,
	}
}

// VendorQuoteSelectedEvent is published when a quote is chosen as the winning bid
type VendorQuoteSelectedEvent struct {
	shared.BaseDomainEvent
	QuoteRequestID uuid.UUID `json:"quote_request_id"`
	VendorID       uuid.UUID `json:"vendor_id"`
}

// NewVendorQuoteSelectedEvent creates a new VendorQuoteSelectedEvent
func NewVendorQuoteSelectedEvent(quote *VendorQuote) *VendorQuoteSelectedEvent {
	return &VendorQuoteSelectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorQuoteSelected, AggregateTypeVendorQuote, quote.ID),
		QuoteRequestID:  quote.QuoteRequestID,
		VendorID:        quote.VendorID,
	}
}

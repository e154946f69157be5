package procurement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/shared"
)

// QuoteRequestStatus represents the lifecycle status of a quote request
type QuoteRequestStatus string

const (
	QuoteRequestStatusDraft          QuoteRequestStatus = "DRAFT"           // Being edited, not yet sent to vendors
	QuoteRequestStatusSent           QuoteRequestStatus = "SENT"            // Sent to vendors, awaiting bids
	QuoteRequestStatusQuotesReceived QuoteRequestStatus = "QUOTES_RECEIVED" // At least one vendor quote recorded
	QuoteRequestStatusApproved       QuoteRequestStatus = "APPROVED"        // Approved with a selected quote, awaiting conversion
	QuoteRequestStatusDenied         QuoteRequestStatus = "DENIED"          // Denied, terminal
	QuoteRequestStatusConverted      QuoteRequestStatus = "CONVERTED"       // Converted into a purchase order, terminal
)

// IsValid checks if the status is valid
func (s QuoteRequestStatus) IsValid() bool {
	switch s {
	case QuoteRequestStatusDraft, QuoteRequestStatusSent, QuoteRequestStatusQuotesReceived,
		QuoteRequestStatusApproved, QuoteRequestStatusDenied, QuoteRequestStatusConverted:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s QuoteRequestStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further transition is defined from this status
func (s QuoteRequestStatus) IsTerminal() bool {
	return s == QuoteRequestStatusDenied || s == QuoteRequestStatusConverted
}

// IsMutable returns true if header and lines may still be edited
func (s QuoteRequestStatus) IsMutable() bool {
	return s == QuoteRequestStatusDraft || s == QuoteRequestStatusSent
}

// CanTransitionTo checks if a transition to the target status is allowed
func (s QuoteRequestStatus) CanTransitionTo(target QuoteRequestStatus) bool {
	switch s {
	case QuoteRequestStatusDraft:
		return target == QuoteRequestStatusSent || target == QuoteRequestStatusDenied
	case QuoteRequestStatusSent:
		return target == QuoteRequestStatusQuotesReceived ||
			target == QuoteRequestStatusApproved ||
			target == QuoteRequestStatusDenied
	case QuoteRequestStatusQuotesReceived:
		return target == QuoteRequestStatusApproved || target == QuoteRequestStatusDenied
	case QuoteRequestStatusApproved:
		return target == QuoteRequestStatusConverted
	default:
		return false
	}
}

// QuoteRequestLine is one requested item on a quote request
type QuoteRequestLine struct {
	shared.BaseEntity
	QuoteRequestID     uuid.UUID
	Description        string
	Quantity           int
	CatalogItemID      *uuid.UUID
	ItemVariantID      *uuid.UUID
	EstimatedUnitPrice *decimal.Decimal
	Position           int
}

// LineInput carries the caller-supplied fields for one request line
type LineInput struct {
	Description        string
	Quantity           int
	CatalogItemID      *uuid.UUID
	ItemVariantID      *uuid.UUID
	EstimatedUnitPrice *decimal.Decimal
}

// QuoteRequest is an internal ask for vendor pricing on a set of line items
// It is the aggregate root of the procurement pipeline
type QuoteRequest struct {
	shared.BaseAggregateRoot
	RequestNumber   string // QR-<year>-NNN, allocated on first persist
	Status          QuoteRequestStatus
	RequesterID     uuid.UUID
	FundingSourceID *uuid.UUID
	Notes           string
	DueDate         *time.Time
	ApproverID      *uuid.UUID
	DenierID        *uuid.UUID
	DenialReason    string
	SentAt          *time.Time
	ApprovedAt      *time.Time
	DeniedAt        *time.Time
	PurchaseOrderID *uuid.UUID // set once converted
	Lines           []QuoteRequestLine
}

// NewQuoteRequest creates a new draft quote request with the given lines.
// At least one line is required. The request number is allocated by the
// repository when the request is first persisted.
func NewQuoteRequest(requesterID uuid.UUID, lines []LineInput) (*QuoteRequest, error) {
	if requesterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requester ID cannot be empty")
	}

	request := &QuoteRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Status:            QuoteRequestStatusDraft,
		RequesterID:       requesterID,
	}

	if err := request.ReplaceLines(lines); err != nil {
		return nil, err
	}

	request.AddDomainEvent(NewQuoteRequestCreatedEvent(request))

	return request, nil
}

// ReplaceLines replaces the full line set from the supplied array.
// Positions are regenerated from array order.
func (q *QuoteRequest) ReplaceLines(lines []LineInput) error {
	if !q.Status.IsMutable() {
		return shared.NewDomainError("INVALID_STATE",
			"Quote request lines can only be edited while draft or sent")
	}
	if len(lines) == 0 {
		return shared.NewDomainError("EMPTY_LINES", "Quote request must have at least one line")
	}

	newLines := make([]QuoteRequestLine, 0, len(lines))
	for i, input := range lines {
		line, err := newQuoteRequestLine(q.ID, input, i)
		if err != nil {
			return err
		}
		newLines = append(newLines, *line)
	}

	q.Lines = newLines
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

func newQuoteRequestLine(requestID uuid.UUID, input LineInput, position int) (*QuoteRequestLine, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_LINE", "Line description cannot be empty")
	}
	if input.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_LINE", "Line quantity must be positive")
	}
	if input.EstimatedUnitPrice != nil && input.EstimatedUnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LINE", "Estimated unit price cannot be negative")
	}

	return &QuoteRequestLine{
		BaseEntity:         shared.NewBaseEntity(),
		QuoteRequestID:     requestID,
		Description:        description,
		Quantity:           input.Quantity,
		CatalogItemID:      input.CatalogItemID,
		ItemVariantID:      input.ItemVariantID,
		EstimatedUnitPrice: input.EstimatedUnitPrice,
		Position:           position,
	}, nil
}

// SetNotes sets the free-form notes
func (q *QuoteRequest) SetNotes(notes string) error {
	if !q.Status.IsMutable() {
		return shared.NewDomainError("INVALID_STATE",
			"Quote request can only be edited while draft or sent")
	}

	q.Notes = notes
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// SetDueDate sets the date bids are wanted by
func (q *QuoteRequest) SetDueDate(dueDate *time.Time) error {
	if !q.Status.IsMutable() {
		return shared.NewDomainError("INVALID_STATE",
			"Quote request can only be edited while draft or sent")
	}

	q.DueDate = dueDate
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// SetFundingSource sets the funding source the purchase would be charged against
func (q *QuoteRequest) SetFundingSource(fundingSourceID *uuid.UUID) error {
	if !q.Status.IsMutable() {
		return shared.NewDomainError("INVALID_STATE",
			"Quote request can only be edited while draft or sent")
	}

	q.FundingSourceID = fundingSourceID
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// Send marks the request as sent to vendors
func (q *QuoteRequest) Send() error {
	if q.Status != QuoteRequestStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Can only send draft quote requests")
	}
	if len(q.Lines) == 0 {
		return shared.NewDomainError("EMPTY_LINES", "Quote request must have at least one line")
	}

	now := time.Now()
	q.Status = QuoteRequestStatusSent
	q.SentAt = &now
	q.UpdatedAt = now
	q.IncrementVersion()

	q.AddDomainEvent(NewQuoteRequestSentEvent(q))

	return nil
}

// MarkQuotesReceived records that the first vendor quote has arrived
func (q *QuoteRequest) MarkQuotesReceived() error {
	if q.Status == QuoteRequestStatusQuotesReceived {
		return nil
	}
	if q.Status != QuoteRequestStatusSent {
		return shared.NewDomainError("INVALID_STATE",
			"Quotes can only be received on sent quote requests")
	}

	q.Status = QuoteRequestStatusQuotesReceived
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	q.AddDomainEvent(NewQuoteRequestQuotesReceivedEvent(q))

	return nil
}

// Approve approves the request. The caller is responsible for having
// validated and selected the winning quote first.
func (q *QuoteRequest) Approve(approverID uuid.UUID) error {
	if !q.Status.CanTransitionTo(QuoteRequestStatusApproved) {
		return shared.NewDomainError("INVALID_STATE",
			"Can only approve quote requests that are sent or have quotes received")
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Approver ID cannot be empty")
	}

	now := time.Now()
	q.Status = QuoteRequestStatusApproved
	q.ApproverID = &approverID
	q.ApprovedAt = &now
	q.UpdatedAt = now
	q.IncrementVersion()

	q.AddDomainEvent(NewQuoteRequestApprovedEvent(q))

	return nil
}

// Deny denies the request with an optional reason
func (q *QuoteRequest) Deny(denierID uuid.UUID, reason string) error {
	if !q.Status.CanTransitionTo(QuoteRequestStatusDenied) {
		return shared.NewDomainError("INVALID_STATE",
			"Can only deny quote requests that are draft, sent or have quotes received")
	}
	if denierID == uuid.Nil {
		return shared.NewDomainError("INVALID_DENIER", "Denier ID cannot be empty")
	}

	now := time.Now()
	q.Status = QuoteRequestStatusDenied
	q.DenierID = &denierID
	q.DenialReason = strings.TrimSpace(reason)
	q.DeniedAt = &now
	q.UpdatedAt = now
	q.IncrementVersion()

	q.AddDomainEvent(NewQuoteRequestDeniedEvent(q))

	return nil
}

// MarkConverted flips the request to its terminal converted status,
// recording the purchase order it became
func (q *QuoteRequest) MarkConverted(purchaseOrderID uuid.UUID) error {
	if q.Status != QuoteRequestStatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Can only convert approved quote requests")
	}
	if purchaseOrderID == uuid.Nil {
		return shared.NewDomainError("INVALID_ORDER_ID", "Purchase order ID cannot be empty")
	}

	q.Status = QuoteRequestStatusConverted
	q.PurchaseOrderID = &purchaseOrderID
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	q.AddDomainEvent(NewQuoteRequestConvertedEvent(q, purchaseOrderID))

	return nil
}

// FindLine returns the line with the given ID, nil if absent
func (q *QuoteRequest) FindLine(lineID uuid.UUID) *QuoteRequestLine {
	for i := range q.Lines {
		if q.Lines[i].ID == lineID {
			return &q.Lines[i]
		}
	}
	return nil
}

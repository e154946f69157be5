package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/procurement"
)

// ==================== Quote Request DTOs ====================

// QuoteRequestLineInput represents one requested line in create/update requests
type QuoteRequestLineInput struct {
	Description        string           `json:"description" binding:"required,notblank,max=500"`
	Quantity           int              `json:"quantity" binding:"required,gt=0"`
	CatalogItemID      *uuid.UUID       `json:"catalog_item_id"`
	ItemVariantID      *uuid.UUID       `json:"item_variant_id"`
	EstimatedUnitPrice *decimal.Decimal `json:"estimated_unit_price"`
}

// CreateQuoteRequestRequest represents a request to create a quote request
type CreateQuoteRequestRequest struct {
	Lines           []QuoteRequestLineInput `json:"lines" binding:"required,min=1,dive"`
	Notes           string                  `json:"notes" binding:"max=5000"`
	DueDate         *time.Time              `json:"due_date"`
	FundingSourceID *uuid.UUID              `json:"funding_source_id"`
}

// UpdateQuoteRequestRequest represents a request to update a quote request.
// Nil fields are left unchanged; a non-nil Lines replaces the full line set.
type UpdateQuoteRequestRequest struct {
	Lines           []QuoteRequestLineInput `json:"lines" binding:"omitempty,min=1,dive"`
	Notes           *string                 `json:"notes" binding:"omitempty,max=5000"`
	DueDate         *time.Time              `json:"due_date"`
	FundingSourceID *uuid.UUID              `json:"funding_source_id"`
}

// ApproveQuoteRequestRequest carries the winning quote for approval
type ApproveQuoteRequestRequest struct {
	SelectedQuoteID uuid.UUID `json:"selected_quote_id" binding:"required"`
}

// DenyQuoteRequestRequest carries the optional denial reason
type DenyQuoteRequestRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// QuoteRequestListFilter represents filter options for the quote request list
type QuoteRequestListFilter struct {
	Search          string     `form:"search"`
	Status          *string    `form:"status"`
	RequesterID     *uuid.UUID `form:"requester_id"`
	FundingSourceID *uuid.UUID `form:"funding_source_id"`
	Page            int        `form:"page" binding:"omitempty,min=1"`
	PageSize        int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy         string     `form:"order_by"`
	OrderDir        string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// QuoteRequestLineResponse represents a request line in API responses
type QuoteRequestLineResponse struct {
	ID                 uuid.UUID        `json:"id"`
	Description        string           `json:"description"`
	Quantity           int              `json:"quantity"`
	CatalogItemID      *uuid.UUID       `json:"catalog_item_id,omitempty"`
	CatalogItemName    string           `json:"catalog_item_name,omitempty"`
	ItemVariantID      *uuid.UUID       `json:"item_variant_id,omitempty"`
	ItemVariantName    string           `json:"item_variant_name,omitempty"`
	EstimatedUnitPrice *decimal.Decimal `json:"estimated_unit_price,omitempty"`
	Position           int              `json:"position"`
}

// QuoteRequestResponse represents a quote request in detail responses
type QuoteRequestResponse struct {
	ID                uuid.UUID                  `json:"id"`
	RequestNumber     string                     `json:"request_number"`
	Status            string                     `json:"status"`
	RequesterID       uuid.UUID                  `json:"requester_id"`
	RequesterName     string                     `json:"requester_name,omitempty"`
	FundingSourceID   *uuid.UUID                 `json:"funding_source_id,omitempty"`
	FundingSourceName string                     `json:"funding_source_name,omitempty"`
	Notes             string                     `json:"notes,omitempty"`
	DueDate           *time.Time                 `json:"due_date,omitempty"`
	ApproverID        *uuid.UUID                 `json:"approver_id,omitempty"`
	DenierID          *uuid.UUID                 `json:"denier_id,omitempty"`
	DenialReason      string                     `json:"denial_reason,omitempty"`
	SentAt            *time.Time                 `json:"sent_at,omitempty"`
	ApprovedAt        *time.Time                 `json:"approved_at,omitempty"`
	DeniedAt          *time.Time                 `json:"denied_at,omitempty"`
	PurchaseOrderID   *uuid.UUID                 `json:"purchase_order_id,omitempty"`
	Lines             []QuoteRequestLineResponse `json:"lines"`
	Quotes            []VendorQuoteResponse      `json:"quotes,omitempty"`
	CreatedAt         time.Time                  `json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
	Version           int                        `json:"version"`
}

// QuoteRequestListItemResponse represents a quote request in list responses
type QuoteRequestListItemResponse struct {
	ID              uuid.UUID  `json:"id"`
	RequestNumber   string     `json:"request_number"`
	Status          string     `json:"status"`
	RequesterID     uuid.UUID  `json:"requester_id"`
	FundingSourceID *uuid.UUID `json:"funding_source_id,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	SentAt          *time.Time `json:"sent_at,omitempty"`
	QuoteCount      int64      `json:"quote_count"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ==================== Vendor Quote DTOs ====================

// VendorQuoteLineInput represents one priced line in a record-quote request
type VendorQuoteLineInput struct {
	Description        string          `json:"description" binding:"required,notblank,max=500"`
	Quantity           int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice          decimal.Decimal `json:"unit_price" binding:"required"`
	QuoteRequestLineID *uuid.UUID      `json:"quote_request_line_id"`
}

// RecordVendorQuoteRequest represents a request to record a vendor's bid
type RecordVendorQuoteRequest struct {
	VendorID     uuid.UUID              `json:"vendor_id" binding:"required"`
	TotalAmount  decimal.Decimal        `json:"total_amount" binding:"required"`
	ShippingCost *decimal.Decimal       `json:"shipping_cost"`
	LeadTimeDays *int                   `json:"lead_time_days" binding:"omitempty,min=0"`
	Notes        string                 `json:"notes" binding:"max=5000"`
	Lines        []VendorQuoteLineInput `json:"lines" binding:"omitempty,dive"`
}

// VendorQuoteLineResponse represents a quote line in API responses
type VendorQuoteLineResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Description        string          `json:"description"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	LineTotal          decimal.Decimal `json:"line_total"`
	QuoteRequestLineID *uuid.UUID      `json:"quote_request_line_id,omitempty"`
	Position           int             `json:"position"`
}

// VendorQuoteResponse represents a vendor quote in API responses
type VendorQuoteResponse struct {
	ID           uuid.UUID                 `json:"id"`
	VendorID     uuid.UUID                 `json:"vendor_id"`
	VendorName   string                    `json:"vendor_name,omitempty"`
	TotalAmount  decimal.Decimal           `json:"total_amount"`
	ShippingCost *decimal.Decimal          `json:"shipping_cost,omitempty"`
	LeadTimeDays *int                      `json:"lead_time_days,omitempty"`
	Selected     bool                      `json:"selected"`
	Notes        string                    `json:"notes,omitempty"`
	Lines        []VendorQuoteLineResponse `json:"lines"`
	CreatedAt    time.Time                 `json:"created_at"`
}

// ConvertQuoteRequestResponse carries the identity of the created order
type ConvertQuoteRequestResponse struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
}

// ==================== Mapping helpers ====================

// ToQuoteRequestLineResponses maps domain lines to API responses,
// resolving catalog names from the supplied lookup maps
func ToQuoteRequestLineResponses(lines []procurement.QuoteRequestLine, itemNames, variantNames map[uuid.UUID]string) []QuoteRequestLineResponse {
	responses := make([]QuoteRequestLineResponse, len(lines))
	for i, line := range lines {
		response := QuoteRequestLineResponse{
			ID:                 line.ID,
			Description:        line.Description,
			Quantity:           line.Quantity,
			CatalogItemID:      line.CatalogItemID,
			ItemVariantID:      line.ItemVariantID,
			EstimatedUnitPrice: line.EstimatedUnitPrice,
			Position:           line.Position,
		}
		if line.CatalogItemID != nil {
			response.CatalogItemName = itemNames[*line.CatalogItemID]
		}
		if line.ItemVariantID != nil {
			response.ItemVariantName = variantNames[*line.ItemVariantID]
		}
		responses[i] = response
	}
	return responses
}

// ToVendorQuoteResponse maps a domain quote to its API response
func ToVendorQuoteResponse(quote *procurement.VendorQuote, vendorName string) VendorQuoteResponse {
	lines := make([]VendorQuoteLineResponse, len(quote.Lines))
	for i, line := range quote.Lines {
		lines[i] = VendorQuoteLineResponse{
			ID:                 line.ID,
			Description:        line.Description,
			Quantity:           line.Quantity,
			UnitPrice:          line.UnitPrice,
			LineTotal:          line.LineTotal,
			QuoteRequestLineID: line.QuoteRequestLineID,
			Position:           line.Position,
		}
	}
	return VendorQuoteResponse{
		ID:           quote.ID,
		VendorID:     quote.VendorID,
		VendorName:   vendorName,
		TotalAmount:  quote.TotalAmount,
		ShippingCost: quote.ShippingCost,
		LeadTimeDays: quote.LeadTimeDays,
		Selected:     quote.Selected,
		Notes:        quote.Notes,
		Lines:        lines,
		CreatedAt:    quote.CreatedAt,
	}
}

// ToQuoteRequestListItemResponses maps domain requests to list responses
func ToQuoteRequestListItemResponses(requests []procurement.QuoteRequest, quoteCounts map[uuid.UUID]int64) []QuoteRequestListItemResponse {
	responses := make([]QuoteRequestListItemResponse, len(requests))
	for i, request := range requests {
		responses[i] = QuoteRequestListItemResponse{
			ID:              request.ID,
			RequestNumber:   request.RequestNumber,
			Status:          request.Status.String(),
			RequesterID:     request.RequesterID,
			FundingSourceID: request.FundingSourceID,
			DueDate:         request.DueDate,
			SentAt:          request.SentAt,
			QuoteCount:      quoteCounts[request.ID],
			CreatedAt:       request.CreatedAt,
			UpdatedAt:       request.UpdatedAt,
		}
	}
	return responses
}

package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/ordering"
)

// PurchaseOrderListFilter represents filter options for the order list
type PurchaseOrderListFilter struct {
	Status          *string    `form:"status"`
	VendorID        *uuid.UUID `form:"vendor_id"`
	FundingSourceID *uuid.UUID `form:"funding_source_id"`
	Page            int        `form:"page" binding:"omitempty,min=1"`
	PageSize        int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy         string     `form:"order_by"`
	OrderDir        string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// POLineResponse represents an order line in API responses
type POLineResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Description        string          `json:"description"`
	OrderedQuantity    int             `json:"ordered_quantity"`
	ReceivedQuantity   int             `json:"received_quantity"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	LineTotal          decimal.Decimal `json:"line_total"`
	QuoteRequestLineID *uuid.UUID      `json:"quote_request_line_id,omitempty"`
	Position           int             `json:"position"`
}

// PurchaseOrderResponse represents a purchase order in detail responses
type PurchaseOrderResponse struct {
	ID                 uuid.UUID        `json:"id"`
	OrderNumber        string           `json:"order_number"`
	Status             string           `json:"status"`
	VendorID           uuid.UUID        `json:"vendor_id"`
	VendorName         string           `json:"vendor_name"`
	TotalAmount        decimal.Decimal  `json:"total_amount"`
	ShippingCost       *decimal.Decimal `json:"shipping_cost,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	FundingSourceID    *uuid.UUID       `json:"funding_source_id,omitempty"`
	FundingSourceName  string           `json:"funding_source_name,omitempty"`
	QuoteRequestID     uuid.UUID        `json:"quote_request_id"`
	QuoteRequestNumber string           `json:"quote_request_number,omitempty"`
	VendorQuoteID      uuid.UUID        `json:"vendor_quote_id"`
	OrderDate          time.Time        `json:"order_date"`
	Lines              []POLineResponse `json:"lines"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	Version            int              `json:"version"`
}

// PurchaseOrderListItemResponse represents an order in list responses
type PurchaseOrderListItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	OrderNumber    string          `json:"order_number"`
	Status         string          `json:"status"`
	VendorID       uuid.UUID       `json:"vendor_id"`
	VendorName     string          `json:"vendor_name"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	QuoteRequestID uuid.UUID       `json:"quote_request_id"`
	OrderDate      time.Time       `json:"order_date"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToPurchaseOrderResponse maps a domain order to its detail response
func ToPurchaseOrderResponse(order *ordering.PurchaseOrder) *PurchaseOrderResponse {
	lines := make([]POLineResponse, len(order.Lines))
	for i, line := range order.Lines {
		lines[i] = POLineResponse{
			ID:                 line.ID,
			Description:        line.Description,
			OrderedQuantity:    line.OrderedQuantity,
			ReceivedQuantity:   line.ReceivedQuantity,
			UnitCost:           line.UnitCost,
			LineTotal:          line.LineTotal,
			QuoteRequestLineID: line.QuoteRequestLineID,
			Position:           line.Position,
		}
	}
	return &PurchaseOrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Status:          order.Status.String(),
		VendorID:        order.VendorID,
		VendorName:      order.VendorName,
		TotalAmount:     order.TotalAmount,
		ShippingCost:    order.ShippingCost,
		Notes:           order.Notes,
		FundingSourceID: order.FundingSourceID,
		QuoteRequestID:  order.QuoteRequestID,
		VendorQuoteID:   order.VendorQuoteID,
		OrderDate:       order.OrderDate,
		Lines:           lines,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Version:         order.Version,
	}
}

// ToPurchaseOrderListItemResponses maps domain orders to list responses
func ToPurchaseOrderListItemResponses(orders []ordering.PurchaseOrder) []PurchaseOrderListItemResponse {
	responses := make([]PurchaseOrderListItemResponse, len(orders))
	for i, order := range orders {
		responses[i] = PurchaseOrderListItemResponse{
			ID:             order.ID,
			OrderNumber:    order.OrderNumber,
			Status:         order.Status.String(),
			VendorID:       order.VendorID,
			VendorName:     order.VendorName,
			TotalAmount:    order.TotalAmount,
			QuoteRequestID: order.QuoteRequestID,
			OrderDate:      order.OrderDate,
			CreatedAt:      order.CreatedAt,
		}
	}
	return responses
}

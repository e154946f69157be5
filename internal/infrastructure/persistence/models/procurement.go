package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/procurement"
)

// QuoteRequestModel is the persistence model for the QuoteRequest aggregate root.
type QuoteRequestModel struct {
	AggregateModel
	RequestNumber   string                        `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status          procurement.QuoteRequestStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	RequesterID     uuid.UUID                     `gorm:"type:uuid;not null;index"`
	FundingSourceID *uuid.UUID                    `gorm:"type:uuid;index"`
	Notes           string                        `gorm:"type:text"`
	DueDate         *time.Time
	ApproverID      *uuid.UUID `gorm:"type:uuid"`
	DenierID        *uuid.UUID `gorm:"type:uuid"`
	DenialReason    string     `gorm:"type:varchar(500)"`
	SentAt          *time.Time `gorm:"index"`
	ApprovedAt      *time.Time
	DeniedAt        *time.Time
	PurchaseOrderID *uuid.UUID              `gorm:"type:uuid;index"`
	Lines           []QuoteRequestLineModel `gorm:"foreignKey:QuoteRequestID;references:ID"`
}

// TableName returns the table name for GORM
func (QuoteRequestModel) TableName() string {
	return "quote_requests"
}

// ToDomain converts the persistence model to a domain QuoteRequest entity.
func (m *QuoteRequestModel) ToDomain() *procurement.QuoteRequest {
	request := &procurement.QuoteRequest{
		RequestNumber:   m.RequestNumber,
		Status:          m.Status,
		RequesterID:     m.RequesterID,
		FundingSourceID: m.FundingSourceID,
		Notes:           m.Notes,
		DueDate:         m.DueDate,
		ApproverID:      m.ApproverID,
		DenierID:        m.DenierID,
		DenialReason:    m.DenialReason,
		SentAt:          m.SentAt,
		ApprovedAt:      m.ApprovedAt,
		DeniedAt:        m.DeniedAt,
		PurchaseOrderID: m.PurchaseOrderID,
		Lines:           make([]procurement.QuoteRequestLine, len(m.Lines)),
	}
	m.PopulateAggregateRoot(&request.BaseAggregateRoot)
	for i, line := range m.Lines {
		request.Lines[i] = *line.ToDomain()
	}
	return request
}

// FromDomain populates the persistence model from a domain QuoteRequest entity.
func (m *QuoteRequestModel) FromDomain(q *procurement.QuoteRequest) {
	m.FromDomainAggregateRoot(q.BaseAggregateRoot)
	m.RequestNumber = q.RequestNumber
	m.Status = q.Status
	m.RequesterID = q.RequesterID
	m.FundingSourceID = q.FundingSourceID
	m.Notes = q.Notes
	m.DueDate = q.DueDate
	m.ApproverID = q.ApproverID
	m.DenierID = q.DenierID
	m.DenialReason = q.DenialReason
	m.SentAt = q.SentAt
	m.ApprovedAt = q.ApprovedAt
	m.DeniedAt = q.DeniedAt
	m.PurchaseOrderID = q.PurchaseOrderID
	m.Lines = make([]QuoteRequestLineModel, len(q.Lines))
	for i, line := range q.Lines {
		m.Lines[i] = *QuoteRequestLineModelFromDomain(&line)
	}
}

// QuoteRequestModelFromDomain creates a new persistence model from a domain QuoteRequest entity.
func QuoteRequestModelFromDomain(q *procurement.QuoteRequest) *QuoteRequestModel {
	m := &QuoteRequestModel{}
	m.FromDomain(q)
	return m
}

// QuoteRequestLineModel is the persistence model for the QuoteRequestLine entity.
type QuoteRequestLineModel struct {
	BaseModel
	QuoteRequestID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Description        string           `gorm:"type:varchar(500);not null"`
	Quantity           int              `gorm:"not null"`
	CatalogItemID      *uuid.UUID       `gorm:"type:uuid;index"`
	ItemVariantID      *uuid.UUID       `gorm:"type:uuid"`
	EstimatedUnitPrice *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Position           int              `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (QuoteRequestLineModel) TableName() string {
	return "quote_request_lines"
}

// ToDomain converts the persistence model to a domain QuoteRequestLine entity.
func (m *QuoteRequestLineModel) ToDomain() *procurement.QuoteRequestLine {
	return &procurement.QuoteRequestLine{
		BaseEntity:         m.BaseModel.ToDomain(),
		QuoteRequestID:     m.QuoteRequestID,
		Description:        m.Description,
		Quantity:           m.Quantity,
		CatalogItemID:      m.CatalogItemID,
		ItemVariantID:      m.ItemVariantID,
		EstimatedUnitPrice: m.EstimatedUnitPrice,
		Position:           m.Position,
	}
}

// FromDomain populates the persistence model from a domain QuoteRequestLine entity.
func (m *QuoteRequestLineModel) FromDomain(l *procurement.QuoteRequestLine) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.QuoteRequestID = l.QuoteRequestID
	m.Description = l.Description
	m.Quantity = l.Quantity
	m.CatalogItemID = l.CatalogItemID
	m.ItemVariantID = l.ItemVariantID
	m.EstimatedUnitPrice = l.EstimatedUnitPrice
	m.Position = l.Position
}

// QuoteRequestLineModelFromDomain creates a new persistence model from a domain QuoteRequestLine entity.
func QuoteRequestLineModelFromDomain(l *procurement.QuoteRequestLine) *QuoteRequestLineModel {
	m := &QuoteRequestLineModel{}
	m.FromDomain(l)
	return m
}

// VendorQuoteModel is the persistence model for the VendorQuote aggregate root.
type VendorQuoteModel struct {
	AggregateModel
	QuoteRequestID uuid.UUID        `gorm:"type:uuid;not null;index"`
	VendorID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	TotalAmount    decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingCost   *decimal.Decimal `gorm:"type:decimal(18,4)"`
	LeadTimeDays   *int
	Selected       bool                   `gorm:"not null;default:false"`
	Notes          string                 `gorm:"type:text"`
	Lines          []VendorQuoteLineModel `gorm:"foreignKey:VendorQuoteID;references:ID"`
}

// TableName returns the table name for GORM
func (VendorQuoteModel) TableName() string {
	return "vendor_quotes"
}

// ToDomain converts the persistence model to a domain VendorQuote entity.
func (m *VendorQuoteModel) ToDomain() *procurement.VendorQuote {
	quote := &procurement.VendorQuote{
		QuoteRequestID: m.QuoteRequestID,
		VendorID:       m.VendorID,
		TotalAmount:    m.TotalAmount,
		ShippingCost:   m.ShippingCost,
		LeadTimeDays:   m.LeadTimeDays,
		Selected:       m.Selected,
		Notes:          m.Notes,
		Lines:          make([]procurement.VendorQuoteLine, len(m.Lines)),
	}
	m.PopulateAggregateRoot(&quote.BaseAggregateRoot)
	for i, line := range m.Lines {
		quote.Lines[i] = *line.ToDomain()
	}
	return quote
}

// FromDomain populates the persistence model from a domain VendorQuote entity.
func (m *VendorQuoteModel) FromDomain(q *procurement.VendorQuote) {
	m.FromDomainAggregateRoot(q.BaseAggregateRoot)
	m.QuoteRequestID = q.QuoteRequestID
	m.VendorID = q.VendorID
	m.TotalAmount = q.TotalAmount
	m.ShippingCost = q.ShippingCost
	m.LeadTimeDays = q.LeadTimeDays
	m.Selected = q.Selected
	m.Notes = q.Notes
	m.Lines = make([]VendorQuoteLineModel, len(q.Lines))
	for i, line := range q.Lines {
		m.Lines[i] = *VendorQuoteLineModelFromDomain(&line)
	}
}

// VendorQuoteModelFromDomain creates a new persistence model from a domain VendorQuote entity.
func VendorQuoteModelFromDomain(q *procurement.VendorQuote) *VendorQuoteModel {
	m := &VendorQuoteModel{}
	m.FromDomain(q)
	return m
}

// VendorQuoteLineModel is the persistence model for the VendorQuoteLine entity.
type VendorQuoteLineModel struct {
	BaseModel
	VendorQuoteID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description        string          `gorm:"type:varchar(500);not null"`
	Quantity           int             `gorm:"not null"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuoteRequestLineID *uuid.UUID      `gorm:"type:uuid;index"`
	Position           int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (VendorQuoteLineModel) TableName() string {
	return "vendor_quote_lines"
}

// ToDomain converts the persistence model to a domain VendorQuoteLine entity.
func (m *VendorQuoteLineModel) ToDomain() *procurement.VendorQuoteLine {
	return &procurement.VendorQuoteLine{
		BaseEntity:         m.BaseModel.ToDomain(),
		VendorQuoteID:      m.VendorQuoteID,
		Description:        m.Description,
		Quantity:           m.Quantity,
		UnitPrice:          m.UnitPrice,
		LineTotal:          m.LineTotal,
		QuoteRequestLineID: m.QuoteRequestLineID,
		Position:           m.Position,
	}
}

// FromDomain populates the persistence model from a domain VendorQuoteLine entity.
func (m *VendorQuoteLineModel) FromDomain(l *procurement.VendorQuoteLine) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.VendorQuoteID = l.VendorQuoteID
	m.Description = l.Description
	m.Quantity = l.Quantity
	m.UnitPrice = l.UnitPrice
	m.LineTotal = l.LineTotal
	m.QuoteRequestLineID = l.QuoteRequestLineID
	m.Position = l.Position
}

// VendorQuoteLineModelFromDomain creates a new persistence model from a domain VendorQuoteLine entity.
func VendorQuoteLineModelFromDomain(l *procurement.VendorQuoteLine) *VendorQuoteLineModel {
	m := &VendorQuoteLineModel{}
	m.FromDomain(l)
	return m
}

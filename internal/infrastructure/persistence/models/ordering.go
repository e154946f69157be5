package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/ordering"
)

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate root.
type PurchaseOrderModel struct {
	AggregateModel
	OrderNumber     string                       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status          ordering.PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	VendorID        uuid.UUID                    `gorm:"type:uuid;not null;index"`
	VendorName      string                       `gorm:"type:varchar(200);not null"`
	TotalAmount     decimal.Decimal              `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingCost    *decimal.Decimal             `gorm:"type:decimal(18,4)"`
	Notes           string                       `gorm:"type:text"`
	FundingSourceID *uuid.UUID                   `gorm:"type:uuid;index"`
	QuoteRequestID  uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex"`
	VendorQuoteID   uuid.UUID                    `gorm:"type:uuid;not null"`
	OrderDate       time.Time                    `gorm:"not null"`
	Lines           []PurchaseOrderLineModel     `gorm:"foreignKey:PurchaseOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) ToDomain() *ordering.PurchaseOrder {
	order := &ordering.PurchaseOrder{
		OrderNumber:     m.OrderNumber,
		Status:          m.Status,
		VendorID:        m.VendorID,
		VendorName:      m.VendorName,
		TotalAmount:     m.TotalAmount,
		ShippingCost:    m.ShippingCost,
		Notes:           m.Notes,
		FundingSourceID: m.FundingSourceID,
		QuoteRequestID:  m.QuoteRequestID,
		VendorQuoteID:   m.VendorQuoteID,
		OrderDate:       m.OrderDate,
		Lines:           make([]ordering.POLine, len(m.Lines)),
	}
	m.PopulateAggregateRoot(&order.BaseAggregateRoot)
	for i, line := range m.Lines {
		order.Lines[i] = *line.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) FromDomain(o *ordering.PurchaseOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.Status = o.Status
	m.VendorID = o.VendorID
	m.VendorName = o.VendorName
	m.TotalAmount = o.TotalAmount
	m.ShippingCost = o.ShippingCost
	m.Notes = o.Notes
	m.FundingSourceID = o.FundingSourceID
	m.QuoteRequestID = o.QuoteRequestID
	m.VendorQuoteID = o.VendorQuoteID
	m.OrderDate = o.OrderDate
	m.Lines = make([]PurchaseOrderLineModel, len(o.Lines))
	for i, line := range o.Lines {
		m.Lines[i] = *PurchaseOrderLineModelFromDomain(&line)
	}
}

// PurchaseOrderModelFromDomain creates a new persistence model from a domain PurchaseOrder entity.
func PurchaseOrderModelFromDomain(o *ordering.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{}
	m.FromDomain(o)
	return m
}

// PurchaseOrderLineModel is the persistence model for the POLine entity.
type PurchaseOrderLineModel struct {
	BaseModel
	PurchaseOrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description        string          `gorm:"type:varchar(500);not null"`
	OrderedQuantity    int             `gorm:"not null"`
	ReceivedQuantity   int             `gorm:"not null;default:0"`
	UnitCost           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuoteRequestLineID *uuid.UUID      `gorm:"type:uuid;index"`
	Position           int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLineModel) TableName() string {
	return "purchase_order_lines"
}

// ToDomain converts the persistence model to a domain POLine entity.
func (m *PurchaseOrderLineModel) ToDomain() *ordering.POLine {
	return &ordering.POLine{
		BaseEntity:         m.BaseModel.ToDomain(),
		PurchaseOrderID:    m.PurchaseOrderID,
		Description:        m.Description,
		OrderedQuantity:    m.OrderedQuantity,
		ReceivedQuantity:   m.ReceivedQuantity,
		UnitCost:           m.UnitCost,
		LineTotal:          m.LineTotal,
		QuoteRequestLineID: m.QuoteRequestLineID,
		Position:           m.Position,
	}
}

// FromDomain populates the persistence model from a domain POLine entity.
func (m *PurchaseOrderLineModel) FromDomain(l *ordering.POLine) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.PurchaseOrderID = l.PurchaseOrderID
	m.Description = l.Description
	m.OrderedQuantity = l.OrderedQuantity
	m.ReceivedQuantity = l.ReceivedQuantity
	m.UnitCost = l.UnitCost
	m.LineTotal = l.LineTotal
	m.QuoteRequestLineID = l.QuoteRequestLineID
	m.Position = l.Position
}

// PurchaseOrderLineModelFromDomain creates a new persistence model from a domain POLine entity.
func PurchaseOrderLineModelFromDomain(l *ordering.POLine) *PurchaseOrderLineModel {
	m := &PurchaseOrderLineModel{}
	m.FromDomain(l)
	return m
}

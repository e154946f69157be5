package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms/backend/internal/domain/shared/valueobject"
)

func newTestOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	order, err := NewPurchaseOrder(uuid.New(), "Acme Supply Co", valueobject.NewMoneyUSDFromFloat(300), uuid.New(), uuid.New())
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		vendorID := uuid.New()
		requestID := uuid.New()
		quoteID := uuid.New()

		order, err := NewPurchaseOrder(vendorID, "Acme Supply Co", valueobject.NewMoneyUSDFromFloat(300), requestID, quoteID)
		require.NoError(t, err)

		assert.Equal(t, OrderStatusDraft, order.Status)
		assert.Empty(t, order.OrderNumber)
		assert.Equal(t, vendorID, order.VendorID)
		assert.Equal(t, "Acme Supply Co", order.VendorName)
		assert.Equal(t, requestID, order.QuoteRequestID)
		assert.Equal(t, quoteID, order.VendorQuoteID)
		assert.Equal(t, "300", order.TotalAmount.String())
		assert.False(t, order.OrderDate.IsZero())
		assert.Len(t, order.GetDomainEvents(), 1)
	})

	tests := []struct {
		name      string
		vendorID  uuid.UUID
		requestID uuid.UUID
		quoteID   uuid.UUID
		total     float64
	}{
		{"nil vendor", uuid.Nil, uuid.New(), uuid.New(), 100},
		{"nil request", uuid.New(), uuid.Nil, uuid.New(), 100},
		{"nil quote", uuid.New(), uuid.New(), uuid.Nil, 100},
		{"negative total", uuid.New(), uuid.New(), uuid.New(), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPurchaseOrder(tt.vendorID, "Acme", valueobject.NewMoneyUSDFromFloat(tt.total), tt.requestID, tt.quoteID)
			assert.Error(t, err)
		})
	}
}

func TestPurchaseOrderAddLine(t *testing.T) {
	t.Run("received quantity starts at zero", func(t *testing.T) {
		order := newTestOrder(t)
		requestLineID := uuid.New()

		line, err := order.AddLine("Nitrile gloves, box", 10, decimal.NewFromFloat(12.5), decimal.NewFromInt(125), &requestLineID)
		require.NoError(t, err)

		assert.Equal(t, 10, line.OrderedQuantity)
		assert.Equal(t, 0, line.ReceivedQuantity)
		assert.Equal(t, 0, line.Position)
		require.NotNil(t, line.QuoteRequestLineID)
		assert.Equal(t, requestLineID, *line.QuoteRequestLineID)
		assert.Equal(t, order.ID, line.PurchaseOrderID)
	})

	t.Run("missing back-reference stays nil", func(t *testing.T) {
		order := newTestOrder(t)
		line, err := order.AddLine("Unrequested extra", 1, decimal.NewFromInt(40), decimal.NewFromInt(40), nil)
		require.NoError(t, err)
		assert.Nil(t, line.QuoteRequestLineID)
	})

	t.Run("invalid lines rejected", func(t *testing.T) {
		order := newTestOrder(t)

		_, err := order.AddLine("", 1, decimal.Zero, decimal.Zero, nil)
		assert.Error(t, err)

		_, err = order.AddLine("item", 0, decimal.Zero, decimal.Zero, nil)
		assert.Error(t, err)

		_, err = order.AddLine("item", 1, decimal.NewFromInt(-1), decimal.Zero, nil)
		assert.Error(t, err)
	})
}

func TestPurchaseOrderStatusChanges(t *testing.T) {
	t.Run("submit", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Submit())
		assert.Equal(t, OrderStatusOrdered, order.Status)
		assert.Error(t, order.Submit())
		assert.Error(t, order.Cancel())
	})

	t.Run("cancel", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Cancel())
		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.Error(t, order.Submit())
	})
}

func TestPurchaseOrderCopiedFields(t *testing.T) {
	order := newTestOrder(t)

	shipping := decimal.NewFromInt(25)
	require.NoError(t, order.SetShippingCost(&shipping))
	require.NotNil(t, order.ShippingCost)

	negative := decimal.NewFromInt(-1)
	assert.Error(t, order.SetShippingCost(&negative))

	order.SetNotes("copied from request")
	assert.Equal(t, "copied from request", order.Notes)

	fundingID := uuid.New()
	order.SetFundingSource(&fundingID)
	require.NotNil(t, order.FundingSourceID)
	assert.Equal(t, fundingID, *order.FundingSourceID)
}

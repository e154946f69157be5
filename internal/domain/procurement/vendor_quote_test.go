package procurement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms/backend/internal/domain/shared/valueobject"
)

func newTestQuote(t *testing.T) *VendorQuote {
	t.Helper()
	quote, err := NewVendorQuote(uuid.New(), uuid.New(), valueobject.NewMoneyUSDFromFloat(300))
	require.NoError(t, err)
	quote.ClearDomainEvents()
	return quote
}

func TestNewVendorQuote(t *testing.T) {
	t.Run("valid quote", func(t *testing.T) {
		requestID := uuid.New()
		vendorID := uuid.New()
		quote, err := NewVendorQuote(requestID, vendorID, valueobject.NewMoneyUSDFromFloat(499.99))
		require.NoError(t, err)

		assert.Equal(t, requestID, quote.QuoteRequestID)
		assert.Equal(t, vendorID, quote.VendorID)
		assert.Equal(t, "499.99", quote.TotalAmount.String())
		assert.False(t, quote.Selected)
		assert.Len(t, quote.GetDomainEvents(), 1)
	})

	t.Run("nil request rejected", func(t *testing.T) {
		_, err := NewVendorQuote(uuid.Nil, uuid.New(), valueobject.ZeroUSD())
		assert.Error(t, err)
	})

	t.Run("nil vendor rejected", func(t *testing.T) {
		_, err := NewVendorQuote(uuid.New(), uuid.Nil, valueobject.ZeroUSD())
		assert.Error(t, err)
	})

	t.Run("negative total rejected", func(t *testing.T) {
		_, err := NewVendorQuote(uuid.New(), uuid.New(), valueobject.NewMoneyUSDFromFloat(-1))
		assert.Error(t, err)
	})
}

func TestVendorQuoteAddLine(t *testing.T) {
	t.Run("lines get positions and totals", func(t *testing.T) {
		quote := newTestQuote(t)
		requestLineID := uuid.New()

		first, err := quote.AddLine("Nitrile gloves, box", 10, valueobject.NewMoneyUSDFromFloat(12.50), &requestLineID)
		require.NoError(t, err)
		second, err := quote.AddLine("Shipping pallet", 1, valueobject.NewMoneyUSDFromFloat(40), nil)
		require.NoError(t, err)

		assert.Equal(t, 0, first.Position)
		assert.Equal(t, 1, second.Position)
		assert.Equal(t, "125", first.LineTotal.String())
		require.NotNil(t, first.QuoteRequestLineID)
		assert.Equal(t, requestLineID, *first.QuoteRequestLineID)
		assert.Nil(t, second.QuoteRequestLineID)
		assert.Equal(t, quote.ID, first.VendorQuoteID)
	})

	t.Run("invalid lines rejected", func(t *testing.T) {
		quote := newTestQuote(t)

		_, err := quote.AddLine("", 1, valueobject.ZeroUSD(), nil)
		assert.Error(t, err)

		_, err = quote.AddLine("item", 0, valueobject.ZeroUSD(), nil)
		assert.Error(t, err)

		_, err = quote.AddLine("item", 1, valueobject.NewMoneyUSDFromFloat(-5), nil)
		assert.Error(t, err)
	})
}

func TestVendorQuoteSelection(t *testing.T) {
	quote := newTestQuote(t)

	quote.MarkSelected()
	assert.True(t, quote.Selected)
	assert.Len(t, quote.GetDomainEvents(), 1)

	// Marking again is a no-op
	quote.ClearDomainEvents()
	quote.MarkSelected()
	assert.Empty(t, quote.GetDomainEvents())

	quote.ClearSelected()
	assert.False(t, quote.Selected)
}

func TestVendorQuoteOptionalFields(t *testing.T) {
	quote := newTestQuote(t)

	require.NoError(t, quote.SetShippingCost(valueobject.NewMoneyUSDFromFloat(25)))
	require.NotNil(t, quote.ShippingCost)
	assert.Equal(t, "25", quote.ShippingCost.String())

	require.NoError(t, quote.SetLeadTime(14))
	require.NotNil(t, quote.LeadTimeDays)
	assert.Equal(t, 14, *quote.LeadTimeDays)

	assert.Error(t, quote.SetShippingCost(valueobject.NewMoneyUSDFromFloat(-1)))
	assert.Error(t, quote.SetLeadTime(-1))
}

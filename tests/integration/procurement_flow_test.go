package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	orderingapp "github.com/wms/backend/internal/application/ordering"
	procurementapp "github.com/wms/backend/internal/application/procurement"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/cache"
	"github.com/wms/backend/internal/infrastructure/persistence"
)

type pipelineFixture struct {
	tdb *TestDB

	requestService    *procurementapp.QuoteRequestService
	quoteService      *procurementapp.VendorQuoteService
	conversionService *procurementapp.ConversionService
	orderService      *orderingapp.PurchaseOrderService

	requesterID uuid.UUID
	approverID  uuid.UUID
	vendorA     uuid.UUID
	vendorB     uuid.UUID
	vendorC     uuid.UUID
	fundingID   uuid.UUID
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	tdb := NewTestDB(t)
	log := zap.NewNop()

	requestRepo := persistence.NewGormQuoteRequestRepository(tdb.DB)
	quoteRepo := persistence.NewGormVendorQuoteRepository(tdb.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(tdb.DB)
	userRepo := persistence.NewGormUserRepository(tdb.DB)
	vendorRepo := persistence.NewGormVendorRepository(tdb.DB)
	fundingRepo := persistence.NewGormFundingSourceRepository(tdb.DB)
	catalogRepo := persistence.NewGormCatalogItemRepository(tdb.DB)

	f := &pipelineFixture{
		tdb: tdb,

		requestService: procurementapp.NewQuoteRequestService(
			requestRepo, quoteRepo, userRepo, vendorRepo, fundingRepo, catalogRepo, log),
		quoteService:      procurementapp.NewVendorQuoteService(quoteRepo, requestRepo, vendorRepo, log),
		conversionService: procurementapp.NewConversionService(requestRepo, quoteRepo, orderRepo, vendorRepo, log),
		orderService:      orderingapp.NewPurchaseOrderService(orderRepo, requestRepo, fundingRepo, log),

		requesterID: uuid.New(),
		approverID:  uuid.New(),
		vendorA:     uuid.New(),
		vendorB:     uuid.New(),
		vendorC:     uuid.New(),
		fundingID:   uuid.New(),
	}

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	f.conversionService.SetIdempotencyStore(store, shared.IdempotencyConfig{
		Enabled: true,
		TTL:     time.Minute,
	})

	tdb.SeedUser(f.requesterID, "sam.requester", "staff")
	tdb.SeedUser(f.approverID, "quinn.approver", "admin")
	tdb.SeedVendor(f.vendorA, "Apex Shelving Co")
	tdb.SeedVendor(f.vendorB, "Basin Storage Supply")
	tdb.SeedVendor(f.vendorC, "Crosstown Industrial")
	tdb.SeedFundingSource(f.fundingID, "Facilities 2026", "FAC-2026")

	return f
}

func (f *pipelineFixture) recordQuote(t *testing.T, ctx context.Context, requestID, vendorID uuid.UUID, total int64) *procurementapp.VendorQuoteResponse {
	t.Helper()

	quote, err := f.quoteService.Record(ctx, requestID, procurementapp.RecordVendorQuoteRequest{
		VendorID:    vendorID,
		TotalAmount: decimal.NewFromInt(total),
	})
	require.NoError(t, err)
	return quote
}

func TestProcurementPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	f := newPipelineFixture(t)
	ctx := context.Background()
	year := time.Now().Year()

	// Draft a request for two kinds of racking hardware
	created, err := f.requestService.Create(ctx, f.requesterID, procurementapp.CreateQuoteRequestRequest{
		Lines: []procurementapp.QuoteRequestLineInput{
			{Description: "Pallet rack uprights, 12ft", Quantity: 24},
			{Description: "Cross beams, 8ft", Quantity: 96},
		},
		Notes:           "Mezzanine expansion, aisle 4",
		FundingSourceID: &f.fundingID,
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("QR-%d-001", year), created.RequestNumber)
	assert.Equal(t, "DRAFT", created.Status)
	assert.Equal(t, "sam.requester", created.RequesterName)
	assert.Equal(t, "Facilities 2026", created.FundingSourceName)
	require.Len(t, created.Lines, 2)

	// Drafts stay editable
	revisedNotes := "Mezzanine expansion, aisles 4 and 5"
	updated, err := f.requestService.Update(ctx, created.ID, procurementapp.UpdateQuoteRequestRequest{
		Notes: &revisedNotes,
	})
	require.NoError(t, err)
	assert.Equal(t, revisedNotes, updated.Notes)

	// Send it out to vendors
	sent, err := f.requestService.Send(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "SENT", sent.Status)
	require.NotNil(t, sent.SentAt)

	// Three vendors bid; the first bid flips the request status
	f.recordQuote(t, ctx, created.ID, f.vendorA, 500)
	afterFirst, err := f.requestService.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "QUOTES_RECEIVED", afterFirst.Status)

	winning := f.recordQuote(t, ctx, created.ID, f.vendorB, 300)
	f.recordQuote(t, ctx, created.ID, f.vendorC, 700)

	quotes, err := f.quoteService.ListByRequest(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, quotes, 3)

	// Approve the cheapest bid
	approved, err := f.requestService.Approve(ctx, created.ID, f.approverID, procurementapp.ApproveQuoteRequestRequest{
		SelectedQuoteID: winning.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)
	require.NotNil(t, approved.ApproverID)
	assert.Equal(t, f.approverID, *approved.ApproverID)

	selectedCount := 0
	for _, quote := range approved.Quotes {
		if quote.Selected {
			selectedCount++
			assert.Equal(t, winning.ID, quote.ID)
			assert.Equal(t, "Basin Storage Supply", quote.VendorName)
		}
	}
	assert.Equal(t, 1, selectedCount)

	// Convert into a purchase order
	converted, err := f.conversionService.Convert(ctx, created.ID, "convert-key-1")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PO-%d-0001", year), converted.OrderNumber)

	finalRequest, err := f.requestService.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "CONVERTED", finalRequest.Status)
	require.NotNil(t, finalRequest.PurchaseOrderID)
	assert.Equal(t, converted.OrderID, *finalRequest.PurchaseOrderID)

	order, err := f.orderService.Get(ctx, converted.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", order.Status)
	assert.Equal(t, f.vendorB, order.VendorID)
	assert.Equal(t, "Basin Storage Supply", order.VendorName)
	assert.True(t, decimal.NewFromInt(300).Equal(order.TotalAmount))
	assert.Equal(t, created.ID, order.QuoteRequestID)
	assert.Equal(t, finalRequest.RequestNumber, order.QuoteRequestNumber)

	// Replaying the same idempotency key returns the existing order
	replayed, err := f.conversionService.Convert(ctx, created.ID, "convert-key-1")
	require.NoError(t, err)
	assert.Equal(t, converted.OrderID, replayed.OrderID)

	// A fresh key cannot convert a second time
	_, err = f.conversionService.Convert(ctx, created.ID, "convert-key-2")
	require.Error(t, err)

	// Place the order with the vendor
	placed, err := f.orderService.Submit(ctx, converted.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "ORDERED", placed.Status)
}

func TestProcurementPipeline_DenialAndNumbering(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	f := newPipelineFixture(t)
	ctx := context.Background()
	year := time.Now().Year()

	first, err := f.requestService.Create(ctx, f.requesterID, procurementapp.CreateQuoteRequestRequest{
		Lines: []procurementapp.QuoteRequestLineInput{
			{Description: "Dock bumpers", Quantity: 8},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("QR-%d-001", year), first.RequestNumber)

	// Numbers increment per year within one database
	second, err := f.requestService.Create(ctx, f.requesterID, procurementapp.CreateQuoteRequestRequest{
		Lines: []procurementapp.QuoteRequestLineInput{
			{Description: "Dock seals", Quantity: 4},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("QR-%d-002", year), second.RequestNumber)

	// Deny the first while still in draft
	denied, err := f.requestService.Deny(ctx, first.ID, f.approverID, procurementapp.DenyQuoteRequestRequest{
		Reason: "Budget freeze for Q4",
	})
	require.NoError(t, err)
	assert.Equal(t, "DENIED", denied.Status)
	assert.Equal(t, "Budget freeze for Q4", denied.DenialReason)

	// Denied requests are terminal
	_, err = f.requestService.Send(ctx, first.ID)
	require.Error(t, err)

	// List filtering by status sees exactly the denied request
	status := "DENIED"
	page, err := f.requestService.List(ctx, procurementapp.QuoteRequestListFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, first.ID, page.Items[0].ID)
	assert.Equal(t, int64(1), page.Total)
}

func TestProcurementPipeline_SequenceYearIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	f := newPipelineFixture(t)
	ctx := context.Background()
	year := time.Now().Year()

	// Counters left over from last year must not leak into this year
	f.tdb.SeedDocumentSequence("QR", year-1, 37)
	f.tdb.SeedDocumentSequence("PO", year-1, 12)

	created, err := f.requestService.Create(ctx, f.requesterID, procurementapp.CreateQuoteRequestRequest{
		Lines: []procurementapp.QuoteRequestLineInput{
			{Description: "LED high-bay fixtures", Quantity: 18},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("QR-%d-001", year), created.RequestNumber)

	// The previous year's counter is untouched by this year's allocation
	var lastNumber int64
	err = f.tdb.DB.Raw(
		`SELECT last_number FROM document_sequences WHERE prefix = ? AND year = ?`,
		"QR", year-1).Scan(&lastNumber).Error
	require.NoError(t, err)
	assert.Equal(t, int64(37), lastNumber)
}

package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/ordering"
	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
)

// PipelineAuditHandler writes an audit log line for every event in the
// procurement pipeline, from quote request creation through conversion
type PipelineAuditHandler struct {
	logger *zap.Logger
}

// NewPipelineAuditHandler creates a new pipeline audit handler
func NewPipelineAuditHandler(logger *zap.Logger) *PipelineAuditHandler {
	return &PipelineAuditHandler{logger: logger}
}

// EventTypes returns the pipeline event types this handler audits
func (h *PipelineAuditHandler) EventTypes() []string {
	return []string{
		procurement.EventTypeQuoteRequestCreated,
		procurement.EventTypeQuoteRequestSent,
		procurement.EventTypeQuoteRequestQuotesReceived,
		procurement.EventTypeQuoteRequestApproved,
		procurement.EventTypeQuoteRequestDenied,
		procurement.EventTypeQuoteRequestConverted,
		procurement.EventTypeVendorQuoteRecorded,
		procurement.EventTypeVendorQuoteSelected,
		ordering.EventTypePurchaseOrderCreated,
	}
}

// Handle writes the audit line
func (h *PipelineAuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *procurement.QuoteRequestCreatedEvent:
		fields = append(fields, zap.String("requester_id", e.RequesterID.String()))
	case *procurement.QuoteRequestConvertedEvent:
		fields = append(fields, zap.String("purchase_order_id", e.PurchaseOrderID.String()))
	case *procurement.VendorQuoteRecordedEvent:
		fields = append(fields,
			zap.String("quote_request_id", e.QuoteRequestID.String()),
			zap.String("vendor_id", e.VendorID.String()))
	}

	h.logger.Info("pipeline event: "+event.EventType(), fields...)
	return nil
}

// Ensure PipelineAuditHandler implements EventHandler
var _ shared.EventHandler = (*PipelineAuditHandler)(nil)

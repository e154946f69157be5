package procurement

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/identity"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
)

// QuoteRequestService handles quote request lifecycle operations
type QuoteRequestService struct {
	requestRepo    procurement.QuoteRequestRepository
	quoteRepo      procurement.VendorQuoteRepository
	userRepo       identity.UserRepository
	vendorRepo     partner.VendorRepository
	fundingRepo    partner.FundingSourceRepository
	catalogRepo    catalog.ItemRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewQuoteRequestService creates a new quote request service
func NewQuoteRequestService(
	requestRepo procurement.QuoteRequestRepository,
	quoteRepo procurement.VendorQuoteRepository,
	userRepo identity.UserRepository,
	vendorRepo partner.VendorRepository,
	fundingRepo partner.FundingSourceRepository,
	catalogRepo catalog.ItemRepository,
	logger *zap.Logger,
) *QuoteRequestService {
	return &QuoteRequestService{
		requestRepo: requestRepo,
		quoteRepo:   quoteRepo,
		userRepo:    userRepo,
		vendorRepo:  vendorRepo,
		fundingRepo: fundingRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *QuoteRequestService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new draft quote request. The request number is
// allocated inside the insert transaction.
func (s *QuoteRequestService) Create(ctx context.Context, requesterID uuid.UUID, req CreateQuoteRequestRequest) (*QuoteRequestResponse, error) {
	if req.FundingSourceID != nil {
		if _, err := s.fundingRepo.FindByID(ctx, *req.FundingSourceID); err != nil {
			return nil, shared.NewDomainError("FUNDING_SOURCE_NOT_FOUND", "Funding source not found")
		}
	}

	request, err := procurement.NewQuoteRequest(requesterID, toLineInputs(req.Lines))
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		if err := request.SetNotes(req.Notes); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil {
		if err := request.SetDueDate(req.DueDate); err != nil {
			return nil, err
		}
	}
	if req.FundingSourceID != nil {
		if err := request.SetFundingSource(req.FundingSourceID); err != nil {
			return nil, err
		}
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		s.logger.Error("Failed to create quote request", zap.Error(err))
		return nil, err
	}

	s.publishEvents(ctx, request)

	s.logger.Info("Quote request created",
		zap.String("request_id", request.ID.String()),
		zap.String("request_number", request.RequestNumber))

	return s.buildResponse(ctx, request, false)
}

// Update edits a draft or sent quote request. Omitted fields are left
// unchanged; a supplied line set replaces the existing one wholesale.
func (s *QuoteRequestService) Update(ctx context.Context, id uuid.UUID, req UpdateQuoteRequestRequest) (*QuoteRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FundingSourceID != nil {
		if _, err := s.fundingRepo.FindByID(ctx, *req.FundingSourceID); err != nil {
			return nil, shared.NewDomainError("FUNDING_SOURCE_NOT_FOUND", "Funding source not found")
		}
		if err := request.SetFundingSource(req.FundingSourceID); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		if err := request.SetNotes(*req.Notes); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil {
		if err := request.SetDueDate(req.DueDate); err != nil {
			return nil, err
		}
	}
	if req.Lines != nil {
		if err := request.ReplaceLines(toLineInputs(req.Lines)); err != nil {
			return nil, err
		}
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		s.logger.Error("Failed to update quote request",
			zap.String("request_id", id.String()), zap.Error(err))
		return nil, err
	}

	s.publishEvents(ctx, request)

	return s.buildResponse(ctx, request, false)
}

// Send marks a draft request as sent to vendors
func (s *QuoteRequestService) Send(ctx context.Context, id uuid.UUID) (*QuoteRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := request.Send(); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		s.logger.Error("Failed to send quote request",
			zap.String("request_id", id.String()), zap.Error(err))
		return nil, err
	}

	s.publishEvents(ctx, request)

	s.logger.Info("Quote request sent",
		zap.String("request_id", request.ID.String()),
		zap.String("request_number", request.RequestNumber))

	return s.buildResponse(ctx, request, false)
}

// Approve approves a request with the chosen winning quote. The quote
// must belong to the request; the exclusive selection is persisted with
// the header in one transaction.
func (s *QuoteRequestService) Approve(ctx context.Context, id, approverID uuid.UUID, req ApproveQuoteRequestRequest) (*QuoteRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	quote, err := s.quoteRepo.FindByID(ctx, req.SelectedQuoteID)
	if err != nil {
		return nil, err
	}
	if quote.QuoteRequestID != request.ID {
		return nil, shared.NewDomainError("QUOTE_MISMATCH",
			"Selected quote does not belong to this quote request")
	}

	if err := request.Approve(approverID); err != nil {
		return nil, err
	}
	quote.MarkSelected()

	if err := s.requestRepo.SaveWithSelection(ctx, request, quote.ID); err != nil {
		s.logger.Error("Failed to approve quote request",
			zap.String("request_id", id.String()), zap.Error(err))
		return nil, err
	}

	s.publishEvents(ctx, request)
	s.publishEvents(ctx, quote)

	s.logger.Info("Quote request approved",
		zap.String("request_id", request.ID.String()),
		zap.String("selected_quote_id", quote.ID.String()))

	return s.buildResponse(ctx, request, true)
}

// Deny denies a request with an optional reason
func (s *QuoteRequestService) Deny(ctx context.Context, id, denierID uuid.UUID, req DenyQuoteRequestRequest) (*QuoteRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := request.Deny(denierID, req.Reason); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		s.logger.Error("Failed to deny quote request",
			zap.String("request_id", id.String()), zap.Error(err))
		return nil, err
	}

	s.publishEvents(ctx, request)

	s.logger.Info("Quote request denied",
		zap.String("request_id", request.ID.String()),
		zap.String("denier_id", denierID.String()))

	return s.buildResponse(ctx, request, false)
}

// Get returns a request in full detail with its lines and all quotes
func (s *QuoteRequestService) Get(ctx context.Context, id uuid.UUID) (*QuoteRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, request, true)
}

// List returns a paginated list of requests with per-request quote counts
func (s *QuoteRequestService) List(ctx context.Context, filter QuoteRequestListFilter) (*shared.Paginated[QuoteRequestListItemResponse], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != nil {
		status := procurement.QuoteRequestStatus(*filter.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown quote request status")
		}
		domainFilter.Filters["status"] = status.String()
	}
	if filter.RequesterID != nil {
		domainFilter.Filters["requester_id"] = *filter.RequesterID
	}
	if filter.FundingSourceID != nil {
		domainFilter.Filters["funding_source_id"] = *filter.FundingSourceID
	}

	requests, err := s.requestRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.requestRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	requestIDs := make([]uuid.UUID, len(requests))
	for i, request := range requests {
		requestIDs[i] = request.ID
	}
	quoteCounts, err := s.quoteRepo.CountByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	items := ToQuoteRequestListItemResponses(requests, quoteCounts)
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

func toLineInputs(lines []QuoteRequestLineInput) []procurement.LineInput {
	inputs := make([]procurement.LineInput, len(lines))
	for i, line := range lines {
		inputs[i] = procurement.LineInput{
			Description:        line.Description,
			Quantity:           line.Quantity,
			CatalogItemID:      line.CatalogItemID,
			ItemVariantID:      line.ItemVariantID,
			EstimatedUnitPrice: line.EstimatedUnitPrice,
		}
	}
	return inputs
}

// buildResponse assembles the detail response, resolving display names
// for the requester, funding source, catalog references and, when quotes
// are included, the quoting vendors. Name lookups are best-effort.
func (s *QuoteRequestService) buildResponse(ctx context.Context, request *procurement.QuoteRequest, includeQuotes bool) (*QuoteRequestResponse, error) {
	response := &QuoteRequestResponse{
		ID:              request.ID,
		RequestNumber:   request.RequestNumber,
		Status:          request.Status.String(),
		RequesterID:     request.RequesterID,
		FundingSourceID: request.FundingSourceID,
		Notes:           request.Notes,
		DueDate:         request.DueDate,
		ApproverID:      request.ApproverID,
		DenierID:        request.DenierID,
		DenialReason:    request.DenialReason,
		SentAt:          request.SentAt,
		ApprovedAt:      request.ApprovedAt,
		DeniedAt:        request.DeniedAt,
		PurchaseOrderID: request.PurchaseOrderID,
		CreatedAt:       request.CreatedAt,
		UpdatedAt:       request.UpdatedAt,
		Version:         request.Version,
	}

	if requester, err := s.userRepo.FindByID(ctx, request.RequesterID); err == nil {
		response.RequesterName = requester.DisplayName
	}
	if request.FundingSourceID != nil {
		if source, err := s.fundingRepo.FindByID(ctx, *request.FundingSourceID); err == nil {
			response.FundingSourceName = source.Name
		}
	}

	itemIDs := make([]uuid.UUID, 0, len(request.Lines))
	variantIDs := make([]uuid.UUID, 0, len(request.Lines))
	for _, line := range request.Lines {
		if line.CatalogItemID != nil {
			itemIDs = append(itemIDs, *line.CatalogItemID)
		}
		if line.ItemVariantID != nil {
			variantIDs = append(variantIDs, *line.ItemVariantID)
		}
	}
	itemNames, err := s.catalogRepo.ItemNames(ctx, itemIDs)
	if err != nil {
		itemNames = map[uuid.UUID]string{}
	}
	variantNames, err := s.catalogRepo.VariantNames(ctx, variantIDs)
	if err != nil {
		variantNames = map[uuid.UUID]string{}
	}
	response.Lines = ToQuoteRequestLineResponses(request.Lines, itemNames, variantNames)

	if includeQuotes {
		quotes, err := s.quoteRepo.FindByRequestID(ctx, request.ID)
		if err != nil {
			return nil, err
		}
		vendorIDs := make([]uuid.UUID, len(quotes))
		for i, quote := range quotes {
			vendorIDs[i] = quote.VendorID
		}
		vendorNames, err := s.vendorRepo.DisplayNames(ctx, vendorIDs)
		if err != nil {
			vendorNames = map[uuid.UUID]string{}
		}
		response.Quotes = make([]VendorQuoteResponse, len(quotes))
		for i := range quotes {
			response.Quotes[i] = ToVendorQuoteResponse(&quotes[i], vendorNames[quotes[i].VendorID])
		}
	}

	return response, nil
}

// publishEvents publishes the aggregate's pending domain events.
// Publish failures are logged and do not fail the operation.
func (s *QuoteRequestService) publishEvents(ctx context.Context, aggregate interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}) {
	if s.eventPublisher == nil {
		aggregate.ClearDomainEvents()
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish domain event",
				zap.String("event_type", event.EventType()), zap.Error(err))
		}
	}
	aggregate.ClearDomainEvents()
}

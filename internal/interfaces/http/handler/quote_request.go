package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/application/procurement"
)

// IdempotencyKeyHeader carries the client-supplied key for replay-safe conversion
const IdempotencyKeyHeader = "Idempotency-Key"

// QuoteRequestHandler handles quote request lifecycle endpoints
type QuoteRequestHandler struct {
	BaseHandler
	requestService    *procurement.QuoteRequestService
	quoteService      *procurement.VendorQuoteService
	conversionService *procurement.ConversionService
}

// NewQuoteRequestHandler creates a new quote request handler
func NewQuoteRequestHandler(
	requestService *procurement.QuoteRequestService,
	quoteService *procurement.VendorQuoteService,
	conversionService *procurement.ConversionService,
	logger *zap.Logger,
) *QuoteRequestHandler {
	return &QuoteRequestHandler{
		BaseHandler:       NewBaseHandler(logger),
		requestService:    requestService,
		quoteService:      quoteService,
		conversionService: conversionService,
	}
}

// Create drafts a new quote request for the authenticated user
// @Summary Create quote request
// @Tags quote-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body procurement.CreateQuoteRequestRequest true "Quote request"
// @Success 201 {object} dto.Response{data=procurement.QuoteRequestResponse}
// @Failure 400 {object} dto.Response
// @Router /quote-requests [post]
func (h *QuoteRequestHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req procurement.CreateQuoteRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.requestService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns a filtered page of quote requests
// @Summary List quote requests
// @Tags quote-requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param requester_id query string false "Requester filter"
// @Param funding_source_id query string false "Funding source filter"
// @Param search query string false "Search in request number and notes"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.Response{data=[]procurement.QuoteRequestListItemResponse}
// @Router /quote-requests [get]
func (h *QuoteRequestHandler) List(c *gin.Context) {
	var filter procurement.QuoteRequestListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.requestService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items,
		listMeta(result.Page, result.PageSize, result.Total, result.TotalPages))
}

// Get returns a quote request with its lines and recorded quotes
// @Summary Get quote request
// @Tags quote-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Success 200 {object} dto.Response{data=procurement.QuoteRequestResponse}
// @Failure 404 {object} dto.Response
// @Router /quote-requests/{id} [get]
func (h *QuoteRequestHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.requestService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update modifies a draft or sent quote request
// @Summary Update quote request
// @Tags quote-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Param request body procurement.UpdateQuoteRequestRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=procurement.QuoteRequestResponse}
// @Failure 422 {object} dto.Response
// @Router /quote-requests/{id} [put]
func (h *QuoteRequestHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req procurement.UpdateQuoteRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.requestService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Send marks a draft request as sent to vendors
// @Summary Send quote request
// @Tags quote-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Success 200 {object} dto.Response{data=procurement.QuoteRequestResponse}
// @Failure 422 {object} dto.Response
// @Router /quote-requests/{id}/send [post]
func (h *QuoteRequestHandler) Send(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.requestService.Send(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Approve approves a request, selecting the winning vendor quote
// @Summary Approve quote request
// @Tags quote-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Param request body procurement.ApproveQuoteRequestRequest true "Selected quote"
// @Success 200 {object} dto.Response{data=procurement.QuoteRequestResponse}
// @Failure 422 {object} dto.Response
// @Router /quote-requests/{id}/approve [post]
func (h *QuoteRequestHandler) Approve(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req procurement.ApproveQuoteRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.requestService.Approve(c.Request.Context(), id, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Deny denies a request with an optional reason
// @Summary Deny quote request
// @Tags quote-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Param request body procurement.DenyQuoteRequestRequest false "Denial reason"
// @Success 200 {object} dto.Response{data=procurement.QuoteRequestResponse}
// @Failure 422 {object} dto.Response
// @Router /quote-requests/{id}/deny [post]
func (h *QuoteRequestHandler) Deny(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	// the reason is optional, so a body-less request denies without one
	var req procurement.DenyQuoteRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.requestService.Deny(c.Request.Context(), id, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RecordQuote records a vendor's bid against a sent request
// @Summary Record vendor quote
// @Tags quote-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Param request body procurement.RecordVendorQuoteRequest true "Vendor quote"
// @Success 201 {object} dto.Response{data=procurement.VendorQuoteResponse}
// @Failure 422 {object} dto.Response
// @Router /quote-requests/{id}/quotes [post]
func (h *QuoteRequestHandler) RecordQuote(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req procurement.RecordVendorQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.quoteService.Record(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListQuotes returns all quotes recorded against a request
// @Summary List vendor quotes
// @Tags quote-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Success 200 {object} dto.Response{data=[]procurement.VendorQuoteResponse}
// @Failure 404 {object} dto.Response
// @Router /quote-requests/{id}/quotes [get]
func (h *QuoteRequestHandler) ListQuotes(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.quoteService.ListByRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Convert converts an approved request into a purchase order
// @Summary Convert quote request to purchase order
// @Tags quote-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Param Idempotency-Key header string false "Replay protection key"
// @Success 201 {object} dto.Response{data=procurement.ConvertQuoteRequestResponse}
// @Failure 422 {object} dto.Response
// @Router /quote-requests/{id}/convert [post]
func (h *QuoteRequestHandler) Convert(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	key := c.GetHeader(IdempotencyKeyHeader)

	resp, err := h.conversionService.Convert(c.Request.Context(), id, key)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

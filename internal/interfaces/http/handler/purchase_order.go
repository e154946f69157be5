package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/application/ordering"
)

// PurchaseOrderHandler handles purchase order endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *ordering.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(orderService *ordering.PurchaseOrderService, logger *zap.Logger) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		BaseHandler:  NewBaseHandler(logger),
		orderService: orderService,
	}
}

// List returns a filtered page of purchase orders
// @Summary List purchase orders
// @Tags purchase-orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param vendor_id query string false "Vendor filter"
// @Param funding_source_id query string false "Funding source filter"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.Response{data=[]ordering.PurchaseOrderListItemResponse}
// @Router /purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var filter ordering.PurchaseOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items,
		listMeta(result.Page, result.PageSize, result.Total, result.TotalPages))
}

// Get returns a purchase order with its lines
// @Summary Get purchase order
// @Tags purchase-orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Purchase order ID"
// @Success 200 {object} dto.Response{data=ordering.PurchaseOrderResponse}
// @Failure 404 {object} dto.Response
// @Router /purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Submit places a draft purchase order with its vendor
// @Summary Submit purchase order
// @Tags purchase-orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Purchase order ID"
// @Success 200 {object} dto.Response{data=ordering.PurchaseOrderResponse}
// @Failure 422 {object} dto.Response
// @Router /purchase-orders/{id}/submit [post]
func (h *PurchaseOrderHandler) Submit(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.Submit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel cancels a purchase order that has not been received
// @Summary Cancel purchase order
// @Tags purchase-orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Purchase order ID"
// @Success 200 {object} dto.Response{data=ordering.PurchaseOrderResponse}
// @Failure 422 {object} dto.Response
// @Router /purchase-orders/{id}/cancel [post]
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides response helpers shared by all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// Success writes a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta writes a 200 response with data and pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, meta dto.Meta) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, meta))
}

// Created writes a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error writes an error response for an explicit API error code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code),
		dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest writes a 400 validation error, typically for binding failures
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	h.Error(c, dto.ErrCodeValidation, err.Error())
}

// HandleError translates an application error into an HTTP response
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		if code == dto.ErrCodeInternal {
			h.logger.Error("request failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.String("path", c.Request.URL.Path),
				zap.String("domain_code", domainErr.Code),
				zap.Error(err),
			)
			h.Error(c, code, "internal server error")
			return
		}
		h.Error(c, code, domainErr.Message)
		return
	}

	h.logger.Error("request failed",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	h.Error(c, dto.ErrCodeInternal, "internal server error")
}

// userID returns the authenticated user's ID, writing a 401 when absent
func (h *BaseHandler) userID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetJWTUserID(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "authentication required")
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the :id path parameter as a UUID
func (h *BaseHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, dto.ErrCodeValidation, "invalid id: must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// listMeta builds pagination metadata from a paginated result
func listMeta(page, pageSize int, total int64, totalPages int) dto.Meta {
	return dto.Meta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

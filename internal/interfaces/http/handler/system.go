package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler handles health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db      Pinger
	version string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db Pinger, version string, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: NewBaseHandler(logger),
		db:          db,
		version:     version,
	}
}

// Health reports process liveness
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} dto.Response
// @Router /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}

// Ready reports whether the service can serve traffic
// @Summary Readiness probe
// @Tags system
// @Produce json
// @Success 200 {object} dto.Response
// @Failure 503 {object} dto.Response
// @Router /ready [get]
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"data": gin.H{
					"status":   "degraded",
					"database": err.Error(),
				},
			})
			return
		}
	}

	h.Success(c, gin.H{
		"status":   "ready",
		"database": "ok",
	})
}

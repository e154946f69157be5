package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	procurementapp "github.com/wms/backend/internal/application/procurement"
	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// missingRequestRepo satisfies the repository contract for handler tests
// that only exercise the path up to the first repository call
type missingRequestRepo struct{}

func (missingRequestRepo) FindByID(context.Context, uuid.UUID) (*procurement.QuoteRequest, error) {
	return nil, shared.ErrNotFound
}

func (missingRequestRepo) FindAll(context.Context, shared.Filter) ([]procurement.QuoteRequest, error) {
	return nil, nil
}

func (missingRequestRepo) Count(context.Context, shared.Filter) (int64, error) { return 0, nil }

func (missingRequestRepo) Create(context.Context, *procurement.QuoteRequest) error { return nil }

func (missingRequestRepo) Save(context.Context, *procurement.QuoteRequest) error { return nil }

func (missingRequestRepo) SaveWithSelection(context.Context, *procurement.QuoteRequest, uuid.UUID) error {
	return nil
}

func newDenyRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := procurementapp.NewQuoteRequestService(
		missingRequestRepo{}, nil, nil, nil, nil, nil, zap.NewNop())
	h := NewQuoteRequestHandler(service, nil, nil, zap.NewNop())

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyClaims, &auth.Claims{
			UserID:   uuid.New().String(),
			Username: "quinn.approver",
			Role:     "admin",
		})
	})
	engine.POST("/quote-requests/:id/deny", h.Deny)
	return engine
}

func TestQuoteRequestHandler_Deny_OptionalBody(t *testing.T) {
	engine := newDenyRouter(t)
	path := "/quote-requests/" + uuid.NewString() + "/deny"

	// the backing request never exists, so reaching the service shows
	// as a 404 rather than a binding failure

	t.Run("body-less deny reaches the service", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("deny with a reason reaches the service", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, path,
			strings.NewReader(`{"reason":"duplicate of an open request"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed body is still rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"reason":`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

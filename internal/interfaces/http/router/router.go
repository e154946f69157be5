package router

import (
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/identity"
	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/infrastructure/config"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/interfaces/http/handler"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// Config holds everything the router needs to wire up routes
type Config struct {
	Logger     *zap.Logger
	AppConfig  *config.Config
	JWTService *auth.JWTService

	AuthHandler          *handler.AuthHandler
	QuoteRequestHandler  *handler.QuoteRequestHandler
	PurchaseOrderHandler *handler.PurchaseOrderHandler
	SystemHandler        *handler.SystemHandler
}

// New builds the gin engine with all middleware and routes registered
func New(cfg Config) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.AppConfig.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.AppConfig.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.SecureHeaders())
	engine.Use(middleware.CORS(cfg.AppConfig.HTTP))
	if cfg.AppConfig.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodySizeLimit(cfg.AppConfig.HTTP.MaxBodySize))
	}

	engine.GET("/health", cfg.SystemHandler.Health)
	engine.GET("/ready", cfg.SystemHandler.Ready)

	if cfg.AppConfig.Swagger.Enabled {
		engine.GET("/swagger/*any", ginswagger.WrapHandler(swaggerfiles.Handler))
	}

	api := engine.Group("/api/v1")
	api.Use(middleware.JWT(cfg.JWTService, middleware.JWTConfig{
		SkipPaths: []string{"/api/v1/auth/login"},
	}))

	registerAuthRoutes(api, cfg)
	registerQuoteRequestRoutes(api, cfg)
	registerPurchaseOrderRoutes(api, cfg)

	return engine
}

func registerAuthRoutes(api *gin.RouterGroup, cfg Config) {
	authGroup := api.Group("/auth")
	authGroup.POST("/login", cfg.AuthHandler.Login)
	authGroup.GET("/me", cfg.AuthHandler.Me)
}

func registerQuoteRequestRoutes(api *gin.RouterGroup, cfg Config) {
	member := middleware.RequireRole(identity.RoleMember)
	staff := middleware.RequireRole(identity.RoleStaff)
	admin := middleware.RequireRole(identity.RoleAdmin)

	h := cfg.QuoteRequestHandler
	group := api.Group("/quote-requests")

	group.GET("", member, h.List)
	group.GET("/:id", member, h.Get)
	group.GET("/:id/quotes", member, h.ListQuotes)

	group.POST("", staff, h.Create)
	group.PUT("/:id", staff, h.Update)
	group.POST("/:id/send", staff, h.Send)
	group.POST("/:id/quotes", staff, h.RecordQuote)

	group.POST("/:id/approve", admin, h.Approve)
	group.POST("/:id/deny", admin, h.Deny)
	group.POST("/:id/convert", admin, h.Convert)
}

func registerPurchaseOrderRoutes(api *gin.RouterGroup, cfg Config) {
	member := middleware.RequireRole(identity.RoleMember)
	staff := middleware.RequireRole(identity.RoleStaff)

	h := cfg.PurchaseOrderHandler
	group := api.Group("/purchase-orders")

	group.GET("", member, h.List)
	group.GET("/:id", member, h.Get)

	group.POST("/:id/submit", staff, h.Submit)
	group.POST("/:id/cancel", staff, h.Cancel)
}

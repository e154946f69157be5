package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/wms/backend/internal/application/identity"
	orderingapp "github.com/wms/backend/internal/application/ordering"
	procurementapp "github.com/wms/backend/internal/application/procurement"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/infrastructure/cache"
	"github.com/wms/backend/internal/infrastructure/config"
	"github.com/wms/backend/internal/infrastructure/event"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/infrastructure/persistence"
	"github.com/wms/backend/internal/interfaces/http/handler"
	"github.com/wms/backend/internal/interfaces/http/router"
)

//	@title			Warehouse Procurement API
//	@version		1.0
//	@description	Procurement pipeline backend: quote requests, vendor quotes and purchase orders.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting warehouse procurement backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	requestRepo := persistence.NewGormQuoteRequestRepository(db.DB)
	quoteRepo := persistence.NewGormVendorQuoteRepository(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	fundingRepo := persistence.NewGormFundingSourceRepository(db.DB)
	catalogRepo := persistence.NewGormCatalogItemRepository(db.DB)

	// Idempotency store: Redis when reachable, in-memory otherwise
	var idempotencyStore shared.IdempotencyStore
	if cfg.Idempotency.Enabled {
		redisStore, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
			idempotencyStore = cache.NewInMemoryIdempotencyStore()
		} else {
			log.Info("Redis idempotency store connected",
				zap.String("host", cfg.Redis.Host),
				zap.Int("port", cfg.Redis.Port),
			)
			idempotencyStore = redisStore
		}
		defer func() {
			if err := idempotencyStore.Close(); err != nil {
				log.Error("Error closing idempotency store", zap.Error(err))
			}
		}()
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	requestService := procurementapp.NewQuoteRequestService(
		requestRepo, quoteRepo, userRepo, vendorRepo, fundingRepo, catalogRepo, log)
	quoteService := procurementapp.NewVendorQuoteService(quoteRepo, requestRepo, vendorRepo, log)
	conversionService := procurementapp.NewConversionService(requestRepo, quoteRepo, orderRepo, vendorRepo, log)
	orderService := orderingapp.NewPurchaseOrderService(orderRepo, requestRepo, fundingRepo, log)

	if idempotencyStore != nil {
		conversionService.SetIdempotencyStore(idempotencyStore, shared.IdempotencyConfig{
			Enabled: cfg.Idempotency.Enabled,
			TTL:     cfg.Idempotency.TTL,
		})
	}

	// Event bus with the pipeline audit trail subscribed
	eventBus := event.NewInMemoryEventBus(log)
	auditHandler := event.NewPipelineAuditHandler(log)
	eventBus.Subscribe(event.NewIdempotentHandler(auditHandler, pickAuditStore(idempotencyStore), log))
	log.Info("Event handlers registered",
		zap.Strings("pipeline_audit_events", auditHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	requestService.SetEventPublisher(eventBus)
	quoteService.SetEventPublisher(eventBus)
	conversionService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Config{
		Logger:               log,
		AppConfig:            cfg,
		JWTService:           jwtService,
		AuthHandler:          handler.NewAuthHandler(authService, log),
		QuoteRequestHandler:  handler.NewQuoteRequestHandler(requestService, quoteService, conversionService, log),
		PurchaseOrderHandler: handler.NewPurchaseOrderHandler(orderService, log),
		SystemHandler:        handler.NewSystemHandler(db, cfg.App.Name, log),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// pickAuditStore gives the audit handler its own idempotency store so
// replayed events are logged once even when Redis is disabled
func pickAuditStore(store shared.IdempotencyStore) shared.IdempotencyStore {
	if store != nil {
		return store
	}
	return cache.NewInMemoryIdempotencyStore()
}

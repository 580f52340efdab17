package router

import (
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/bizcore/backend/internal/infrastructure/auth"
	"github.com/bizcore/backend/internal/infrastructure/config"
	"github.com/bizcore/backend/internal/infrastructure/logger"
	"github.com/bizcore/backend/internal/infrastructure/telemetry"
	"github.com/bizcore/backend/internal/interfaces/http/handler"
	"github.com/bizcore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers are the HTTP handlers mounted by the engine
type Handlers struct {
	Health             *handler.HealthHandler
	Sales              *handler.SaleHandler
	Receipts           *handler.ReceiptHandler
	Inventory          *handler.InventoryHandler
	FinancialMovements *handler.FinancialMovementHandler
}

// EngineConfig is everything the engine needs besides the handlers
type EngineConfig struct {
	HTTP             config.HTTPConfig
	JWT              config.JWTConfig
	JWTService       *auth.JWTService
	TracingEnabled   bool
	ServiceName      string
	MeterProvider    *telemetry.MeterProvider
	IdempotencyStore shared.IdempotencyStore
	Logger           *zap.Logger
}

// NewEngine builds the gin engine. Global middleware runs in this order:
// recovery, request logging, tracing, metrics, CORS, security headers and
// the body limit. The /api/v1 group adds authentication and tenant
// resolution. Only the health checks are public.
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.ServiceName,
		Enabled:     cfg.TracingEnabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: cfg.MeterProvider,
		Logger:        log,
	}))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", h.Health.Check)
	engine.GET("/api/v1/health", h.Health.Check)

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Use(
		middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:        cfg.JWTService,
			AllowTenantHeader: cfg.JWT.AllowTenantHeader,
			Logger:            log,
		}),
		middleware.RequireTenant(),
		middleware.TracingAttributeInjector(),
	)

	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Store:  cfg.IdempotencyStore,
		Logger: log,
	})

	salesRoutes := NewDomainGroup("sales", "/sales")
	salesRoutes.POST("", idempotent, h.Sales.Create)
	salesRoutes.GET("", h.Sales.List)
	salesRoutes.GET("/outstanding-credit", h.Sales.OutstandingCredit)
	salesRoutes.GET("/:id", h.Sales.Get)
	salesRoutes.DELETE("/:id", h.Sales.Delete)

	receiptRoutes := NewDomainGroup("receipts", "/receipts")
	receiptRoutes.POST("/credit", idempotent, h.Receipts.RegisterCreditPayment)

	inventoryRoutes := NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("", h.Inventory.Create)
	inventoryRoutes.GET("", h.Inventory.List)
	inventoryRoutes.GET("/:id", h.Inventory.Get)
	inventoryRoutes.DELETE("/:id", h.Inventory.Delete)
	inventoryRoutes.POST("/:id/movements", idempotent, h.Inventory.ApplyMovement)

	financeRoutes := NewDomainGroup("finance", "/financial-movements")
	financeRoutes.GET("", h.FinancialMovements.List)

	r.Register(salesRoutes).
		Register(receiptRoutes).
		Register(inventoryRoutes).
		Register(financeRoutes)
	r.Setup()

	return engine
}

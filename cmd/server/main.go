package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	financeapp "github.com/bizcore/backend/internal/application/finance"
	inventoryapp "github.com/bizcore/backend/internal/application/inventory"
	"github.com/bizcore/backend/internal/application/ledger"
	salesapp "github.com/bizcore/backend/internal/application/sales"
	"github.com/bizcore/backend/internal/infrastructure/auth"
	"github.com/bizcore/backend/internal/infrastructure/cache"
	"github.com/bizcore/backend/internal/infrastructure/config"
	"github.com/bizcore/backend/internal/infrastructure/event"
	"github.com/bizcore/backend/internal/infrastructure/logger"
	"github.com/bizcore/backend/internal/infrastructure/persistence"
	"github.com/bizcore/backend/internal/infrastructure/telemetry"
	"github.com/bizcore/backend/internal/interfaces/http/handler"
	"github.com/bizcore/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// A local .env only fills variables that are not already set
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting BizCore Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Tracing and metrics are no-ops unless telemetry is enabled
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer shutdownWithTimeout(log, "tracer provider", tracerProvider.Shutdown)

	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer shutdownWithTimeout(log, "meter provider", meterProvider.Shutdown)

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.DBTraceEnabled {
		plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:    true,
			LogFullSQL: cfg.Telemetry.DBLogFullSQL,
			DBName:     cfg.Database.DBName,
		}, log)
		if err := plugin.Register(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}
	if meterProvider.IsEnabled() {
		dbMetrics, err := telemetry.NewDBMetrics(meterProvider.Meter("bizcore.db"), telemetry.DefaultSlowQueryThreshold, log)
		if err != nil {
			log.Warn("Failed to create database metrics", zap.Error(err))
		} else if err := db.DB.Use(dbMetrics); err != nil {
			log.Warn("Failed to register database metrics", zap.Error(err))
		} else {
			defer func() { _ = dbMetrics.Stop() }()
		}
	}

	// Repositories and the unit of work
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	itemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	movementRepo := persistence.NewGormFinancialMovementRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB, persistence.RetryConfig{
		MaxAttempts: cfg.Database.MaxRetries,
		BaseBackoff: cfg.Database.RetryBackoff,
		Timeout:     cfg.Database.TxTimeout,
	}, log)

	// Automatic financial movements are appended after the primary commit
	recorder := ledger.NewRetryingRecorder(movementRepo, ledger.RetryConfig{
		MaxAttempts: cfg.Ledger.MaxAttempts,
		BaseBackoff: cfg.Ledger.BaseBackoff,
		Timeout:     cfg.Ledger.Timeout,
	}, log)

	saleService := salesapp.NewSaleService(scope, saleRepo, paymentRepo, recorder, log)
	settlementService := financeapp.NewCreditSettlementService(scope, recorder, log)
	stockService := inventoryapp.NewStockMovementService(scope, itemRepo, recorder, log)
	movementService := ledger.NewMovementService(movementRepo)

	eventBus := event.NewInMemoryEventBus(log)
	if meterProvider.IsEnabled() {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:  meterProvider.Meter("bizcore.business"),
			Logger: log,
		})
		if err != nil {
			log.Warn("Failed to create business metrics", zap.Error(err))
		} else {
			eventBus.Subscribe(businessMetrics)
			log.Info("Business metrics subscribed", zap.Strings("event_types", businessMetrics.EventTypes()))
		}
	}
	saleService.SetEventPublisher(eventBus)
	settlementService.SetEventPublisher(eventBus)
	stockService.SetEventPublisher(eventBus)

	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() { _ = idempotencyStore.Close() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWT.AllowTenantHeader {
		log.Warn("X-Tenant-ID header authentication is enabled; do not use in production")
	}

	engine := router.NewEngine(router.EngineConfig{
		HTTP:             cfg.HTTP,
		JWT:              cfg.JWT,
		JWTService:       auth.NewJWTService(cfg.JWT),
		TracingEnabled:   tracerProvider.IsEnabled(),
		ServiceName:      cfg.Telemetry.ServiceName,
		MeterProvider:    meterProvider,
		IdempotencyStore: idempotencyStore,
		Logger:           log,
	}, router.Handlers{
		Health:             handler.NewHealthHandler(db),
		Sales:              handler.NewSaleHandler(saleService),
		Receipts:           handler.NewReceiptHandler(settlementService),
		Inventory:          handler.NewInventoryHandler(stockService),
		FinancialMovements: handler.NewFinancialMovementHandler(movementService),
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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func shutdownWithTimeout(log *zap.Logger, name string, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Error("Error shutting down "+name, zap.Error(err))
	}
}

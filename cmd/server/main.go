package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/fieldserv/backend/internal/application/catalog"
	identityapp "github.com/fieldserv/backend/internal/application/identity"
	inventoryapp "github.com/fieldserv/backend/internal/application/inventory"
	purchasingapp "github.com/fieldserv/backend/internal/application/purchasing"
	workorderapp "github.com/fieldserv/backend/internal/application/workorder"
	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/fieldserv/backend/internal/infrastructure/auth"
	"github.com/fieldserv/backend/internal/infrastructure/cache"
	"github.com/fieldserv/backend/internal/infrastructure/config"
	"github.com/fieldserv/backend/internal/infrastructure/logger"
	"github.com/fieldserv/backend/internal/infrastructure/persistence"
	"github.com/fieldserv/backend/internal/interfaces/http/handler"
	"github.com/fieldserv/backend/internal/interfaces/http/middleware"
	"github.com/fieldserv/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting FieldServ Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with SQL logging through zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	itemRepo := persistence.NewGormCatalogItemRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	balanceRepo := persistence.NewGormStockBalanceRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	orderRepo := persistence.NewGormWorkOrderRepository(db.DB)
	lineRepo := persistence.NewGormWorkOrderLineRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Transaction scopes
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	workOrderScope := persistence.NewGormWorkOrderTransactionScope(db.DB)
	purchasingScope := persistence.NewGormPurchasingTransactionScope(db.DB)

	// Idempotency store: Redis when enabled, in-memory otherwise
	var idempotencyStore shared.IdempotencyStore
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		idempotencyStore = redisStore
		log.Info("Redis idempotency store initialized",
			zap.String("addr", cfg.Redis.Addr()))
	} else {
		memStore := cache.NewInMemoryIdempotencyStore()
		defer memStore.Close()
		idempotencyStore = memStore
		log.Info("In-memory idempotency store initialized")
	}

	// JWT service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Application services
	movementService := inventoryapp.NewMovementService(
		inventoryScope, balanceRepo, movementRepo, itemRepo, locationRepo)
	movementService.SetIdempotencyStore(idempotencyStore)

	catalogService := catalogapp.NewCatalogService(itemRepo, locationRepo, balanceRepo)
	orderService := workorderapp.NewWorkOrderService(workOrderScope, orderRepo, lineRepo)
	lineService := workorderapp.NewLineService(workOrderScope, orderRepo, lineRepo, itemRepo)
	paymentService := workorderapp.NewPaymentService(workOrderScope, orderRepo, paymentRepo)
	purchaseService := purchasingapp.NewPurchaseService(
		purchasingScope, purchaseRepo, itemRepo, locationRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	// HTTP engine
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	middleware.SetupValidator()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS())

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	router.Setup(engine, router.Config{
		JWTService: jwtService,
		Handlers: router.Handlers{
			Auth:      handler.NewAuthHandler(authService),
			Catalog:   handler.NewCatalogHandler(catalogService),
			Inventory: handler.NewInventoryHandler(movementService),
			WorkOrder: handler.NewWorkOrderHandler(orderService, lineService, paymentService),
			Purchase:  handler.NewPurchaseHandler(purchaseService),
		},
		HealthCheck: db.Ping,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in a goroutine so shutdown signals can be handled
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

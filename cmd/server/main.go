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

	catalogapp "github.com/wims/backend/internal/application/catalog"
	identityapp "github.com/wims/backend/internal/application/identity"
	inventoryapp "github.com/wims/backend/internal/application/inventory"
	notificationapp "github.com/wims/backend/internal/application/notification"
	partnerapp "github.com/wims/backend/internal/application/partner"
	reportapp "github.com/wims/backend/internal/application/report"
	transferapp "github.com/wims/backend/internal/application/transfer"
	"github.com/wims/backend/internal/infrastructure/auth"
	"github.com/wims/backend/internal/infrastructure/cache"
	"github.com/wims/backend/internal/infrastructure/config"
	"github.com/wims/backend/internal/infrastructure/event"
	"github.com/wims/backend/internal/infrastructure/logger"
	"github.com/wims/backend/internal/infrastructure/persistence"
	"github.com/wims/backend/internal/interfaces/http/handler"
	"github.com/wims/backend/internal/interfaces/http/middleware"
	"github.com/wims/backend/internal/interfaces/http/router"
)

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

	log.Info("Starting WIMS backend",
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
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	stockRepo := persistence.NewGormStockItemRepository(db.DB)
	transactionRepo := persistence.NewGormInventoryTransactionRepository(db.DB)
	transferRepo := persistence.NewGormTransferRequestRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	reportRepo := persistence.NewGormInventoryReportRepository(db.DB)
	transferScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService)
	userService := identityapp.NewUserService(userRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, stockRepo)
	warehouseService := partnerapp.NewWarehouseService(warehouseRepo, userRepo, stockRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	inventoryService := inventoryapp.NewInventoryService(stockRepo, transactionRepo, productRepo, warehouseRepo)
	notificationService := notificationapp.NewNotificationService(notificationRepo)
	transferService := transferapp.NewTransferService(
		transferRepo, warehouseRepo, productRepo, userRepo, stockRepo, transferScope)
	reportService := reportapp.NewReportService(reportRepo, warehouseRepo)

	// Report summary cache (optional)
	if cfg.Report.CacheEnabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		reportService.SetCache(cache.NewRedisSummaryCache(redisClient, cfg.Report.CacheTTL))
		log.Info("Report summary cache enabled", zap.Duration("ttl", cfg.Report.CacheTTL))
	}

	// Event bus and transfer notifications
	eventBus := event.NewInMemoryEventBus(log)
	transferNotifier := notificationapp.NewTransferNotifier(log, notificationRepo, warehouseRepo)
	eventBus.Subscribe(transferNotifier, transferNotifier.EventTypes()...)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	productService.SetEventPublisher(eventBus)
	inventoryService.SetEventPublisher(eventBus)
	transferService.SetEventPublisher(eventBus)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService, log)
	userHandler := handler.NewUserHandler(userService, log)
	categoryHandler := handler.NewCategoryHandler(categoryService, log)
	productHandler := handler.NewProductHandler(productService, log)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService, log)
	supplierHandler := handler.NewSupplierHandler(supplierService, log)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, log)
	transferHandler := handler.NewTransferHandler(transferService, log)
	notificationHandler := handler.NewNotificationHandler(notificationService, log)
	reportHandler := handler.NewReportHandler(reportService, log)
	healthHandler := handler.NewHealthHandler(db, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS(cfg.HTTP))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	engine.Use(middleware.JWTAuth(middleware.JWTConfig{
		Service: jwtService,
		Logger:  log,
		SkipPaths: []string{
			"/health",
			"/api/v1/auth/login",
		},
	}))

	healthHandler.Register(engine)

	r := router.New(engine)
	r.Register(
		authHandler,
		userHandler,
		categoryHandler,
		productHandler,
		warehouseHandler,
		supplierHandler,
		inventoryHandler,
		transferHandler,
		notificationHandler,
		reportHandler,
	)
	r.Setup()

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

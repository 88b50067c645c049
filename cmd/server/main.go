package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	commissionapp "github.com/marketplace/backend/internal/application/commission"
	registrationapp "github.com/marketplace/backend/internal/application/registration"
	storeapp "github.com/marketplace/backend/internal/application/store"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/cache"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/event"
	"github.com/marketplace/backend/internal/infrastructure/imaging"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/infrastructure/payment"
	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"github.com/marketplace/backend/internal/infrastructure/storage"
	"github.com/marketplace/backend/internal/interfaces/http/handler"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
	"github.com/marketplace/backend/internal/interfaces/http/router"
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
		_ = logger.Sync(log)
	}()

	log.Info("Starting marketplace backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
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
	authIdentityRepo := persistence.NewGormAuthIdentityRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	storeAddressRepo := persistence.NewGormStoreAddressRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	productBrandLinkRepo := persistence.NewGormProductBrandLinkRepository(db.DB)
	productStoreLinkRepo := persistence.NewGormProductStoreLinkRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	paymentSessionRepo := persistence.NewGormPaymentSessionRepository(db.DB)
	customerStoreLinkRepo := persistence.NewGormCustomerStoreLinkRepository(db.DB)

	// Object storage for uploaded media
	var objectStorage catalogapp.ObjectStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage ready", zap.String("bucket", s3Storage.GetBucket()))
	} else {
		objectStorage = storage.NewMemoryObjectStorage()
		log.Warn("No storage bucket configured, uploads are kept in memory")
	}

	// Background removal for product images
	var remover imaging.BackgroundRemover = imaging.NopRemover{}
	if cfg.Imaging.Endpoint != "" {
		remover = imaging.NewHTTPRemover(cfg.Imaging, log)
		log.Info("Background removal enabled", zap.String("endpoint", cfg.Imaging.Endpoint))
	}

	// Stripe metadata annotation for payment intents
	var annotator payment.PaymentAnnotator = payment.NopAnnotator{}
	if cfg.Stripe.APIKey != "" {
		annotator = payment.NewStripeAnnotator(cfg.Stripe, log)
		log.Info("Stripe payment annotation enabled")
	}

	// Idempotency store for event redelivery protection
	var idempotencyStore shared.IdempotencyStore
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		idempotencyStore = redisStore
		log.Info("Redis idempotency store enabled")
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	registrationService := registrationapp.NewService(
		authIdentityRepo, userRepo, storeRepo, storeAddressRepo,
		jwtService, cfg.Registration, log,
	)
	brandService := catalogapp.NewBrandService(brandRepo, log)
	productService := catalogapp.NewProductService(
		productRepo, productStoreLinkRepo, productBrandLinkRepo,
		brandRepo, storeRepo, cfg.Pricing, log,
	)
	uploadService := catalogapp.NewUploadService(objectStorage, remover, log)
	storeService := storeapp.NewService(storeRepo, storeAddressRepo, log)

	// Initialize event bus and the commission pipeline
	eventBus := event.NewInMemoryEventBus(log)
	orderPlacedHandler := commissionapp.NewOrderPlacedHandler(
		orderRepo, paymentSessionRepo, customerStoreLinkRepo,
		productStoreLinkRepo, storeRepo, annotator, cfg.Commission, log,
	)
	eventBus.Subscribe(event.NewIdempotentHandler(orderPlacedHandler, idempotencyStore, log))

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	log.Info("Event handlers registered",
		zap.Strings("order_placed_events", orderPlacedHandler.EventTypes()),
	)

	// Initialize HTTP handlers
	registrationHandler := handler.NewRegistrationHandler(registrationService, log)
	brandHandler := handler.NewBrandHandler(brandService, log)
	productHandler := handler.NewProductHandler(productService, log)
	storeHandler := handler.NewStoreHandler(storeService, log)
	uploadHandler := handler.NewUploadHandler(uploadService, log)
	hooksHandler := handler.NewHooksHandler(eventBus, log)
	healthHandler := handler.NewHealthHandler(db.DB, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request id, panic recovery, request logging,
	// security headers, CORS, body size limit.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Register routes
	r := router.NewRouter(engine, jwtService, router.WithLogger(log))
	r.RegisterPublic(healthHandler)
	r.RegisterPublic(registrationHandler)
	r.RegisterPublic(brandHandler)
	r.RegisterPublic(productHandler)
	r.RegisterPublic(storeHandler)
	r.RegisterPublic(hooksHandler)
	r.RegisterAdmin(brandHandler)
	r.RegisterAdmin(productHandler)
	r.RegisterAdmin(storeHandler)
	r.RegisterAdmin(uploadHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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

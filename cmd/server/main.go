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

	auditapp "github.com/tecpap/backend/internal/application/audit"
	catalogapp "github.com/tecpap/backend/internal/application/catalog"
	clientapp "github.com/tecpap/backend/internal/application/client"
	"github.com/tecpap/backend/internal/application/intake"
	orderapp "github.com/tecpap/backend/internal/application/order"
	"github.com/tecpap/backend/internal/domain/catalog"
	"github.com/tecpap/backend/internal/domain/shared"
	"github.com/tecpap/backend/internal/infrastructure/cache"
	"github.com/tecpap/backend/internal/infrastructure/classifier"
	"github.com/tecpap/backend/internal/infrastructure/config"
	"github.com/tecpap/backend/internal/infrastructure/logger"
	"github.com/tecpap/backend/internal/infrastructure/persistence"
	"github.com/tecpap/backend/internal/interfaces/http/handler"
	"github.com/tecpap/backend/internal/interfaces/http/middleware"
	"github.com/tecpap/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting order intake backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
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

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	catalogRepo := persistence.NewGormCatalogRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)

	// Seed the bag type catalog; existing rows are left untouched
	if err := catalogRepo.Seed(context.Background(), catalog.DefaultCatalog()); err != nil {
		log.Fatal("Failed to seed product catalog", zap.Error(err))
	}

	// Idempotency fast path for the ingestion gate
	idempotencyStore, err := cache.NewIdempotencyStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// External reorder classifier; no-op when no endpoint is configured
	reorderClassifier := classifier.New(cfg.Classifier)

	// Application services
	resolver := clientapp.NewIdentityResolver(clientRepo, cfg.Resolver.FuzzyThreshold, log)
	reorderService := intake.NewReorderService(orderRepo, resolver, cfg.Reorder.ConfidenceFloor, log)
	ingestionService := intake.NewIngestionService(
		orderRepo,
		catalogRepo,
		auditRepo,
		resolver,
		reorderService,
		reorderClassifier,
		idempotencyStore,
		shared.IdempotencyConfig{TTL: cfg.Idempotency.TTL, Enabled: cfg.Idempotency.Enabled},
		log,
	)
	orderService := orderapp.NewService(orderRepo, auditRepo, log)
	clientService := clientapp.NewService(clientRepo, orderRepo, resolver)
	catalogService := catalogapp.NewService(catalogRepo)
	auditService := auditapp.NewService(auditRepo)

	// HTTP handlers
	intakeHandler := handler.NewIntakeHandler(ingestionService)
	orderHandler := handler.NewOrderHandler(orderService)
	clientHandler := handler.NewClientHandler(clientService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	articleHandler := handler.NewArticleHandler()
	auditHandler := handler.NewAuditHandler(auditService)
	systemHandler := handler.NewSystemHandler(cfg.App.Name)

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
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(intakeHandler).
		Register(orderHandler).
		Register(clientHandler).
		Register(catalogHandler).
		Register(articleHandler).
		Register(auditHandler).
		Register(systemHandler)
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

// healthHandler reports liveness of the process and its database
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

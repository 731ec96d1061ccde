package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	inventoryapp "github.com/stokku/backend/internal/application/inventory"
	notifapp "github.com/stokku/backend/internal/application/notification"
	tenantapp "github.com/stokku/backend/internal/application/tenant"
	"github.com/stokku/backend/internal/infrastructure/auth"
	"github.com/stokku/backend/internal/infrastructure/cache"
	"github.com/stokku/backend/internal/infrastructure/config"
	"github.com/stokku/backend/internal/infrastructure/logger"
	"github.com/stokku/backend/internal/infrastructure/persistence"
	"github.com/stokku/backend/internal/infrastructure/scheduler"
	"github.com/stokku/backend/internal/interfaces/http/handler"
	"github.com/stokku/backend/internal/interfaces/http/middleware"
	"github.com/stokku/backend/internal/interfaces/http/router"
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

	log.Info("Starting Stokku Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

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

	// Alert summary cache: Redis when reachable, in-memory otherwise
	var summaryCache notifapp.SummaryCache
	redisCache, err := cache.NewRedisSummaryCache(
		cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB,
		cache.WithSummaryTTL(cfg.Inventory.SummaryCacheTTL),
		cache.WithSummaryLogger(log),
	)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory summary cache", zap.Error(err))
		summaryCache = cache.NewMemorySummaryCache()
	} else {
		summaryCache = redisCache
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr()))
	}

	// Initialize repositories
	itemRepo := persistence.NewGormItemRepository(db.DB)
	batchRepo := persistence.NewGormItemBatchRepository(db.DB)
	txRepo := persistence.NewGormStockTransactionRepository(db.DB)
	activityRepo := persistence.NewGormActivityLogRepository(db.DB)
	notifRepo := persistence.NewGormNotificationRepository(db.DB)
	businessRepo := persistence.NewGormBusinessRepository(db.DB)
	planRepo := persistence.NewGormSubscriptionPlanRepository(db.DB)
	staffRepo := persistence.NewGormStaffUserRepository(db.DB)

	// Transaction scopes
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	notificationScope := persistence.NewGormNotificationTransactionScope(db.DB)
	tenantScope := persistence.NewGormTenantTransactionScope(db.DB)

	loc := cfg.Location()

	// Initialize application services
	mutationService := inventoryapp.NewStockMutationService(inventoryScope, activityRepo)
	historyService := inventoryapp.NewStockHistoryService(itemRepo, txRepo, loc)
	alertService := notifapp.NewAlertService(
		notificationScope, notifRepo, batchRepo, itemRepo,
		summaryCache, cfg.Inventory.ExpiryWindowDays, loc,
	)
	quotaService := tenantapp.NewQuotaService(tenantScope, businessRepo, planRepo, staffRepo)
	subscriptionService := tenantapp.NewSubscriptionService(businessRepo, planRepo)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Background jobs: alert refresh and subscription expiry sweep
	if cfg.Scheduler.Enabled {
		jobs := scheduler.New(alertService, subscriptionService, businessRepo, log, scheduler.Config{
			Enabled:              cfg.Scheduler.Enabled,
			AlertRefreshInterval: cfg.Scheduler.AlertRefreshInterval,
			SubscriptionSweep:    cfg.Scheduler.SubscriptionSweep,
			JobTimeout:           cfg.Scheduler.JobTimeout,
		})
		if err := jobs.Start(context.Background()); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := jobs.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()
		log.Info("Scheduler started",
			zap.Duration("alert_refresh_interval", cfg.Scheduler.AlertRefreshInterval),
			zap.Duration("subscription_sweep", cfg.Scheduler.SubscriptionSweep),
		)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := router.Setup(log, jwtService, router.Handlers{
		System:       handler.NewSystemHandler(db),
		Stock:        handler.NewStockHandler(mutationService),
		History:      handler.NewHistoryHandler(historyService, loc),
		Alert:        handler.NewAlertHandler(alertService),
		Staff:        handler.NewStaffHandler(quotaService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService),
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

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

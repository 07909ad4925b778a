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

	auditapp "github.com/stocktrack/backend/internal/application/audit"
	identityapp "github.com/stocktrack/backend/internal/application/identity"
	"github.com/stocktrack/backend/internal/application/importer"
	inventoryapp "github.com/stocktrack/backend/internal/application/inventory"
	reportapp "github.com/stocktrack/backend/internal/application/report"
	salesapp "github.com/stocktrack/backend/internal/application/sales"
	"github.com/stocktrack/backend/internal/infrastructure/auth"
	"github.com/stocktrack/backend/internal/infrastructure/config"
	"github.com/stocktrack/backend/internal/infrastructure/logger"
	"github.com/stocktrack/backend/internal/infrastructure/persistence"
	"github.com/stocktrack/backend/internal/infrastructure/storage"
	"github.com/stocktrack/backend/internal/infrastructure/telemetry"
	"github.com/stocktrack/backend/internal/interfaces/http/handler"
	"github.com/stocktrack/backend/internal/interfaces/http/middleware"
	"github.com/stocktrack/backend/internal/interfaces/http/router"
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

	log.Info("Starting StockTrack backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
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
	if cfg.Telemetry.Enabled {
		if err := telemetry.RegisterDBTracing(db.DB, cfg.Database.DBName, log); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected")

	// Token blacklist, backed by Redis with an in-memory fallback for dev
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}()
		blacklist = redisBlacklist
	}

	// Photo storage is optional; item photo endpoints report it as disabled
	// when credentials are missing.
	var photoStorage inventoryapp.PhotoStorage
	if cfg.Storage.AccessKey != "" {
		s3Storage, err := storage.NewS3PhotoStorage(cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize photo storage", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			cancel()
			log.Fatal("Failed to ensure photo bucket", zap.Error(err))
		}
		cancel()
		photoStorage = s3Storage
		log.Info("Photo storage ready", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		log.Warn("Photo storage not configured, photo endpoints disabled")
	}

	// Repositories
	groupRepo := persistence.NewGormGroupRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	recorder := auditapp.NewActivityRecorder(activityRepo, log)
	groupService := inventoryapp.NewGroupService(groupRepo, recorder)
	itemService := inventoryapp.NewItemService(itemRepo, groupRepo, photoStorage, recorder)
	shopService := salesapp.NewShopService(shopRepo, recorder)
	invoiceService := salesapp.NewInvoiceService(invoiceRepo, shopRepo, userRepo, txScope, recorder)
	importService := importer.NewImportService(txScope, recorder)
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, recorder, log)
	userService := identityapp.NewUserService(userRepo, shopRepo, recorder)
	reportService := reportapp.NewReportService(reportRepo)
	activityService := auditapp.NewActivityService(activityRepo)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine := router.New(router.Config{
		Handlers: router.Handlers{
			Auth:     handler.NewAuthHandler(authService),
			User:     handler.NewUserHandler(userService),
			Group:    handler.NewGroupHandler(groupService),
			Item:     handler.NewItemHandler(itemService),
			Shop:     handler.NewShopHandler(shopService),
			Invoice:  handler.NewInvoiceHandler(invoiceService),
			Import:   handler.NewImportHandler(importService),
			Report:   handler.NewReportHandler(reportService),
			Activity: handler.NewActivityHandler(activityService),
		},
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
		ServiceName:    cfg.Telemetry.ServiceName,
		CORS:           corsCfg,
		TracingEnabled: cfg.Telemetry.Enabled,
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

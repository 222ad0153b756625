package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	refdataapp "github.com/refdata/backend/internal/application/refdata"
	"github.com/refdata/backend/internal/infrastructure/auth"
	"github.com/refdata/backend/internal/infrastructure/cache"
	"github.com/refdata/backend/internal/infrastructure/config"
	"github.com/refdata/backend/internal/infrastructure/logger"
	"github.com/refdata/backend/internal/infrastructure/notify"
	"github.com/refdata/backend/internal/infrastructure/persistence"
	"github.com/refdata/backend/internal/infrastructure/queue"
	"github.com/refdata/backend/internal/infrastructure/registry"
	"github.com/refdata/backend/internal/infrastructure/telemetry"
	"github.com/refdata/backend/internal/interfaces/http/handler"
	"github.com/refdata/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
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
		_ = logger.Sync(log)
	}()

	log.Info("Starting reference data service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

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

	// Redis is optional. Without it list reads go straight to the
	// database and user events carry no cache invalidation.
	var listCache refdataapp.ListCache
	var invalidator queue.CacheInvalidator
	if redisCache, err := cache.NewListCache(cfg.Redis, log); err != nil {
		log.Warn("Redis unavailable, list caching disabled", zap.Error(err))
	} else {
		listCache = redisCache
		invalidator = redisCache
	}

	// Repositories
	cityRepo := persistence.NewGormCityRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	storageRepo := persistence.NewGormStorageRepository(db.DB)
	registerRepo := persistence.NewGormCashRegisterRepository(db.DB)
	entityRepo := persistence.NewGormLegalEntityRepository(db.DB)
	typeRepo := persistence.NewGormLegalEntityTypeRepository(db.DB)
	relationRepo := persistence.NewGormRelationRepository(db.DB)

	// External services
	stateRegistry := registry.NewClient(cfg.Registry, log)
	notifier := notify.NewTelegramNotifier(cfg.Telegram, log)
	jwtService := auth.NewJWTService(cfg.JWT)
	metrics := telemetry.NewMetrics()

	// Application services
	cityService := refdataapp.NewCityService(cityRepo, listCache)
	warehouseService := refdataapp.NewWarehouseService(warehouseRepo, cityRepo)
	storageService := refdataapp.NewStorageService(storageRepo)
	registerService := refdataapp.NewCashRegisterService(registerRepo)
	entityService := refdataapp.NewLegalEntityService(entityRepo, relationRepo, typeRepo, stateRegistry, notifier)
	entityTypeService := refdataapp.NewEntityTypeService(typeRepo)
	relationService := refdataapp.NewRelationService(relationRepo, entityRepo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// User event consumer keeps audit references and cached lists in
	// step with the identity service.
	if cfg.Events.Enabled {
		processor := queue.NewUserEventProcessor(invalidator, log)
		consumer := queue.NewConsumer(cfg.Events, processor, log)
		consumer.Start(ctx)
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := consumer.Stop(stopCtx); err != nil {
				log.Error("Error stopping event consumer", zap.Error(err))
			}
		}()
		log.Info("User event consumer started",
			zap.Strings("brokers", cfg.Events.Brokers),
			zap.String("topic", cfg.Events.Topic),
		)
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Dependencies{
		Logger:     log,
		JWTService: jwtService,
		Metrics:    metrics,

		System:      handler.NewSystemHandler(db),
		Cities:      handler.NewCityHandler(cityService),
		Warehouses:  handler.NewWarehouseHandler(warehouseService),
		Storages:    handler.NewStorageHandler(storageService),
		CashRegs:    handler.NewCashRegisterHandler(registerService),
		Entities:    handler.NewLegalEntityHandler(entityService),
		EntityTypes: handler.NewEntityTypeHandler(entityTypeService),
		Relations:   handler.NewRelationHandler(relationService),
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
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}

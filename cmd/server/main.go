package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"shramsiddhi/internal/config"
	"shramsiddhi/internal/database"
	"shramsiddhi/internal/handlers"
	"shramsiddhi/internal/logger"
	"shramsiddhi/internal/metrics"
	"shramsiddhi/internal/migrations"
	"shramsiddhi/internal/ratelimit"
	"shramsiddhi/internal/redis"
	"shramsiddhi/internal/repository"
	"shramsiddhi/internal/services"
	"shramsiddhi/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.App.Environment, cfg.App.Name)
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer zlog.Sync()
	zap.ReplaceGlobals(zlog)

	if cfg.UsingInsecureSecret() {
		zlog.Warn("JWT_SECRET not set, signing tokens with the development fallback secret")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db := openDatabase(ctx, cfg, zlog)

	checks := []handlers.HealthCheck{{
		Name:  "database",
		Check: func(ctx context.Context) error { return database.Ping(ctx, db) },
	}}

	// Rate-limit counters live in Redis when configured so limits are shared
	counter := ratelimit.Counter(ratelimit.NewMemoryCounter())
	if cfg.Redis.URL != "" {
		redisClient, err := redis.Initialize(ctx, cfg.Redis.URL)
		if err != nil {
			zlog.Warn("Redis unavailable, using in-memory rate limits", zap.Error(err))
		} else {
			defer redisClient.Close()
			counter = ratelimit.NewRedisCounter(redisClient)
			checks = append(checks, handlers.HealthCheck{Name: "redis", Check: redisClient.Ping})
			zlog.Info("rate limits backed by Redis")
		}
	}

	sanitizer, err := validation.NewSanitizer()
	if err != nil {
		zlog.Fatal("Failed to compile payload schemas", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	requestRepo := repository.NewClientRequestRepository(db)
	contactRepo := repository.NewContactRepository(db)
	franchiseRepo := repository.NewFranchiseRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Initialize services and routes
	router := handlers.NewRouter(cfg, zlog, metrics.New(), counter, handlers.Services{
		Auth:           services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Workers:        services.NewWorkerService(workerRepo, sanitizer),
		ClientRequests: services.NewClientRequestService(requestRepo, sanitizer),
		Inquiries:      services.NewInquiryService(contactRepo, franchiseRepo, sanitizer),
		Admin:          services.NewAdminService(adminRepo),
		Checks:         checks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

// openDatabase returns nil only when no usable credentials were given; the
// server still starts and every store call reports the database as
// unavailable. Otherwise the pool connects lazily and migrations are retried
// in the background until the server is reachable.
func openDatabase(ctx context.Context, cfg *config.Config, zlog *zap.Logger) *gorm.DB {
	if !cfg.Database.Configured() {
		zlog.Error("DATABASE_URL is not set, store calls will fail until it is configured")
		return nil
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		zlog.Error("Invalid database configuration", zap.Error(err))
		return nil
	}

	seed := migrations.AdminSeed{Email: cfg.Auth.DefaultAdminEmail, Password: cfg.Auth.DefaultAdminPassword}
	go func() {
		if err := migrations.RunWithRetry(ctx, db, seed, zlog, time.Second, cfg.Server.DatabaseRetryMax); err != nil {
			zlog.Error("Database migrations abandoned", zap.Error(err))
		}
	}()
	return db
}

// Package main provides the main entry point for the academy admin gateway
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/alfurqan/academy-admin/app/handlers"
	"github.com/alfurqan/academy-admin/app/middleware"
	"github.com/alfurqan/academy-admin/app/router"
	"github.com/alfurqan/academy-admin/app/services"
	businessflow "github.com/alfurqan/academy-admin/business_flow"
	"github.com/alfurqan/academy-admin/config"
	"github.com/alfurqan/academy-admin/repository"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.Config
	stopFuncs []func()
}

func main() {
	log.Println("Starting academy admin gateway...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := app.router.Start(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.router.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger through a rotating file writer
// when configured.
func setupLogging(cfg config.LoggingConfig) {
	if cfg.Output != "file" && cfg.Output != "both" {
		return
	}
	rotating := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	if cfg.Output == "both" {
		log.SetOutput(io.MultiWriter(os.Stdout, rotating))
		return
	}
	log.SetOutput(rotating)
}

// initializeCache initializes the Redis client and verifies connectivity.
// Returns a nil client when the cache is disabled.
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DB = cfg.RedisDB
	if cfg.Password != "" {
		opt.Password = cfg.Password
	}

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.Config) (*Application, error) {
	var stopFuncs []func()

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		stopFuncs = append(stopFuncs, func() { _ = rc.Close() })
	}

	// Canonical in-memory stores, loaded from the backend on first access
	tutorStore := repository.NewTutorStore()
	courseStore := repository.NewCourseStore()
	userStore := repository.NewUserStore()

	// Preferences write through to Redis; without a cache they still
	// persist for the process lifetime.
	var preferencesStore repository.PreferencesStore
	if rc != nil {
		preferencesStore = repository.NewRedisPreferencesStore(rc, cfg.Cache.RedisPrefix)
	} else {
		preferencesStore = repository.NewInMemoryPreferencesStore()
	}

	// Upstream client against the academy backend
	academyClient := services.NewAcademyClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)

	tokenService, err := services.NewSessionTokenService(cfg.Session.SecretKey, cfg.Session.TokenTTL, cfg.Session.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session token service: %w", err)
	}

	registry := businessflow.NewSessionRegistry(cfg.Session.IdleTTL)
	stopFuncs = append(stopFuncs, registry.Close)

	// Initialize flows
	tutorFlow := businessflow.NewTutorFlow(tutorStore, academyClient)
	courseFlow := businessflow.NewCourseFlow(courseStore, academyClient)
	userFlow := businessflow.NewUserFlow(userStore, academyClient)
	workspaceFlow := businessflow.NewWorkspaceFlow(registry, tokenService, preferencesStore, tutorStore, courseStore, userStore)
	statisticsFlow := businessflow.NewStatisticsFlow(academyClient, tutorStore, courseStore, userStore)

	// Initialize handlers
	tutorHandler := handlers.NewTutorHandler(tutorFlow)
	courseHandler := handlers.NewCourseHandler(courseFlow)
	userHandler := handlers.NewUserHandler(userFlow)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceFlow)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsFlow)

	sessionMiddleware := middleware.NewSessionMiddleware(workspaceFlow)

	appRouter := router.NewFiberRouter(
		router.Config{
			AppName:            "Academy Admin Gateway",
			AllowOrigins:       cfg.Security.AllowedOrigins,
			EnableMetrics:      cfg.Metrics.Enabled,
			MetricsPath:        cfg.Metrics.Path,
			RateLimitPerMinute: cfg.Security.GlobalRateLimit,
			BodyLimit:          cfg.Server.BodyLimit,
			ReadTimeout:        cfg.Server.ReadTimeout,
			WriteTimeout:       cfg.Server.WriteTimeout,
			IdleTimeout:        cfg.Server.IdleTimeout,
		},
		tutorHandler,
		courseHandler,
		userHandler,
		workspaceHandler,
		statisticsHandler,
		sessionMiddleware,
	)

	return &Application{
		router:    appRouter,
		config:    cfg,
		stopFuncs: stopFuncs,
	}, nil
}

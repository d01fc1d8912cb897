package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/escrow_settlement_app/internal/adapters/database/memory"
	"github.com/SscSPs/escrow_settlement_app/internal/adapters/database/pgsql"
	portsrepo "github.com/SscSPs/escrow_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/escrow_settlement_app/internal/core/services"
	"github.com/SscSPs/escrow_settlement_app/internal/dto"
	"github.com/SscSPs/escrow_settlement_app/internal/handlers"
	"github.com/SscSPs/escrow_settlement_app/internal/middleware"
	"github.com/SscSPs/escrow_settlement_app/internal/platform/config"
	"github.com/SscSPs/escrow_settlement_app/internal/platform/seed"
	"github.com/SscSPs/escrow_settlement_app/internal/utils"
	"github.com/SscSPs/escrow_settlement_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Escrow Settlement API
// @version 1.0
// @description Escrow settlement engine and affiliate withdrawal workflow.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()

	repos, health, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer analytics.Close()

	serviceContainer, err := services.NewServiceContainer(cfg, repos, services.WithEventSink(analytics))
	if err != nil {
		logger.Error("Failed to initialize services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.SeedDemoData {
		if err := seed.LoadDemoData(ctx, repos, serviceContainer.Settlement, logger); err != nil {
			logger.Error("Failed to load demo data", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to initialize rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dto.RegisterValidators()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, health, middleware.RateLimit(rateLimiter))

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.Bool("database", cfg.UseDatabase()))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openStore connects to PostgreSQL and migrates it when a database is
// configured, and falls back to the in-memory store otherwise.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, handlers.HealthChecker, func(), error) {
	if !cfg.UseDatabase() {
		logger.Info("Using in-memory store")
		store := memory.NewStore()
		return memory.NewRepositoryProvider(store), store, func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, nil, err
	}
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, nil, err
	}

	store := pgsql.NewStore(dbPool)
	return pgsql.NewRepositoryProvider(store), store, dbPool.Close, nil
}

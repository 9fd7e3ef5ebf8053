package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/forgo/foodfest/api/internal/cache"
	"github.com/forgo/foodfest/api/internal/config"
	"github.com/forgo/foodfest/api/internal/database"
	"github.com/forgo/foodfest/api/internal/handler"
	"github.com/forgo/foodfest/api/internal/middleware"
	"github.com/forgo/foodfest/api/internal/report"
	"github.com/forgo/foodfest/api/internal/repository"
	"github.com/forgo/foodfest/api/internal/service"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		URL:       cfg.Database.URL,
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("namespace", cfg.Database.Namespace),
		slog.String("database", cfg.Database.Database),
	)

	// Report cache is optional; an unreachable Redis is logged and skipped.
	var (
		reportCache service.ReportCache
		invalidator service.Invalidator
	)
	rc, err := cache.Connect(ctx, cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   "foodfest",
		TTL:      cfg.Redis.TTL,
	})
	switch {
	case err != nil:
		slog.Warn("report cache disabled", slog.String("error", err.Error()))
	case rc != nil:
		reportCache, invalidator = rc, rc
		defer func() { _ = rc.Close() }()
		slog.Info("report cache enabled", slog.String("addr", cfg.Redis.Addr))
	}

	// Initialize repositories
	stallRepo := repository.NewStallRepository(db)
	dishRepo := repository.NewDishRepository(db)
	visitorRepo := repository.NewVisitorRepository(db)
	festivalRepo := repository.NewFestivalRepository(db)

	// Initialize services
	entityService := service.NewEntityService(service.EntityServiceConfig{
		Stalls:   stallRepo,
		Dishes:   dishRepo,
		Visitors: visitorRepo,
		Cache:    invalidator,
	})
	reportService := service.NewReportService(service.ReportServiceConfig{
		Source:  festivalRepo,
		Cache:   reportCache,
		Options: report.Options{TotalContests: cfg.Query.TotalContests},
		Timeout: cfg.Query.Timeout,
	})
	festivalService := service.NewFestivalService(service.FestivalServiceConfig{
		Repo:        festivalRepo,
		Cache:       invalidator,
		SeedEnabled: cfg.IsDevelopment(),
	})

	mux := handler.NewRouter(handler.Routes{
		Health:   handler.NewHealthHandler(db),
		Entities: handler.NewEntityHandler(entityService),
		Reports:  handler.NewReportHandler(reportService),
		Festival: handler.NewFestivalHandler(festivalService),
		Metrics:  cfg.Metrics.Enabled,
		Seed:     cfg.IsDevelopment(),
	})

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RPS:   cfg.RateLimit.RPS,
		Burst: cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.Recovery,
		middleware.RequestID,
		middleware.Logger,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
		middleware.Metrics,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}

// @title Site Analytics API
// @version 1.0
// @description Privacy-respecting page view and event collector with aggregated reports.
// @BasePath /api
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"site-analytics-service/internal/config"
	"site-analytics-service/internal/logging"
	"site-analytics-service/internal/observability"
	"site-analytics-service/internal/ratelimit"

	hitsUsecase "site-analytics-service/internal/hits/core/usecase"
	metricsUsecase "site-analytics-service/internal/metrics/core/usecase"
	sitesUsecase "site-analytics-service/internal/sites/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	_ "site-analytics-service/docs"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "path to the YAML config file")
	flag.Parse()

	// Config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Log.Level, cfg.IsProduction())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, log *zap.Logger) error {
	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStart()

	// Storage
	store, err := openStorage(startCtx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close(log)

	// Rate limiting
	limiter, err := ratelimit.New(ratelimit.Config{
		Limit:   cfg.RateLimit.Limit,
		Window:  cfg.RateLimit.Window(),
		MaxKeys: cfg.RateLimit.MaxKeys,
	})
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.RateLimit.SweepSpec, func() {
		if n := limiter.Sweep(time.Now().UnixMilli()); n > 0 {
			log.Debug("rate limiter swept", zap.Int("removed", n), zap.Int("keys", limiter.Len()))
		}
	}); err != nil {
		return fmt.Errorf("sweep schedule %q: %w", cfg.RateLimit.SweepSpec, err)
	}
	sweeper.Start()
	defer func() { <-sweeper.Stop().Done() }()

	metrics := observability.NewMetrics()
	metrics.TrackKeys(limiter.Len)

	// Usecases
	manageSitesUC := sitesUsecase.NewManageSitesUseCase(store.sites, store.hits)
	collectHitUC := hitsUsecase.NewCollectHitUseCase(store.hits, manageSitesUC, limiter)
	listHitsUC := hitsUsecase.NewListHitsUseCase(store.hits)
	overviewUC := metricsUsecase.NewGetOverviewUseCase(store.metrics, metrics)
	breakdownUC := metricsUsecase.NewGetBreakdownUseCase(store.metrics)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		AppName:      "site-analytics-service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowHeaders: "Content-Type, DNT",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))
	app.Use(logging.RequestLogger(log))

	registerRoutes(app, routeDeps{
		collectHit:  collectHitUC,
		listHits:    listHitsUC,
		manageSites: manageSitesUC,
		overview:    overviewUC,
		breakdown:   breakdownUC,
		metrics:     metrics,
		log:         log,
	})

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Addr())
	}()

	log.Info("server started",
		zap.String("addr", cfg.Addr()),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("env", cfg.Env),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("fiber stopped: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Warn("fiber shutdown error", zap.Error(err))
	}

	log.Info("server exiting")
	return nil
}

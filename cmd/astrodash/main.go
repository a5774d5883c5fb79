package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	httpapi "github.com/i474232898/astrodash/internal/api/http"
	"github.com/i474232898/astrodash/internal/config"
	"github.com/i474232898/astrodash/internal/forecast"
	"github.com/i474232898/astrodash/internal/forecast/providers"
	"github.com/i474232898/astrodash/internal/scheduler"
	"github.com/i474232898/astrodash/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Shared HTTP client for the outbound forecast call.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	weatherbit := providers.NewWeatherbitProvider(httpClient, cfg.WeatherbitAPIKey,
		providers.WithBaseURL(cfg.WeatherbitBaseURL),
		providers.WithBackoff(providers.BackoffConfig{
			MaxRetries:      cfg.FetchMaxRetries,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		}),
	)
	source := providers.NewRateLimitedSource(weatherbit, cfg.RateLimitRPS, cfg.RateLimitBurst)

	dash := forecast.NewDashboard(source, store.NewMemoryStore(), forecast.Request{
		City: cfg.City,
		Days: cfg.Days,
	}, zlog)

	// Mount: fetch the forecast once, in the background.
	sched := scheduler.New(dash, cfg.LoadTimeout, zlog)
	if err := sched.Start(); err != nil {
		zlog.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "astrodash",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
		Views:                 httpapi.NewViews(),
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "astrodash",
			"state":   dash.State(),
		})
	})

	httpapi.RegisterRoutes(app, dash, zlog)

	go func() {
		zlog.Info("listening", zap.String("port", cfg.Port), zap.String("city", cfg.City))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Warn("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

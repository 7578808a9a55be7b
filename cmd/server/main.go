package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"weather-dashboard/internal/api"
	"weather-dashboard/internal/cache"
	"weather-dashboard/internal/config"
	"weather-dashboard/internal/scheduler"
	"weather-dashboard/internal/upstream"
	"weather-dashboard/pkg/client"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting weather dashboard proxy")

	// Load configuration
	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Cache substrate: Redis when configured, in-memory otherwise
	var substrate cache.Substrate
	var memory *cache.Memory
	var redisClient *redis.Client

	if cfg.Cache.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		substrate = cache.NewRedis(redisClient, cfg.Cache.Retention)
		logger.Info("Using Redis cache substrate", zap.String("addr", cfg.Cache.RedisAddr))
	} else {
		memory = cache.NewMemory(cfg.Cache.MaxEntries, cfg.Cache.Retention, cfg.Cache.SweepInterval, logger)
		substrate = memory
		logger.Info("Using in-memory cache substrate", zap.Int("max_entries", cfg.Cache.MaxEntries))
	}

	store := cache.NewStore(substrate, logger)

	// Upstream QWeather client
	source := upstream.NewQWeatherClient(upstream.Config{
		APIKey:  cfg.QWeather.APIKey,
		APIBase: cfg.QWeather.APIBase,
		GeoBase: cfg.QWeather.GeoBase,
		Client: client.BaseClientConfig{
			Timeout:        10 * time.Second,
			MaxRetries:     cfg.Retry.MaxRetries,
			RetryDelay:     cfg.Retry.Delay,
			Multiplier:     cfg.Retry.Multiplier,
			BreakerTimeout: cfg.CircuitBreaker.Timeout,
		},
	}, logger)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler,
	})

	handler := api.NewHandler(source, cfg.TTL, logger)
	api.SetupRoutes(app, handler)

	// Background cache warming through the dashboard client
	var refreshScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		dashboardClient := client.New(cfg.Client.BaseURL, store, cfg.TTL, cfg.Client.Timeout, logger)
		refreshScheduler = scheduler.New(dashboardClient, cfg.Scheduler.Cities, cfg.Scheduler.ForecastDays, logger)
		if err := refreshScheduler.Start(cfg.Scheduler.Interval); err != nil {
			logger.Fatal("Failed to start refresh scheduler", zap.Error(err))
		}
	}

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if refreshScheduler != nil {
		refreshScheduler.Stop()
	}

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	if memory != nil {
		memory.Stop()
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Redis close failed", zap.Error(err))
		}
	}

	logger.Info("Server stopped")
}

func errorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  "error",
		"message": err.Error(),
	})
}

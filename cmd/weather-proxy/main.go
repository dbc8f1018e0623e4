package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/i474232898/weather-proxy/internal/api/http"
	"github.com/i474232898/weather-proxy/internal/config"
	"github.com/i474232898/weather-proxy/internal/logging"
	"github.com/i474232898/weather-proxy/internal/scheduler"
	"github.com/i474232898/weather-proxy/internal/store"
	"github.com/i474232898/weather-proxy/internal/weather"
	"github.com/i474232898/weather-proxy/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.AppEnv, cfg.LogLevel)
	slog.SetDefault(logger)

	if cfg.OpenWeatherAPIKey == "" {
		logger.Warn("OPENWEATHER_API_KEY is not set; API requests will fail with a configuration error")
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, providers.OpenWeatherOptions{
		BaseURL: cfg.OpenWeatherBaseURL,
		Backoff: providers.BackoffConfig{
			MaxRetries: cfg.UpstreamMaxRetries,
		},
		Breaker: providers.BreakerConfig{
			MaxRequests: cfg.BreakerMaxRequests,
			Timeout:     cfg.BreakerTimeout,
		},
	})

	probes := store.NewMemoryStore(cfg.ProbeHistory)
	service := weather.NewService(provider, probes, logger)

	// Probing spends upstream quota, so only run it with a key.
	probeInterval := cfg.ProbeInterval
	if cfg.OpenWeatherAPIKey == "" {
		probeInterval = 0
	}
	sched := scheduler.New(service, cfg.ProbeQuery, probeInterval, cfg.HTTPTimeout, logger)
	if err := sched.Start(); err != nil {
		logger.Error("failed to start scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	defer sched.Stop()

	app := httpapi.NewApp(service, httpapi.AppOptions{
		AllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:    true,
	}, logger)

	go func() {
		logger.Info("starting HTTP server", slog.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("fiber server stopped", slog.Any("error", err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", slog.Any("error", err))
	}
	logger.Info("shutdown complete")
}

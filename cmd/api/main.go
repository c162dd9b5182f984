// Package main is the entrypoint for the Storepulse API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/storepulse/storepulse/internal/analytics"
	"github.com/storepulse/storepulse/internal/cache"
	"github.com/storepulse/storepulse/internal/config"
	"github.com/storepulse/storepulse/internal/dashboard"
	"github.com/storepulse/storepulse/internal/handler"
	"github.com/storepulse/storepulse/internal/metrics"
	"github.com/storepulse/storepulse/internal/middleware"
	"github.com/storepulse/storepulse/internal/model"
	"github.com/storepulse/storepulse/internal/period"
	"github.com/storepulse/storepulse/internal/repository"
	"github.com/storepulse/storepulse/internal/server"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	cacheClient.SetSnapshotTTL(cfg.SnapshotCacheTTL)
	logger.Info("connected to Redis")

	// Initialize services
	metricsRecorder := metrics.NewInMemory()
	store := repository.NewStore(repo)

	publisher := analytics.NewPublisher(cacheClient.Client(), logger, metricsRecorder)

	dashboardService := dashboard.New(store, cacheClient, logger, metricsRecorder)

	// Ingest pipeline: stream consumer persists events, subscriber triggers
	// snapshot recomputation when new events land.
	worker := analytics.NewWorker(cacheClient.Client(), store.Events(), logger, analytics.NewConsumerID(), metricsRecorder)
	worker.SetBatchSize(cfg.IngestBatchSize)
	worker.SetBlockTimeout(cfg.IngestBlockInterval)

	subscriber := dashboard.NewSubscriber(cacheClient.Client(), dashboardService, logger)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger, defaultGranularity(cfg, logger))
	trackHandler := handler.NewTrackHandler(publisher, logger)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)

	// Setup router
	r := setupRouter(h, healthHandler, dashboardHandler, trackHandler, metricsHandler, cacheClient, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	go func() {
		if err := worker.Run(workerCtx); err != nil && workerCtx.Err() == nil {
			logger.Error("ingest worker exited", "error", err)
		}
	}()
	srv.OnShutdown("ingest-worker", worker.Shutdown)

	go func() {
		if err := subscriber.Run(workerCtx); err != nil && workerCtx.Err() == nil {
			logger.Error("snapshot subscriber exited", "error", err)
		}
	}()
	srv.OnShutdown("snapshot-subscriber", subscriber.Shutdown)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// defaultGranularity validates the configured dashboard default.
func defaultGranularity(cfg *config.Config, logger *slog.Logger) model.Granularity {
	g, err := period.ParseGranularity(cfg.DefaultGranularity)
	if err != nil {
		logger.Warn("invalid DEFAULT_GRANULARITY, falling back to date", "value", cfg.DefaultGranularity)
		return model.GranularityDate
	}
	return g
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	dashboardHandler *handler.DashboardHandler,
	trackHandler *handler.TrackHandler,
	metricsHandler *handler.MetricsHandler,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.DefaultSecurityConfig()))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	// Health endpoints
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	// Root info endpoint
	r.Get("/", h.Hello)

	// Rate limit middleware configuration
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  logger,
		Cache:   cacheClient,
		Enabled: cfg.RateLimitTrackEnabled,
		RPS:     cfg.RateLimitTrackRPS,
		Burst:   cfg.RateLimitTrackBurst,
	}

	// Beacon ingest with IP-based rate limiting
	r.With(middleware.RateLimitIP(rateLimitCfg)).Post("/track", trackHandler.Track)

	// Dashboard API
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", dashboardHandler.Get)
		r.Get("/dashboard/live", dashboardHandler.Live)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}

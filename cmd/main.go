package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"scout/internal/adapters/ai"
	"scout/internal/adapters/config"
	"scout/internal/adapters/errors/noop"
	"scout/internal/adapters/errors/sentry"
	"scout/internal/adapters/postgres"
	"scout/internal/api/health"
	"scout/internal/api/rest"
	"scout/internal/metrics"
	pgrepo "scout/internal/repository/postgres"
	researchsvc "scout/internal/services/research"
	"scout/pkg/errors"
	"scout/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := initLogger(cfg); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	// Initialize metrics
	metrics.Init()

	// Initialize database
	pgClient, err := postgres.NewClient(cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pgClient.Close()

	// Initialize repositories
	repo := pgrepo.NewResearchRepository(pgClient.DB())

	// Initialize grounded provider
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	executor, err := ai.NewGeminiExecutor(ctx, cfg.Gemini)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini executor: %v", err)
	}

	// Initialize services
	svc := researchsvc.NewService(executor, repo)

	// Initialize HTTP server
	server := newServer(cfg, svc, pgClient, log)

	go func() {
		log.Infof("HTTP server listening on %s", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	log.Info("System initialized successfully")

	// Wait for shutdown signal
	waitForShutdown(cfg, server, errorTracker, log)
}

// loadConfig loads application configuration from environment
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// initLogger initializes structured logging
func initLogger(cfg *config.Config) error {
	return logger.Init(cfg.App.LogLevel, cfg.App.Env)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// newServer assembles the gin engine and wraps it in an http.Server
func newServer(cfg *config.Config, svc *researchsvc.Service, pgClient *postgres.Client, log *logger.Logger) *http.Server {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), rest.CORS())

	rest.RegisterRoutes(engine, rest.NewHandler(svc))

	healthHandler := health.New(log, pgClient.DB(), cfg.App.Name, cfg.App.Version)
	engine.GET("/", healthHandler.HandleIndex)
	engine.GET("/health/live", healthHandler.HandleLiveness)
	engine.GET("/health/ready", healthHandler.HandleReadiness)

	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func waitForShutdown(cfg *config.Config, server *http.Server, errorTracker errors.Tracker, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown: %v", err)
	}

	if err := errorTracker.Flush(shutdownCtx); err != nil {
		log.Warnf("Failed to flush error tracker: %v", err)
	}

	log.Info("Shutdown complete")
}

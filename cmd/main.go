package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"midas/internal/adapters/config"
	"midas/internal/adapters/errors/noop"
	"midas/internal/adapters/errors/sentry"
	fsadapter "midas/internal/adapters/firestore"
	"midas/internal/domain/profile"
	"midas/internal/metrics"
	fsrepo "midas/internal/repository/firestore"
	profileservice "midas/internal/services/profile"
	"midas/pkg/errors"
	"midas/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize document store client. This is the single store handle for
	// the process; everything downstream receives it by injection.
	store, err := fsadapter.NewClient(ctx, cfg.Firestore)
	if err != nil {
		if errors.Is(err, errors.ErrConfiguration) {
			log.Fatalf("Store configuration invalid: %v", err)
		}
		log.Fatalf("Failed to initialize document store: %v", err)
	}
	defer store.Close()

	// Wire repositories and services
	repo := fsrepo.NewProfileRepository(store)
	scorer := profile.NewScorer()
	profiles := profileservice.NewService(repo, scorer)
	_ = profiles // consumed by the personalization engine embedding this module

	// Startup connectivity self-test (diagnostic only)
	probeCtx, probeCancel := context.WithTimeout(ctx, 10*time.Second)
	if !store.SelfTest(probeCtx) {
		log.Warn("Document store self-test failed, continuing startup")
	}
	probeCancel()

	// Expose metrics
	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr); err != nil {
				log.Errorf("Metrics server error: %v", err)
			}
		}()
		log.Infof("Metrics exposed on %s", cfg.Metrics.Addr)
	}

	log.Info("System initialized successfully")

	waitForShutdown(ctx, cancel, errorTracker, log)
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

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func waitForShutdown(ctx context.Context, cancel context.CancelFunc, errorTracker errors.Tracker, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down...")

	cancel()

	if errorTracker != nil {
		if err := errorTracker.Flush(ctx); err != nil {
			log.Warnf("Failed to flush error tracker: %v", err)
		}
	}

	log.Info("Shutdown complete")
}

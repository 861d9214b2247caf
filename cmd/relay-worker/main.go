// Command relay-worker drains the shared submission outbox so that several
// gateway replicas can run with outbox.in_gateway disabled.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scamshield/internal/config"
	"scamshield/internal/domain/services"
	"scamshield/internal/infrastructure/backend"
	"scamshield/internal/infrastructure/cache"
	"scamshield/internal/infrastructure/database"
	"scamshield/internal/infrastructure/database/repository"
	"scamshield/internal/metrics"
	"scamshield/pkg/logger"
)

const (
	// Retry settings for a pass that fails at the store level
	maxRetries     = 3
	baseRetryDelay = 5 * time.Second
	maxRetryDelay  = time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.ForEnvironment(cfg.App.Environment, logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		TimeFormat: cfg.Logger.TimeFormat,
	}).WithComponent("relay-worker")
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("backend", cfg.Backend.ResolvedURL()).
		Msg("starting scamshield relay worker")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The worker only makes sense against shared stores
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer db.Close()

	redisCache, err := cache.NewRedis(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis (required for the flush lock)")
	}
	defer redisCache.Close()

	m := metrics.New()
	client := backend.NewClient(cfg.Backend, log, backend.WithObserver(m))
	outbox := services.NewOutbox(repository.NewOutboxRepository(db.Pool()), client, cfg.Outbox, m, log)
	outbox.SetLocker(redisCache)

	worker := NewRelayWorker(outbox, cfg.Outbox.FlushInterval, log)

	// Handle shutdown signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("worker stopped with error")
			cancel()
		}
	}()

	<-quit
	log.Info().Msg("shutting down relay worker...")
	cancel()

	// Give an in-flight delivery time to record its state
	time.Sleep(2 * time.Second)
	log.Info().Msg("shutdown complete")
}

// flusher is the part of the outbox the worker drives
type flusher interface {
	FlushLocked(ctx context.Context) (services.FlushReport, bool, error)
}

// RelayWorker periodically flushes the outbox under its distributed lock
type RelayWorker struct {
	outbox   flusher
	interval time.Duration
	logger   *logger.Logger
	sleep    func(ctx context.Context, d time.Duration) bool
}

// NewRelayWorker creates a worker flushing every interval
func NewRelayWorker(o flusher, interval time.Duration, log *logger.Logger) *RelayWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RelayWorker{
		outbox:   o,
		interval: interval,
		logger:   log,
		sleep:    sleepCtx,
	}
}

// Run flushes immediately and then every interval until ctx is cancelled
func (w *RelayWorker) Run(ctx context.Context) error {
	w.logger.Info().
		Dur("interval", w.interval).
		Int("max_retries", maxRetries).
		Msg("starting relay loop")

	w.runWithRetry(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("relay loop stopped")
			return ctx.Err()
		case <-ticker.C:
			w.runWithRetry(ctx)
		}
	}
}

// runWithRetry runs one pass, retrying store failures with backoff.
// Delivery failures are handled per row by the outbox itself.
func (w *RelayWorker) runWithRetry(ctx context.Context) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := calculateBackoff(attempt)
			w.logger.Info().
				Int("attempt", attempt+1).
				Dur("delay", delay).
				Msg("retrying flush after delay")
			if !w.sleep(ctx, delay) {
				return
			}
		}

		start := time.Now()
		report, ran, err := w.outbox.FlushLocked(ctx)
		if err == nil {
			if !ran {
				w.logger.Debug().Msg("another worker is flushing, skipping")
				return
			}
			w.logger.Info().
				Int("delivered", report.Delivered).
				Int("rescheduled", report.Rescheduled).
				Int("failed", report.Failed).
				Dur("duration", time.Since(start)).
				Msg("flush pass completed")
			return
		}

		lastErr = err
		w.logger.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_retries", maxRetries).
			Msg("flush pass failed")
	}

	w.logger.Error().
		Err(lastErr).
		Int("attempts", maxRetries+1).
		Msg("flush failed after all retries")
}

// calculateBackoff calculates exponential backoff delay
func calculateBackoff(attempt int) time.Duration {
	delay := baseRetryDelay * time.Duration(1<<uint(attempt-1))
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}

// sleepCtx waits d and reports false if ctx ended first
func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"scamshield/internal/api"
	"scamshield/internal/api/handlers"
	"scamshield/internal/config"
	"scamshield/internal/domain/services"
	"scamshield/internal/grpc/health"
	"scamshield/internal/infrastructure/backend"
	"scamshield/internal/infrastructure/cache"
	"scamshield/internal/infrastructure/database"
	"scamshield/internal/infrastructure/database/repository"
	"scamshield/internal/metrics"
	"scamshield/pkg/logger"
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
	})
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Str("backend", cfg.Backend.ResolvedURL()).
		Msg("starting scamshield gateway")
	for _, w := range cfg.Warnings() {
		log.Warn().Msg(w)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()

	// Initialize infrastructure
	db, redisCache := initInfrastructure(ctx, cfg, log)
	defer func() {
		if db != nil {
			db.Close()
		}
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	checks := make(map[string]handlers.Pinger)

	var store cache.Store
	if redisCache != nil {
		store = redisCache
		checks["redis"] = redisCache
	} else {
		store = cache.NewMemory()
		log.Warn().Msg("running without Redis - verdict cache and rate limits are per-process")
	}

	var outboxStore services.OutboxStore
	if db != nil {
		outboxStore = repository.NewOutboxRepository(db.Pool())
		checks["postgres"] = db
	} else {
		outboxStore = repository.NewMemoryOutbox()
		log.Warn().Msg("running without database - queued submissions are lost on restart")
	}

	// Backend client and services
	client := backend.NewClient(cfg.Backend, log, backend.WithObserver(m))
	outbox := services.NewOutbox(outboxStore, client, cfg.Outbox, m, log)
	if redisCache != nil {
		outbox.SetLocker(redisCache)
	}
	scans := services.NewScanService(client, cache.NewVerdictCache(store, cfg.Cache.VerdictTTL, log), m, log)

	// Initialize handlers
	h := handlers.NewHandlers(handlers.Dependencies{
		Scans:     scans,
		Chat:      services.NewChatService(client, log),
		Community: services.NewCommunityService(client, outbox, scans.URLAnalyzer(), log),
		Relay:     services.NewRelayService(client, outbox, log),
		Auth:      client,
		Backend:   client,
		Checks:    checks,
		Version:   cfg.App.Version,
		Logger:    log,
	})

	// Create router
	router := api.NewRouter(*cfg, h, store, m, log)

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Start gRPC health server
	var grpcServer *grpc.Server
	if cfg.GRPC.Enabled {
		grpcListener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.GRPC.Port))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create gRPC listener")
		}

		grpcServer = grpc.NewServer()
		monitor := health.NewMonitor(client, cfg.GRPC.ProbeInterval, log)
		monitor.Register(grpcServer)
		go monitor.Run(ctx)

		go func() {
			log.Info().
				Str("addr", grpcListener.Addr().String()).
				Msg("starting gRPC server")
			if err := grpcServer.Serve(grpcListener); err != nil {
				log.Fatal().Err(err).Msg("gRPC server failed")
			}
		}()
	}

	// Start background redelivery
	if cfg.Outbox.InGateway {
		go func() {
			if err := outbox.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("outbox stopped with error")
			}
		}()
	} else {
		log.Info().Msg("outbox flushing left to relay-worker")
	}

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")

	// Cancel context to stop background services
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	outbox.Stop()

	log.Info().Msg("shutdown complete")
}

// initInfrastructure connects the optional database and cache. Either may
// be nil; the gateway degrades to in-process stores.
func initInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.PostgresDB, *cache.RedisCache) {
	var db *database.PostgresDB
	if cfg.Database.Enabled {
		var err error
		db, err = database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to PostgreSQL, continuing without database")
			db = nil
		}
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		var err error
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing with in-memory cache")
			redisCache = nil
		}
	}

	return db, redisCache
}

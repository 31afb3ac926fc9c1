// Package main provides the entry point for the music catalog service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/helixir/music-catalog-service/internal/config"
	"github.com/helixir/music-catalog-service/internal/database"
	"github.com/helixir/music-catalog-service/internal/dedup"
	"github.com/helixir/music-catalog-service/internal/importer"
	"github.com/helixir/music-catalog-service/internal/observability"
	"github.com/helixir/music-catalog-service/internal/repository"
	httpserver "github.com/helixir/music-catalog-service/internal/server/http"
)

// metricsNamespace prefixes all Prometheus metric names.
const metricsNamespace = "music_catalog"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging.
	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	logger = logger.With().Str("component", "server").Logger()
	logger.Info().Msg("music-catalog-service starting")

	// Set up context with graceful shutdown via OS signals.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL.
	db, err := database.New(ctx, &cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	// Run migrations if configured.
	if cfg.Database.MigrationAutoRun {
		migrator, err := database.NewMigrator(db, cfg.Database.MigrationPath, logger)
		if err != nil {
			return fmt.Errorf("create migrator: %w", err)
		}
		defer func() {
			if closeErr := migrator.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close migrator")
			}
		}()

		if err := migrator.Up(); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// Create repositories.
	publisherRepo := repository.NewPgPublisherRepository(db)
	publicationRepo := repository.NewPgPublicationRepository(db)
	workRepo := repository.NewPgWorkRepository(db)
	personRepo := repository.NewPgPersonRepository(db)
	categoryRepo := repository.NewPgCategoryRepository(db)

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(metricsNamespace)
	}

	// Wire the publisher merge and CSV import pipelines.
	merger := dedup.NewMerger(dedup.NewPublisherStore(publisherRepo, publicationRepo), logger)
	imp := importer.NewImporter(
		workRepo,
		personRepo,
		categoryRepo,
		publisherRepo,
		publicationRepo,
		importer.Config{
			WorkBatchSize:     cfg.Import.WorkBatchSize,
			RelationBatchSize: cfg.Import.RelationBatchSize,
		},
		logger,
		metrics,
	)

	httpCfg := httpserver.Config{
		Address:             cfg.Server.HTTPAddress(),
		ReadTimeout:         cfg.Server.ReadTimeout,
		WriteTimeout:        cfg.Server.WriteTimeout,
		IdleTimeout:         2 * time.Minute,
		ShutdownTimeout:     cfg.Server.ShutdownTimeout,
		SimilarityThreshold: cfg.Dedup.SimilarityThreshold,
		CSVDir:              cfg.Import.CSVDir,
	}

	httpSrv := httpserver.NewServer(
		httpCfg,
		publisherRepo,
		publicationRepo,
		workRepo,
		personRepo,
		categoryRepo,
		merger,
		imp,
		db,
		logger,
		metrics,
	)

	// Set up Prometheus metrics handler on a separate port if configured.
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.Metrics.Path, promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Server.MetricsAddress(),
			Handler:      metricsMux,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}
	}

	// Channel to collect server errors.
	errCh := make(chan error, 2)

	go func() {
		logger.Info().Str("address", httpCfg.Address).Msg("HTTP REST API server starting")
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	if metricsServer != nil {
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	readyLog := logger.Info().Str("http_address", httpCfg.Address)
	if metricsServer != nil {
		readyLog = readyLog.Str("metrics_address", metricsServer.Addr)
	}
	readyLog.Msg("music-catalog-service is ready")

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		logger.Info().Msg("received shutdown signal")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	}

	// Graceful shutdown.
	logger.Info().Msg("shutting down music-catalog-service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics server shutdown error")
		}
	}

	logger.Info().Msg("music-catalog-service shutdown complete")
	return nil
}

// Command migrate applies and rolls back the music catalog schema migrations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/helixir/music-catalog-service/internal/config"
	"github.com/helixir/music-catalog-service/internal/database"
	"github.com/helixir/music-catalog-service/internal/observability"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	up := flag.Bool("up", false, "Apply all pending catalog schema migrations")
	down := flag.Bool("down", false, "Roll back every migration (drops the catalog schema)")
	steps := flag.Int("steps", 0, "Apply N migration steps (negative rolls back)")
	version := flag.Bool("version", false, "Print the current schema version")
	force := flag.Int("force", -1, "Mark the schema as version N without running migrations (recovery only)")
	migrationsPath := flag.String("path", "", "Read migration files from this directory instead of the configured one")
	flag.Parse()

	// Exactly one action per invocation.
	actions := 0
	for _, selected := range []bool{*up, *down, *steps != 0, *version, *force >= 0} {
		if selected {
			actions++
		}
	}
	if actions == 0 {
		flag.Usage()
		fmt.Fprintln(os.Stderr, "\nspecify one of: -up, -down, -steps N, -version, -force V")
		return fmt.Errorf("no action specified")
	}
	if actions > 1 {
		return fmt.Errorf("specify only one action at a time")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	})
	logger = logger.With().Str("component", "migrate").Logger()

	migrationDir := cfg.Database.MigrationPath
	if *migrationsPath != "" {
		migrationDir = *migrationsPath
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.New(ctx, &cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db, migrationDir, logger)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		if closeErr := migrator.Close(); closeErr != nil {
			logger.Error().Err(closeErr).Msg("failed to close migrator")
		}
	}()

	switch {
	case *up:
		logger.Info().Msg("applying pending catalog schema migrations")
		if err := migrator.Up(); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}

	case *down:
		logger.Warn().Msg("rolling back the entire catalog schema")
		if err := migrator.Down(); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}

	case *steps != 0:
		logger.Info().Int("steps", *steps).Msg("applying migration steps")
		if err := migrator.Steps(*steps); err != nil {
			return fmt.Errorf("migrate steps: %w", err)
		}

	case *force >= 0:
		logger.Warn().Int("version", *force).Msg("forcing schema version")
		if err := migrator.Force(*force); err != nil {
			return fmt.Errorf("force version: %w", err)
		}
	}

	logSchemaVersion(migrator, logger)
	return nil
}

// logSchemaVersion reports the schema version the database is at now.
func logSchemaVersion(migrator *database.Migrator, logger zerolog.Logger) {
	v, dirty, err := migrator.Version()
	if err != nil {
		logger.Warn().Err(err).Msg("could not determine schema version")
		return
	}
	logger.Info().
		Uint("version", v).
		Bool("dirty", dirty).
		Msg("catalog schema version")
}

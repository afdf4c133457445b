// Package store persists finished game records so lifetime statistics
// survive restarts of the program.
package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
	"github.com/vancomm/minesweeper/internal/stats"
)

//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"

var (
	ErrNotFound      = errors.New("game record not found")
	ErrInvalidRecord = errors.New("invalid game record")
)

// Store implementations are safe for concurrent use. Recording the same game
// twice keeps the first record.
type Store interface {
	RecordGame(ctx context.Context, rec stats.GameRecord) error
	Game(ctx context.Context, id uuid.UUID) (*stats.GameRecord, error)
	Games(ctx context.Context) ([]stats.GameRecord, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

func validate(rec stats.GameRecord) error {
	if _, err := stats.ParseOutcome(string(rec.Outcome)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if rec.GameID == uuid.Nil {
		return fmt.Errorf("%w: missing game id", ErrInvalidRecord)
	}
	return nil
}

// Open returns the store selected by cfg.StatsBackend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.StatsBackend {
	case config.StatsSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.StatsPath), 0o755); err != nil {
			return nil, fmt.Errorf("unable to create stats directory: %w", err)
		}
		logger.Debug("opening sqlite stats store", slog.String("path", cfg.StatsPath))
		return OpenSQLite(cfg.StatsPath)

	case config.StatsPostgres:
		dbConfig, err := config.NewDatabase()
		if err != nil {
			return nil, fmt.Errorf("unable to read database config: %w", err)
		}
		pool, migrator, err := database.ConnectAndMigrate(
			ctx, dbConfig, Migrations, MigrationsDir,
		)
		if err != nil {
			return nil, err
		}
		if srcErr, dbErr := migrator.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("unable to close migrator",
				slog.Any("sourceError", srcErr), slog.Any("dbError", dbErr))
		}
		logger.Debug("connected to postgres stats store")
		return NewPostgres(logger, pool), nil

	default:
		return NewMemory(), nil
	}
}

// LoadStatistics rebuilds the lifetime statistics from every stored record.
func LoadStatistics(ctx context.Context, s Store) (*stats.Statistics, error) {
	games, err := s.Games(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load game records: %w", err)
	}
	return stats.FromRecords(games), nil
}

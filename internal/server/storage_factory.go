package server

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/nba-sim-service/internal/archive"
	"github.com/preston-bernstein/nba-sim-service/internal/config"
	"github.com/preston-bernstein/nba-sim-service/internal/logging"
	"github.com/preston-bernstein/nba-sim-service/internal/store"
	"github.com/preston-bernstein/nba-sim-service/internal/store/sqlite"
)

func openStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (store.Store, error) {
	switch cfg.Driver {
	case config.StorageMemory, "":
		return store.NewMemoryStore(), nil
	case config.StorageSQLite:
		st, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logging.Info(logger, "sqlite game store opened", slog.String(logging.FieldPath, cfg.SQLitePath))
		return st, nil
	default:
		logging.Warn(logger, "unknown storage driver, falling back to memory", slog.String("driver", cfg.Driver))
		return store.NewMemoryStore(), nil
	}
}

type archiveComponents struct {
	store  archive.Store
	writer *archive.Writer
}

func buildArchive(cfg config.ArchiveConfig) archiveComponents {
	return archiveComponents{
		store:  archive.NewFSStore(cfg.Path),
		writer: archive.NewWriter(cfg.Path, cfg.Retention),
	}
}

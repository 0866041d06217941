package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Aman-CERP/sentindex/internal/config"
	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
)

// Open creates the backend selected by cfg for the data directory.
//
// backend options:
//   - "sql" (default): database/sql with storage.driver; the SQLite drivers
//     use storage.dsn or, if empty, storage.path under dataDir
//   - "snapshot": one gob file at storage.snapshot_path under dataDir
func Open(ctx context.Context, cfg *config.Config, dataDir string) (Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQL, "":
		dsn := cfg.Storage.DSN
		if dsn == "" && (cfg.Storage.Driver == DriverSQLite || cfg.Storage.Driver == DriverSQLite3) {
			dsn = cfg.StoragePath(dataDir)
		}
		return OpenSQL(ctx, SQLConfig{
			Driver:      cfg.Storage.Driver,
			DSN:         dsn,
			BusyTimeout: time.Duration(cfg.Storage.BusyTimeoutMS) * time.Millisecond,
		})

	case config.BackendSnapshot:
		return OpenSnapshot(cfg.StoragePath(dataDir))

	default:
		return nil, sierrors.ConfigError(
			fmt.Sprintf("unknown storage backend: %s (valid options: sql, snapshot)", cfg.Storage.Backend), nil)
	}
}

// Describe returns a short human description of where cfg stores the index.
func Describe(cfg *config.Config, dataDir string) string {
	if cfg.Storage.Backend == config.BackendSnapshot {
		return "snapshot " + cfg.StoragePath(dataDir)
	}
	if cfg.Storage.DSN != "" {
		return cfg.Storage.Driver + " (dsn)"
	}
	return cfg.Storage.Driver + " " + cfg.StoragePath(dataDir)
}

package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/project-nt/auth/internal/auth/store"
	"github.com/project-nt/auth/internal/auth/store/drivers/postgres"
	"github.com/project-nt/auth/internal/auth/store/drivers/sqlite"
)

// MigratableStore is a store whose schema can also be rolled back.
type MigratableStore interface {
	store.Store
	RollbackMigrations() error
}

// OpenStore connects to the configured driver. Migrations are not applied.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (MigratableStore, error) {
	switch cfg.DatabaseDriver {
	case DriverPostgres:
		st, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.ConnectOptions{
			MaxRetries: 5,
			BaseDelay:  500 * time.Millisecond,
			Logger:     logger,
		})
		if err != nil {
			return nil, oops.Code("DB_CONNECT_FAILED").With("driver", cfg.DatabaseDriver).Wrap(err)
		}
		return st, nil
	case DriverSQLite:
		st, err := sqlite.NewStore(cfg.SQLiteDSN())
		if err != nil {
			return nil, oops.Code("DB_CONNECT_FAILED").With("driver", cfg.DatabaseDriver).With("file", cfg.DatabaseFile).Wrap(err)
		}
		return st, nil
	default:
		return nil, oops.Code("CONFIG_INVALID").Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
}

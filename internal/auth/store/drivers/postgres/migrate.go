package postgres

import (
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Register pgx/v5 database driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/samber/oops"

	"github.com/project-nt/auth/internal/auth/store/drivers/postgres/migrations"
)

// MigrateURL converts postgres:// and postgresql:// URLs to the pgx5://
// scheme expected by golang-migrate's pgx/v5 driver.
func MigrateURL(databaseURL string) string {
	if rest, found := strings.CutPrefix(databaseURL, "postgres://"); found {
		return "pgx5://" + rest
	}
	if rest, found := strings.CutPrefix(databaseURL, "postgresql://"); found {
		return "pgx5://" + rest
	}
	return databaseURL
}

func (s *Store) migrator() (*migrate.Migrate, error) {
	if s.url == "" {
		return nil, oops.Code("MIGRATION_INIT_FAILED").Errorf("no database url configured")
	}
	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return nil, oops.Code("MIGRATION_SOURCE_FAILED").With("operation", "create migration source").Wrap(err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, MigrateURL(s.url))
	if err != nil {
		_ = src.Close()
		return nil, oops.Code("MIGRATION_INIT_FAILED").With("operation", "initialize migrator").Wrap(err)
	}
	return m, nil
}

// ApplyMigrations applies all pending migrations over a dedicated connection.
func (s *Store) ApplyMigrations() error {
	m, err := s.migrator()
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return oops.Code("MIGRATION_UP_FAILED").Wrap(err)
	}
	return nil
}

// RollbackMigrations reverts every applied migration.
func (s *Store) RollbackMigrations() error {
	m, err := s.migrator()
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return oops.Code("MIGRATION_DOWN_FAILED").Wrap(err)
	}
	return nil
}

package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator applies versioned SQL migrations from a directory of
// .up.sql/.down.sql pairs.
type Migrator struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// New wraps an open database connection with a file-source migrator.
func New(db *sql.DB, migrationsPath string, log *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{m: m, log: log}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up() error {
	m.log.Info("Running migrations up")

	if err := m.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.log.Info("No migrations to apply")
			return nil
		}
		return fmt.Errorf("migration up failed: %w", err)
	}

	return m.logVersion("Migrations completed")
}

// Down rolls back every applied migration.
func (m *Migrator) Down() error {
	m.log.Info("Running migrations down")

	if err := m.m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.log.Info("No migrations to roll back")
			return nil
		}
		return fmt.Errorf("migration down failed: %w", err)
	}

	m.log.Info("All migrations rolled back")
	return nil
}

// Steps applies n migrations. Negative n rolls back.
func (m *Migrator) Steps(n int) error {
	m.log.Info("Running migration steps", zap.Int("steps", n))

	if err := m.m.Steps(n); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.log.Info("No migrations to apply")
			return nil
		}
		return fmt.Errorf("migration steps failed: %w", err)
	}

	return m.logVersion("Migration steps completed")
}

// GoTo migrates up or down until the schema is at the given version.
func (m *Migrator) GoTo(version uint) error {
	m.log.Info("Migrating to version", zap.Uint("target_version", version))

	if err := m.m.Migrate(version); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.log.Info("Already at target version")
			return nil
		}
		return fmt.Errorf("migration to version %d failed: %w", version, err)
	}

	m.log.Info("Migration to version completed", zap.Uint("version", version))
	return nil
}

// Version reports the current schema version and whether it is dirty.
// A fresh database reports version 0.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version without running any SQL.
// Only for repairing a dirty schema after a failed migration.
func (m *Migrator) Force(version int) error {
	m.log.Warn("Forcing migration version", zap.Int("version", version))

	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}

	m.log.Info("Migration version forced", zap.Int("version", version))
	return nil
}

// Drop removes every object in the database, data included.
func (m *Migrator) Drop() error {
	m.log.Warn("Dropping database, all data will be lost")

	if err := m.m.Drop(); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}

	m.log.Info("Database dropped")
	return nil
}

// Close releases the source and database handles.
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("failed to close source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database: %w", dbErr)
	}
	return nil
}

func (m *Migrator) logVersion(msg string) error {
	version, dirty, err := m.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	m.log.Info(msg,
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

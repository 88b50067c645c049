package persistence

import (
	"fmt"
	"time"

	"github.com/marketplace/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the GORM handle and the connection pool settings behind it.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a silent connection, for CLI tools that do their own
// progress reporting.
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	return openDatabase(cfg, logger.Default.LogMode(logger.Silent))
}

// NewDatabaseWithLogger opens a connection using GORM's default logger at
// the given level.
func NewDatabaseWithLogger(cfg *config.DatabaseConfig, level logger.LogLevel) (*Database, error) {
	return openDatabase(cfg, logger.Default.LogMode(level))
}

// NewDatabaseWithCustomLogger opens a connection with a caller-provided
// GORM logger, typically the zap-backed one.
func NewDatabaseWithCustomLogger(cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	return openDatabase(cfg, gormLogger)
}

func openDatabase(cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	pool.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := pool.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	pool, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return pool.Close()
}

func (d *Database) Ping() error {
	pool, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return pool.Ping()
}

// ConnectionStats is a snapshot of the connection pool, exposed on the
// health endpoint.
type ConnectionStats struct {
	MaxOpenConnections int
	OpenConnections    int
	InUse              int
	Idle               int
	WaitCount          int64
	WaitDuration       time.Duration
	MaxIdleClosed      int64
	MaxIdleTimeClosed  int64
	MaxLifetimeClosed  int64
}

func (d *Database) Stats() (ConnectionStats, error) {
	pool, err := d.DB.DB()
	if err != nil {
		return ConnectionStats{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	s := pool.Stats()
	return ConnectionStats{
		MaxOpenConnections: s.MaxOpenConnections,
		OpenConnections:    s.OpenConnections,
		InUse:              s.InUse,
		Idle:               s.Idle,
		WaitCount:          s.WaitCount,
		WaitDuration:       s.WaitDuration,
		MaxIdleClosed:      s.MaxIdleClosed,
		MaxIdleTimeClosed:  s.MaxIdleTimeClosed,
		MaxLifetimeClosed:  s.MaxLifetimeClosed,
	}, nil
}

// Transaction runs fn inside a single transaction, committing on nil and
// rolling back on error.
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.DB.Transaction(fn)
}

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "", "migrations directory (defaults to ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "log verbosity: debug, info, warn or error")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger setup failed:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	migrationsPath, err = resolveMigrationsPath(migrationsPath)
	if err != nil {
		log.Fatal("Could not resolve migrations directory", zap.Error(err))
	}

	log.Info("Running schema migration command",
		zap.String("command", command),
		zap.String("migrations_path", migrationsPath),
	)

	// create and list work directly on the filesystem.
	switch command {
	case "create":
		runCreate(log, migrationsPath, args[1:])
		return
	case "list":
		runList(log, migrationsPath)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration could not be loaded", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Opening the database failed", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Database is unreachable", zap.Error(err))
	}

	m, err := migration.New(db, migrationsPath, log)
	if err != nil {
		log.Fatal("Migrator setup failed", zap.Error(err))
	}
	defer m.Close()

	runSchemaCommand(log, m, command, args[1:])
}

// resolveMigrationsPath falls back to ./migrations, then to the directory
// two levels above the executable, matching the repository layout when the
// binary runs from cmd/migrate.
func resolveMigrationsPath(path string) (string, error) {
	if path == "" {
		path = defaultMigrationsPath
		if _, err := os.Stat(path); err != nil {
			if execPath, execErr := os.Executable(); execErr == nil {
				candidate := filepath.Join(filepath.Dir(execPath), "..", "..", defaultMigrationsPath)
				if _, statErr := os.Stat(candidate); statErr == nil {
					path = candidate
				}
			}
		}
	}
	return filepath.Abs(path)
}

func runCreate(log *zap.Logger, migrationsPath string, args []string) {
	if len(args) == 0 {
		log.Fatal("A migration name is required: migrate create <name> [description]")
	}
	name := args[0]
	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	mf, err := migration.CreateMigration(migrationsPath, name, description)
	if err != nil {
		log.Fatal("Writing the migration pair failed", zap.Error(err))
	}

	log.Info("Migration pair written",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
}

func runList(log *zap.Logger, migrationsPath string) {
	migrations, err := migration.ListMigrations(migrationsPath)
	if err != nil {
		log.Fatal("Reading the migrations directory failed", zap.Error(err))
	}
	if len(migrations) == 0 {
		log.Info("Migrations directory is empty")
		return
	}

	log.Info("Migrations on disk", zap.Int("count", len(migrations)))
	for _, m := range migrations {
		fmt.Println("  -", m)
	}
}

func runSchemaCommand(log *zap.Logger, m *migration.Migrator, command string, args []string) {
	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Applying migrations failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Rolling back migrations failed", zap.Error(err))
		}

	case "step":
		if len(args) == 0 {
			log.Fatal("A step count is required: migrate step <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatal("Step count is not a number", zap.String("value", args[0]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Stepping migrations failed", zap.Error(err))
		}

	case "goto":
		if len(args) == 0 {
			log.Fatal("A target version is required: migrate goto <version>")
		}
		version, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			log.Fatal("Target version is not a number", zap.String("value", args[0]))
		}
		if err := m.GoTo(uint(version)); err != nil {
			log.Fatal("Migrating to target version failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Reading the schema version failed", zap.Error(err))
		}
		if version == 0 {
			log.Info("Schema has no applied migrations")
			return
		}
		log.Info("Schema version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)

	case "force":
		if len(args) == 0 {
			log.Fatal("A version is required: migrate force <version>")
		}
		version, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatal("Version is not a number", zap.String("value", args[0]))
		}
		log.Warn("Overriding the recorded schema version")
		if err := m.Force(version); err != nil {
			log.Fatal("Version override failed", zap.Error(err))
		}

	case "drop":
		if !hasConfirmFlag(args) {
			log.Fatal("Refusing to drop without -confirm: migrate drop -confirm")
		}
		if err := m.Drop(); err != nil {
			log.Fatal("Dropping database objects failed", zap.Error(err))
		}

	default:
		log.Error("Unrecognized command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func hasConfirmFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-confirm" || arg == "--confirm" {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Println(`Marketplace schema migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    apply every pending migration
  down                  roll everything back
  step <n>              move n migrations (negative rolls back)
  goto <version>        migrate the schema to an exact version
  version               print the current schema version
  force <version>       overwrite the recorded version without running SQL
  drop -confirm         destroy every object in the database
  create <name> [desc]  write an empty up/down migration pair
  list                  show the migrations present on disk

Flags:
  -path string          migrations directory (defaults to ./migrations)
  -log-level string     log verbosity: debug, info, warn or error

Environment:
  MARKETPLACE_DATABASE_HOST, MARKETPLACE_DATABASE_PORT, MARKETPLACE_DATABASE_USER,
  MARKETPLACE_DATABASE_PASSWORD, MARKETPLACE_DATABASE_DBNAME, MARKETPLACE_DATABASE_SSLMODE

Examples:
  migrate up
  migrate step -1
  migrate create add_store_addresses "Shipping address per store"
  migrate version`)
}

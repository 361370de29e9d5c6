package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"charity-transparency/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	defaultMigrationsPath = "db/migrations"
	defaultSeedsPath      = "db/seeds"
)

var (
	maxRetries    = 30
	retryInterval = 2 * time.Second

	ErrMigrationsNotFound = errors.New("migrations directory not found")
)

// MigrationRunner applies the SQL migrations in db/migrations and optional seed files
type MigrationRunner struct {
	db             *sql.DB
	migrationsPath string
	seedsPath      string
	seedEnabled    bool
}

func NewMigrationRunner(db *sql.DB, cfg *config.DatabaseConfig) *MigrationRunner {
	runner := &MigrationRunner{
		db:             db,
		migrationsPath: defaultMigrationsPath,
		seedsPath:      defaultSeedsPath,
	}

	if cfg != nil {
		if cfg.MigrationsPath != "" {
			runner.migrationsPath = cfg.MigrationsPath
		}
		if cfg.SeedsPath != "" {
			runner.seedsPath = cfg.SeedsPath
		}
		runner.seedEnabled = cfg.SeedData
	}

	return runner
}

// WaitForDatabase pings until the database answers or the retries run out
func (mr *MigrationRunner) WaitForDatabase() error {
	for i := 0; i < maxRetries; i++ {
		err := mr.db.Ping()
		if err == nil {
			return nil
		}

		slog.Info("database not ready", "attempt", i+1, "max_attempts", maxRetries, "error", err)
		time.Sleep(retryInterval)
	}

	return fmt.Errorf("database not ready after %d attempts", maxRetries)
}

func (mr *MigrationRunner) newMigrate() (*migrate.Migrate, error) {
	if _, err := os.Stat(mr.migrationsPath); os.IsNotExist(err) {
		return nil, ErrMigrationsNotFound
	}

	absPath, err := filepath.Abs(mr.migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(mr.db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+absPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}

// RunMigrations applies every pending migration. A missing migrations
// directory is not an error.
func (mr *MigrationRunner) RunMigrations() error {
	m, err := mr.newMigrate()
	if errors.Is(err, ErrMigrationsNotFound) {
		slog.Warn("migrations directory not found, skipping migrations", "path", mr.migrationsPath)
		return nil
	}
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		slog.Warn("database is in dirty state, forcing version", "version", version)
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		slog.Info("no new migrations to apply", "version", version)
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	newVersion, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to get new migration version: %w", err)
	}
	slog.Info("applied migrations", "from_version", version, "to_version", newVersion)

	return nil
}

// LoadSeeds executes every *.sql file in the seeds directory in name order.
// A failing file is logged and the remaining files still run.
func (mr *MigrationRunner) LoadSeeds() error {
	if !mr.seedEnabled {
		return nil
	}

	if _, err := os.Stat(mr.seedsPath); os.IsNotExist(err) {
		slog.Info("seeds directory not found, skipping seed data", "path", mr.seedsPath)
		return nil
	}

	files, err := filepath.Glob(filepath.Join(mr.seedsPath, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to find seed files: %w", err)
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", file, err)
		}

		if _, err := mr.db.Exec(string(content)); err != nil {
			slog.Warn("failed to execute seed file", "file", filepath.Base(file), "error", err)
			continue
		}

		slog.Info("executed seed file", "file", filepath.Base(file))
	}

	return nil
}

// GetMigrationStatus returns the current migration version
func (mr *MigrationRunner) GetMigrationStatus() (version uint, dirty bool, err error) {
	m, err := mr.newMigrate()
	if err != nil {
		return 0, false, err
	}
	return m.Version()
}

// RunMigrationsIfEnabled runs migrations and seeds when AUTO_MIGRATE is on
func RunMigrationsIfEnabled(db *sql.DB, cfg *config.DatabaseConfig) error {
	if cfg == nil || !cfg.AutoMigrate {
		slog.Info("auto-migration disabled")
		return nil
	}

	runner := NewMigrationRunner(db, cfg)

	if err := runner.WaitForDatabase(); err != nil {
		return fmt.Errorf("database readiness check failed: %w", err)
	}

	if err := runner.RunMigrations(); err != nil {
		return fmt.Errorf("migration execution failed: %w", err)
	}

	if err := runner.LoadSeeds(); err != nil {
		slog.Warn("seed data loading failed", "error", err)
	}

	if version, dirty, err := runner.GetMigrationStatus(); err != nil {
		slog.Warn("failed to get migration status", "error", err)
	} else {
		slog.Info("migration status", "version", version, "dirty", dirty)
	}

	return nil
}

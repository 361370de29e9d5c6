package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"charity-transparency/internal/config"
	"charity-transparency/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

func New(cfg *config.DatabaseConfig, logLevel logger.LogLevel) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

// AutoMigrate creates the schema from the gorm models. Used by tests and as a
// fallback when the SQL migrations cannot run.
func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.AdminUser{},
		&models.Activity{},
		&models.Donation{},
		&models.Expense{},
		&models.AuditLog{},
		&models.BlacklistedToken{},
	)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateIndexes adds the composite indexes used by report queries
func (db *DB) CreateIndexes() error {
	queries := []string{
		"CREATE INDEX IF NOT EXISTS idx_donations_report ON donations(is_confirmed, is_public, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_donations_activity_confirmed ON donations(activity_id, is_confirmed)",
		"CREATE INDEX IF NOT EXISTS idx_donations_pending ON donations(created_at) WHERE is_confirmed = false AND rejected_at IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_expenses_activity_created ON expenses(activity_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category)",
		"CREATE INDEX IF NOT EXISTS idx_activities_published ON activities(is_published, created_at)",
	}

	failed := 0
	for _, query := range queries {
		if err := db.DB.Exec(query).Error; err != nil {
			failed++
			slog.Warn("failed to create index", "query", query, "error", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d indexes could not be created", failed, len(queries))
	}
	return nil
}

// SeedAdminUser creates the first administrator unless the email is already registered
func (db *DB) SeedAdminUser(email, password, name string, cost int) (*models.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.AdminUser
	if err := db.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return &existing, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         models.RoleAdmin,
	}

	if err := db.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	slog.Info("seeded admin user", "email", user.Email, "user_id", user.ID)
	return user, nil
}

// Initialize connects, migrates and seeds the database
func Initialize(cfg *config.Config) (*DB, error) {
	logLevel := logger.Info
	if cfg.IsProduction() {
		logLevel = logger.Warn
	}

	db, err := New(&cfg.Database, logLevel)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := RunMigrationsIfEnabled(sqlDB, &cfg.Database); err != nil {
		slog.Warn("migration runner failed, falling back to AutoMigrate", "error", err)

		if err := db.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if err := db.CreateIndexes(); err != nil {
		slog.Warn("failed to create some indexes", "error", err)
	}

	if cfg.Admin.Email != "" {
		if _, err := db.SeedAdminUser(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name, cfg.Security.BCryptCost); err != nil {
			return nil, err
		}
	}

	slog.Info("database initialized")

	return db, nil
}

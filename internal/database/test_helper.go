package database

import (
	"fmt"
	"testing"

	"charity-transparency/internal/config"
	"charity-transparency/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a migrated in-memory sqlite database. The pool is pinned
// to one connection because every new :memory: connection is a new database.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CreateTestAdminUser(t *testing.T, db *DB, email string) *models.AdminUser {
	t.Helper()

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: "hashed_password",
		Name:         "Test Admin",
		Role:         models.RoleAdmin,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test admin user: %v", err)
	}

	return user
}

func CreateTestActivity(t *testing.T, db *DB, title string, published bool) *models.Activity {
	t.Helper()

	activity := &models.Activity{
		Title:       title,
		IsPublished: published,
	}

	if err := db.Create(activity).Error; err != nil {
		t.Fatalf("failed to create test activity: %v", err)
	}

	return activity
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{"audit_logs", "blacklisted_tokens", "donations", "expenses", "activities", "admin_users"}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}

package database

import (
	"testing"

	"github.com/ross2p/ems-app/internal/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a fresh in-memory sqlite database with the full schema.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB:     db,
		config: &config.DatabaseConfig{Path: ":memory:"},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

// CleanupTestDB closes the test database connection.
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

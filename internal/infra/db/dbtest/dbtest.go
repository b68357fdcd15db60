// Package dbtest opens isolated in-memory SQLite databases with the ledger schema for tests.
package dbtest

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/homeledger/backend/internal/integration/persistence/model"
)

// Open returns a migrated database private to the test. It is closed on cleanup.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := New(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// New opens a named shared-cache in-memory database and migrates every ledger model.
// A single connection is kept so that every statement sees the same memory database.
func New(name string) (*gorm.DB, error) {
	dbSQL, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		return nil, err
	}
	dbSQL.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		return nil, fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return db, nil
}

// Reset deletes every row of every ledger table.
func Reset(db *gorm.DB) error {
	models := model.All()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(models[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// internal/database/testdb.go
package database

import (
	"fmt"
	"sync/atomic"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// OpenTestDB opens a fresh in-memory SQLite database with the full schema
// migrated and seeded. Each call gets its own database; the single-connection
// pool keeps every query on the same in-memory instance.
func OpenTestDB() (*gorm.DB, error) {
	name := fmt.Sprintf("printtrack_test_%d", atomic.AddInt64(&testDBCounter, 1))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	if err := SeedInitialData(db); err != nil {
		return nil, err
	}

	return db, nil
}

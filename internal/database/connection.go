// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rahulbala1799/TT/internal/config"
	"github.com/rahulbala1799/TT/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	switch cfg.LogLevel {
	case "silent":
		gormConfig = &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	case "info":
		gormConfig = &gorm.Config{Logger: logger.Default.LogMode(logger.Info)}
	default:
		gormConfig = &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatus{},
		&models.OrderStatusLog{},
		&models.OrderSequence{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_due_date ON orders(due_date)",
		"CREATE INDEX IF NOT EXISTS idx_order_statuses_active ON order_statuses(order_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_order_status_logs_created ON order_status_logs(order_id, created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Fallback system user recorded as creator when nobody is signed in
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		user := &models.User{
			Email: models.SystemUserEmail,
			Name:  models.SystemUserName,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create system user: %w", err)
		}
		log.Println("System user created successfully")
	}

	// Order number counter
	var seqCount int64
	db.Model(&models.OrderSequence{}).Count(&seqCount)
	if seqCount == 0 {
		var orderCount int64
		db.Model(&models.Order{}).Count(&orderCount)
		if err := db.Create(&models.OrderSequence{Name: "order_number", LastNo: orderCount}).Error; err != nil {
			return fmt.Errorf("failed to create order sequence: %w", err)
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}

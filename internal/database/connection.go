// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gigworks/gigworks-backend/internal/config"
	"github.com/gigworks/gigworks-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
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

	isPostgres := db.Dialector.Name() == "postgres"

	if isPostgres {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
			return fmt.Errorf("failed to create UUID extension: %w", err)
		}
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Offer{},
		&models.OfferDetail{},
		&models.Order{},
		&models.Review{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db, isPostgres); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB, isPostgres bool) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_type ON users(type)",

		// Offer indexes
		"CREATE INDEX IF NOT EXISTS idx_offers_user ON offers(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_offers_updated_at ON offers(updated_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_offer_details_offer_type ON offer_details(offer_id, offer_type)",
		"CREATE INDEX IF NOT EXISTS idx_offer_details_price ON offer_details(price)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_business_status ON orders(business_user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_user_id)",

		// Review pair constraint: the one-review-per-(business, reviewer)
		// invariant lives in the database, not only in application checks.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_business_reviewer ON reviews(business_user_id, reviewer_id) WHERE deleted_at IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_reviews_rating ON reviews(rating)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	if isPostgres {
		indexes = append(indexes,
			"CREATE INDEX IF NOT EXISTS idx_offers_search ON offers USING GIN(to_tsvector('english', title || ' ' || description))",
		)
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

	var staffCount int64
	db.Model(&models.User{}).Where("is_staff = ?", true).Count(&staffCount)

	if staffCount == 0 {
		admin := &models.User{
			Username: "admin",
			Email:    "admin@gigworks.io",
			Type:     models.UserTypeBusiness,
			IsStaff:  true,
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(admin).Error; err != nil {
				return err
			}
			profile := &models.Profile{
				UserID:    admin.ID,
				FirstName: "Platform",
				LastName:  "Administrator",
			}
			return tx.Create(profile).Error
		})
		if err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

package db

import (
	"errors"                     // Error matching
	"fmt"                        // Error wrapping
	"user_admin/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Open connects to MySQL with the settings shared by the server and the migrator
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true}) // Translate duplicate-key errors
}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string, rootID uint64, rootDigest string) {
	db, err := Open(dsn) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	created, err := SeedRoot(db, rootID, rootDigest)
	if err != nil {
		logrus.Fatalf("seeding root account failed: %v", err) // Log fatal error if seeding fails
	}
	logrus.WithField("root_created", created).Info("Migration completed.") // Log successful migration
}

// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Account{},    // sys_user
		&domain.UserRole{},   // sys_user_role
		&domain.Category{},   // goods_category
		&domain.OrderGoods{}, // order_goods
		&domain.Comment{},    // comment
	)
}

// SeedRoot creates the protected root account when it does not exist yet
func SeedRoot(db *gorm.DB, rootID uint64, rootDigest string) (bool, error) {
	var root domain.Account
	err := db.Where("user_id = ?", rootID).First(&root).Error
	if err == nil {
		return false, nil // Root already present
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("load root account: %w", err)
	}
	root = domain.Account{
		ID:       rootID,              // Reserved id
		Username: "admin",             // Default login
		Password: rootDigest,          // Digest of the configured root password
		Status:   domain.StatusActive, // Enabled
	}
	if err := db.Create(&root).Error; err != nil {
		return false, fmt.Errorf("create root account: %w", err)
	}
	return true, nil
}

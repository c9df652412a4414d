package db

import (
	"nexacare/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Open connects to the database with unique-key errors translated into
// gorm.ErrDuplicatedKey so the store can classify them
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := Open(dsn) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create the accounts table, constraints and indexes
	err = db.AutoMigrate(&domain.Account{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}

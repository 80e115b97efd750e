package config

import (
	"fmt"

	"github.com/SahanWeer/StayLanka/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the Postgres connection and migrates the payment tables.
// The handle is returned to the caller and injected where needed; there is
// no package-level connection.
func InitDB(config *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Surfaces unique violations as gorm.ErrDuplicatedKey so the
		// repository can map them to the duplicate-payment error.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Bookings are owned by the listings subsystem; migrated here only so
	// the core runs standalone in development.
	if err := db.AutoMigrate(
		&models.Booking{},
		&models.Payment{},
		&models.PaymentNotification{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %v", err)
	}

	return db, nil
}

// Package postgres opens the PostgreSQL connection shared by the GORM
// repositories and migrates their schema.
package postgres

import (
	"fmt"

	"tracking/internal/adapters/out/postgres/directoryrepo"
	"tracking/internal/adapters/out/postgres/shipmentrepo"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionSettings describes how to reach the database.
type ConnectionSettings struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the settings as a libpq keyword/value connection string.
func (s ConnectionSettings) DSN() string {
	sslMode := s.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.DBName, sslMode)
}

// Open connects to PostgreSQL. GORM's own query logging is silenced;
// the application logs at the handler level. If the connection check
// fails, the pool is closed before returning.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		if db != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
		}
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	return db, nil
}

// Migrate creates or updates every table the repositories use.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&directoryrepo.AccountDTO{},
		&directoryrepo.EnterpriseDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.ProgressEntryDTO{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	return nil
}

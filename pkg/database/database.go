package database

import (
	"dotatracker/pkg/config"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CreateEnums create the enums for the match side and the sync log.
func CreateEnums(db *gorm.DB) error {
	// Check and create ENUM types if they do not exist.
	err := db.Exec(`
		DO $$
		BEGIN
		    IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'team_side') THEN
		        CREATE TYPE team_side AS ENUM ('radiant', 'dire');
		    END IF;

		    IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'sync_type') THEN
		        CREATE TYPE sync_type AS ENUM ('match', 'player', 'team');
		    END IF;

		    IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'sync_status') THEN
		        CREATE TYPE sync_status AS ENUM ('success', 'failed');
		    END IF;
		END $$;
	`).Error

	return err
}

// NewConnection opens the connection pool against the Postgres database.
func NewConnection() (*gorm.DB, error) {
	// Create the database instance.
	db, err := gorm.Open(postgres.Open(config.Database.URL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Get the SQL database itself.
	sqlDb, sqlErr := db.DB()

	// Verify if could get the connection.
	if sqlErr != nil {
		return nil, fmt.Errorf("failed to get the sql connection: %v", sqlErr)
	}

	// Set the pool values.
	sqlDb.SetMaxOpenConns(100)
	sqlDb.SetMaxIdleConns(10)
	sqlDb.SetConnMaxLifetime(time.Hour)
	sqlDb.SetConnMaxIdleTime(time.Hour)

	// Test the connection.
	if err := sqlDb.Ping(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, err
}

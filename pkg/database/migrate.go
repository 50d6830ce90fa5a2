package database

import (
	"dotatracker/pkg/database/models"
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations creates the enum types and migrates every model.
func RunMigrations(db *gorm.DB) error {
	if err := CreateEnums(db); err != nil {
		return fmt.Errorf("couldn't create the enums: %w", err)
	}

	err := db.AutoMigrate(
		&models.Match{},
		&models.Player{},
		&models.MatchPlayer{},
		&models.Achievement{},
		&models.SyncLog{},
	)
	if err != nil {
		return fmt.Errorf("couldn't run the migrations: %w", err)
	}

	return nil
}

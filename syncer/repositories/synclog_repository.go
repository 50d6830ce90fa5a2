package repositories

import (
	"dotatracker/pkg/database/models"

	"gorm.io/gorm"
)

// SyncLogRepository is the public interface for the run outcome log.
type SyncLogRepository interface {
	Create(entry *models.SyncLog) error
	GetLatest(limit int) ([]models.SyncLog, error)
}

// Sync log repository structure.
type syncLogRepository struct {
	db *gorm.DB
}

// NewSyncLogRepository creates a sync log repository.
func NewSyncLogRepository(db *gorm.DB) SyncLogRepository {
	return &syncLogRepository{db: db}
}

// Create appends one outcome row. The log is append only.
func (sr *syncLogRepository) Create(entry *models.SyncLog) error {
	return sr.db.Create(entry).Error
}

// GetLatest returns the most recent outcome rows.
func (sr *syncLogRepository) GetLatest(limit int) ([]models.SyncLog, error) {
	var entries []models.SyncLog
	result := sr.db.Order("created_at DESC").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

package models

import "time"

// Sync log types.
const (
	SyncTypeMatch  = "match"
	SyncTypePlayer = "player"
	SyncTypeTeam   = "team"
)

// Sync log statuses.
const (
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)

// SyncLog is the immutable outcome log for a coordinator run.
type SyncLog struct {
	ID           uint64 `gorm:"primaryKey"`
	SyncType     string `gorm:"type:sync_type;not null;index"`
	Status       string `gorm:"type:sync_status;not null;index"`
	ErrorMessage *string `gorm:"type:text"`
	SyncedCount  int    `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"index"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// Achievement is a fact record for one triggered rule outcome in a match.
// The whole set for a match is replaced on every recompute, rows are never merged.
type Achievement struct {
	ID      uint64 `gorm:"primaryKey"`
	MatchId int64  `gorm:"not null;index"`
	// Nil for team level achievements.
	PlayerId *uint `gorm:"index"`

	Match  Match   `gorm:"foreignKey:MatchId"`
	Player *Player `gorm:"foreignKey:PlayerId"`

	AchievementType string  `gorm:"type:varchar(50);not null;index"`
	AchievementName string  `gorm:"type:varchar(100);not null"`
	AchievementDesc string  `gorm:"type:varchar(255)"`
	Team            *string `gorm:"type:team_side"`

	// Free form payload with the triggering values.
	Value datatypes.JSON

	CreatedAt time.Time
}

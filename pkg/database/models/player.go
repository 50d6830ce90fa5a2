package models

import (
	"fmt"
	"strings"
	"time"
)

// Placeholder prefix used until the real nickname is enriched from the identity provider.
const PlayerPlaceholderPrefix = "Player_"

// Player is the database model for a tournament player.
// The surrogate ID is used by all foreign keys, the account id is the external identity.
type Player struct {
	ID        uint   `gorm:"primaryKey"`
	AccountId int64  `gorm:"uniqueIndex;not null"`
	Nickname  string `gorm:"type:varchar(100);not null"`
	AvatarUrl *string `gorm:"type:varchar(255)"`

	// Aggregate counters, maintained as participations are written.
	TotalMatches int `gorm:"not null;default:0"`
	TotalWins    int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlaceholderNickname builds the default nickname for a never enriched player.
func PlaceholderNickname(accountId int64) string {
	return fmt.Sprintf("%s%d", PlayerPlaceholderPrefix, accountId)
}

// HasPlaceholderNickname reports whether the player nickname was never enriched.
func (p *Player) HasPlaceholderNickname() bool {
	return strings.HasPrefix(p.Nickname, PlayerPlaceholderPrefix)
}

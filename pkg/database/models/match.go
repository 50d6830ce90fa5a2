package models

import (
	"time"

	"gorm.io/datatypes"
)

// Match is the database model for the match information.
// The primary key is the external match id assigned by the provider, never generated locally.
type Match struct {
	MatchId   int64 `gorm:"primaryKey;autoIncrement:false"`
	LeagueId  int   `gorm:"not null;index"`
	StartTime int64 `gorm:"not null;index"`
	Duration  int   `gorm:"not null"`

	// Result of the match.
	RadiantWin   bool `gorm:"not null"`
	RadiantScore int  `gorm:"not null"`
	DireScore    int  `gorm:"not null"`

	// Team identities, only known after reconciliation.
	RadiantTeamId   *int64
	RadiantTeamName *string `gorm:"type:varchar(255)"`
	DireTeamId      *int64
	DireTeamName    *string `gorm:"type:varchar(255)"`

	GameMode int

	// Parse state. IsParsed is only true when the last fetch included the objectives log.
	ParseRequested   bool `gorm:"not null;default:false"`
	IsParsed         bool `gorm:"not null;default:false"`
	ParseRequestedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MatchPlayer is the database model for a player performance in a given match.
// Rows are write once: created on the first successful fetch of the match and never recreated.
type MatchPlayer struct {
	ID       uint64 `gorm:"primaryKey"`
	MatchId  int64  `gorm:"not null;index:idx_match_player,unique"`
	PlayerId uint   `gorm:"not null;index:idx_match_player,unique"`

	// Foreign keys.
	Match  Match  `gorm:"foreignKey:MatchId"`
	Player Player `gorm:"foreignKey:PlayerId"`

	HeroId int    `gorm:"not null;index"`
	Team   string `gorm:"type:team_side;not null"`

	Kills   int `gorm:"not null;default:0"`
	Deaths  int `gorm:"not null;default:0"`
	Assists int `gorm:"not null;default:0"`

	// Economy.
	Gpm      int `gorm:"not null;default:0"`
	Xpm      int `gorm:"not null;default:0"`
	NetWorth int `gorm:"not null;default:0"`
	LastHits int `gorm:"not null;default:0"`
	Denies   int `gorm:"not null;default:0"`

	// Inventory: six carried slots as a JSON list, plus backpack and neutral slots.
	Items           datatypes.JSON
	ItemBackpack0   *int
	ItemBackpack1   *int
	ItemBackpack2   *int
	ItemNeutral     *int
	AbilityUpgrades datatypes.JSON

	Lane *int

	HeroDamage  int `gorm:"not null;default:0"`
	TowerDamage int `gorm:"not null;default:0"`
	HeroHealing int `gorm:"not null;default:0"`

	CreatedAt time.Time
}

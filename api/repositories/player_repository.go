package repositories

import (
	"dotatracker/pkg/database/models"

	"gorm.io/gorm"
)

// PlayerRepository is the read side interface for the player listing.
type PlayerRepository interface {
	List(page int, limit int) ([]models.Player, int64, error)
}

type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates the read side player repository.
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

// List returns one page of players ordered by match count.
func (pr *playerRepository) List(page int, limit int) ([]models.Player, int64, error) {
	var total int64
	if err := pr.db.Model(&models.Player{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var players []models.Player
	result := pr.db.
		Order("total_matches DESC, id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&players)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return players, total, nil
}

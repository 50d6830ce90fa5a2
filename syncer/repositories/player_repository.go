package repositories

import (
	"errors"
	"fmt"

	"dotatracker/pkg/database/models"

	"gorm.io/gorm"
)

// PlayerRepository is the public interface for player persistence.
type PlayerRepository interface {
	GetByAccountId(accountId int64) (*models.Player, error)
	GetByIds(ids []uint) ([]models.Player, error)
	Create(player *models.Player) error
	UpdateProfile(playerId uint, nickname string, avatarUrl string) error
	BumpAggregates(playerIds []uint, winnerIds []uint) error
}

// Player repository structure.
type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a player repository.
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

// GetByAccountId returns a player by its external account id, nil when unknown.
func (pr *playerRepository) GetByAccountId(accountId int64) (*models.Player, error) {
	var player models.Player
	if err := pr.db.Where("account_id = ?", accountId).First(&player).Error; err != nil {
		// If the record was not found, doesn't need to return a error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("couldn't get the player with account id %d: %v", accountId, err)
	}

	return &player, nil
}

// GetByIds returns the players for a list of surrogate ids.
func (pr *playerRepository) GetByIds(ids []uint) ([]models.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var players []models.Player
	result := pr.db.Where("id IN (?)", ids).Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

// Create inserts the player. Duplicate account ids surface as
// gorm.ErrDuplicatedKey so the caller can degrade to a read.
func (pr *playerRepository) Create(player *models.Player) error {
	return pr.db.Create(player).Error
}

// UpdateProfile overwrites the nickname and avatar after enrichment.
func (pr *playerRepository) UpdateProfile(playerId uint, nickname string, avatarUrl string) error {
	return pr.db.Model(&models.Player{}).
		Where("id = ?", playerId).
		Updates(map[string]interface{}{
			"nickname":   nickname,
			"avatar_url": avatarUrl,
		}).Error
}

// BumpAggregates increments the match counter for every given player and the
// win counter for the winners.
func (pr *playerRepository) BumpAggregates(playerIds []uint, winnerIds []uint) error {
	if len(playerIds) == 0 {
		return nil
	}

	return pr.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Player{}).
			Where("id IN (?)", playerIds).
			UpdateColumn("total_matches", gorm.Expr("total_matches + 1")).Error
		if err != nil {
			return err
		}

		if len(winnerIds) == 0 {
			return nil
		}

		return tx.Model(&models.Player{}).
			Where("id IN (?)", winnerIds).
			UpdateColumn("total_wins", gorm.Expr("total_wins + 1")).Error
	})
}

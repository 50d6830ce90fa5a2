package repositories

import (
	"dotatracker/pkg/database/models"

	"gorm.io/gorm"
)

// AchievementRepository is the public interface for achievement persistence.
// Reads go through the presentation layer's own repository.
type AchievementRepository interface {
	ReplaceForMatch(matchId int64, facts []*models.Achievement) error
}

// Achievement repository structure.
type achievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository creates an achievement repository.
func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

// ReplaceForMatch swaps the whole fact set of a match in one transaction.
// Delete then insert keeps the recompute idempotent, stale facts never survive.
func (ar *achievementRepository) ReplaceForMatch(matchId int64, facts []*models.Achievement) error {
	return ar.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("match_id = ?", matchId).Delete(&models.Achievement{}).Error; err != nil {
			return err
		}

		if len(facts) == 0 {
			return nil
		}

		return tx.Create(&facts).Error
	})
}

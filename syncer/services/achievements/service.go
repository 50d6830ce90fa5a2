package achievements

import (
	"fmt"

	"dotatracker/pkg/database/models"
	"dotatracker/syncer/repositories"
)

// Service runs detection and persists the resulting fact set.
type Service struct {
	AchievementRepository repositories.AchievementRepository
}

// NewService creates the achievement service.
func NewService(achievementRepo repositories.AchievementRepository) *Service {
	return &Service{
		AchievementRepository: achievementRepo,
	}
}

// Recompute detects the facts for a fully parsed match and replaces any prior
// set for that match id. Safe to run any number of times.
func (s *Service) Recompute(mc *MatchContext) ([]*models.Achievement, error) {
	facts := Detect(mc)

	if err := s.AchievementRepository.ReplaceForMatch(mc.MatchId, facts); err != nil {
		return nil, fmt.Errorf("couldn't replace the achievements for match %d: %v", mc.MatchId, err)
	}

	return facts, nil
}

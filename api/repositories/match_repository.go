package repositories

import (
	"errors"
	"fmt"

	"dotatracker/pkg/database/models"

	"gorm.io/gorm"
)

// MatchRepository is the read side interface consumed by the presentation layer.
// All writes into the match tables funnel through the syncer.
type MatchRepository interface {
	ListByLeague(leagueId int, page int, limit int) ([]models.Match, int64, error)
	GetByMatchId(matchId int64) (*models.Match, error)
	GetParticipations(matchId int64) ([]models.MatchPlayer, error)
	GetAchievements(matchId int64) ([]models.Achievement, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates the read side match repository.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// ListByLeague returns one page of matches, newest first.
func (mr *matchRepository) ListByLeague(leagueId int, page int, limit int) ([]models.Match, int64, error) {
	query := mr.db.Model(&models.Match{})
	if leagueId != 0 {
		query = query.Where("league_id = ?", leagueId)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var matches []models.Match
	result := query.
		Order("start_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&matches)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return matches, total, nil
}

// GetByMatchId returns a single match, nil when unknown.
func (mr *matchRepository) GetByMatchId(matchId int64) (*models.Match, error) {
	var match models.Match
	if err := mr.db.Where("match_id = ?", matchId).First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("couldn't get the match %d: %v", matchId, err)
	}

	return &match, nil
}

// GetParticipations returns the roster rows of a match with the players preloaded.
func (mr *matchRepository) GetParticipations(matchId int64) ([]models.MatchPlayer, error) {
	var participations []models.MatchPlayer
	result := mr.db.
		Preload("Player").
		Where("match_id = ?", matchId).
		Order("team ASC, id ASC").
		Find(&participations)
	if result.Error != nil {
		return nil, result.Error
	}

	return participations, nil
}

// GetAchievements returns the fact rows of a match with the players preloaded.
func (mr *matchRepository) GetAchievements(matchId int64) ([]models.Achievement, error) {
	var facts []models.Achievement
	result := mr.db.
		Preload("Player").
		Where("match_id = ?", matchId).
		Order("id ASC").
		Find(&facts)
	if result.Error != nil {
		return nil, result.Error
	}

	return facts, nil
}

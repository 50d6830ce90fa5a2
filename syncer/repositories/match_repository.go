package repositories

import (
	"errors"
	"fmt"
	"time"

	"dotatracker/pkg/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository is the public interface for match persistence.
type MatchRepository interface {
	GetExistingMatchIds(leagueId int) ([]int64, error)
	GetByMatchId(matchId int64) (*models.Match, error)
	UpsertMatch(match *models.Match) error
	CreateMatchPlayers(players []*models.MatchPlayer) error
	GetMatchPlayers(matchId int64) ([]models.MatchPlayer, error)
	SetTeams(matchId int64, radiantTeamId *int64, radiantName *string, direTeamId *int64, direName *string) error
	SetParseRequested(matchId int64, at time.Time) error
	DeleteByLeague(leagueId int) (int64, error)
}

// Match repository structure.
type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a match repository.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// GetExistingMatchIds returns the ids of every match already persisted for the league.
func (mr *matchRepository) GetExistingMatchIds(leagueId int) ([]int64, error) {
	var ids []int64
	result := mr.db.Model(&models.Match{}).
		Where("league_id = ?", leagueId).
		Pluck("match_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

// GetByMatchId returns a single match by its external id, nil when unknown.
func (mr *matchRepository) GetByMatchId(matchId int64) (*models.Match, error) {
	var match models.Match
	if err := mr.db.Where("match_id = ?", matchId).First(&match).Error; err != nil {
		// If the record was not found, doesn't need to return a error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("couldn't get the match %d: %v", matchId, err)
	}

	return &match, nil
}

// UpsertMatch inserts the match on first sight and updates the volatile
// columns on every refresh. The match is never duplicated.
func (mr *matchRepository) UpsertMatch(match *models.Match) error {
	return mr.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "match_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"start_time",
			"duration",
			"radiant_win",
			"radiant_score",
			"dire_score",
			"game_mode",
			"is_parsed",
			"updated_at",
		}),
	}).Create(match).Error
}

// CreateMatchPlayers creates the participation rows of a given match.
// Conflicting rows are left untouched, keeping the participations write once.
func (mr *matchRepository) CreateMatchPlayers(players []*models.MatchPlayer) error {
	if len(players) == 0 {
		return nil
	}

	return mr.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "match_id"}, {Name: "player_id"}},
		DoNothing: true,
	}).Create(&players).Error
}

// GetMatchPlayers returns the participation rows of a match.
func (mr *matchRepository) GetMatchPlayers(matchId int64) ([]models.MatchPlayer, error) {
	var players []models.MatchPlayer
	result := mr.db.Where("match_id = ?", matchId).Order("id ASC").Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

// SetTeams updates the denormalized team columns of a match.
func (mr *matchRepository) SetTeams(
	matchId int64,
	radiantTeamId *int64,
	radiantName *string,
	direTeamId *int64,
	direName *string,
) error {
	return mr.db.Model(&models.Match{}).
		Where("match_id = ?", matchId).
		Updates(map[string]interface{}{
			"radiant_team_id":   radiantTeamId,
			"radiant_team_name": radiantName,
			"dire_team_id":      direTeamId,
			"dire_team_name":    direName,
		}).Error
}

// SetParseRequested stamps the enrichment request on the match.
func (mr *matchRepository) SetParseRequested(matchId int64, at time.Time) error {
	return mr.db.Model(&models.Match{}).
		Where("match_id = ?", matchId).
		Updates(map[string]interface{}{
			"parse_requested":    true,
			"parse_requested_at": at,
		}).Error
}

// DeleteByLeague removes every match of a league with its participations and
// achievements. Only used by the explicit bulk reset path.
func (mr *matchRepository) DeleteByLeague(leagueId int) (int64, error) {
	var deleted int64

	err := mr.db.Transaction(func(tx *gorm.DB) error {
		var ids []int64
		if err := tx.Model(&models.Match{}).Where("league_id = ?", leagueId).Pluck("match_id", &ids).Error; err != nil {
			return err
		}

		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("match_id IN (?)", ids).Delete(&models.Achievement{}).Error; err != nil {
			return err
		}

		if err := tx.Where("match_id IN (?)", ids).Delete(&models.MatchPlayer{}).Error; err != nil {
			return err
		}

		result := tx.Where("match_id IN (?)", ids).Delete(&models.Match{})
		if result.Error != nil {
			return result.Error
		}

		deleted = result.RowsAffected
		return nil
	})

	return deleted, err
}

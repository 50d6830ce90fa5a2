package services

import (
	"context"
	"encoding/json"

	"dotatracker/api/cache"
	"dotatracker/api/dto"
	"dotatracker/api/filters"
	"dotatracker/api/repositories"
	"dotatracker/pkg/database/models"

	"gorm.io/gorm"
)

// MatchService serves the read side of the match tables.
type MatchService struct {
	db              *gorm.DB
	MatchRepository repositories.MatchRepository
	MatchCache      cache.MatchCache
}

// MatchServiceDeps carries the service collaborators.
type MatchServiceDeps struct {
	DB              *gorm.DB
	MatchRepository repositories.MatchRepository
	MatchCache      cache.MatchCache
}

// NewMatchService creates a new match service.
func NewMatchService(deps *MatchServiceDeps) *MatchService {
	service := &MatchService{
		db:              deps.DB,
		MatchRepository: deps.MatchRepository,
		MatchCache:      deps.MatchCache,
	}

	if service.MatchRepository == nil {
		service.MatchRepository = repositories.NewMatchRepository(deps.DB)
	}

	return service
}

// GetMatches returns one page of match previews.
func (s *MatchService) GetMatches(filter *filters.MatchListFilter) (*dto.PaginatedMatches, error) {
	matches, total, err := s.MatchRepository.ListByLeague(filter.LeagueId, filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}

	previews := make([]dto.MatchPreview, 0, len(matches))
	for i := range matches {
		previews = append(previews, toMatchPreview(&matches[i]))
	}

	return &dto.PaginatedMatches{
		Matches: previews,
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
	}, nil
}

// GetFullMatch returns the match detail with its roster, nil when unknown.
// Served from the cache when possible.
func (s *MatchService) GetFullMatch(ctx context.Context, matchId int64) (*dto.FullMatch, error) {
	if s.MatchCache != nil {
		if cached, err := s.MatchCache.GetFullMatch(ctx, matchId); err == nil && cached != nil {
			return cached, nil
		}
	}

	match, err := s.MatchRepository.GetByMatchId(matchId)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, nil
	}

	participations, err := s.MatchRepository.GetParticipations(matchId)
	if err != nil {
		return nil, err
	}

	full := &dto.FullMatch{
		MatchPreview: toMatchPreview(match),
	}
	for i := range participations {
		full.Players = append(full.Players, toMatchParticipant(&participations[i]))
	}

	if s.MatchCache != nil {
		// Failing to cache is not an error worth surfacing.
		s.MatchCache.SetFullMatch(ctx, full)
	}

	return full, nil
}

// GetMatchAchievements returns the fact set of a match.
func (s *MatchService) GetMatchAchievements(matchId int64) ([]dto.MatchAchievement, error) {
	facts, err := s.MatchRepository.GetAchievements(matchId)
	if err != nil {
		return nil, err
	}

	result := make([]dto.MatchAchievement, 0, len(facts))
	for i := range facts {
		result = append(result, toMatchAchievement(&facts[i]))
	}

	return result, nil
}

// InvalidateMatch drops the cached detail, used after a refresh.
func (s *MatchService) InvalidateMatch(ctx context.Context, matchId int64) {
	if s.MatchCache != nil {
		s.MatchCache.InvalidateFullMatch(ctx, matchId)
	}
}

func toMatchPreview(match *models.Match) dto.MatchPreview {
	return dto.MatchPreview{
		MatchId:         match.MatchId,
		LeagueId:        match.LeagueId,
		StartTime:       match.StartTime,
		Duration:        match.Duration,
		RadiantWin:      match.RadiantWin,
		RadiantScore:    match.RadiantScore,
		DireScore:       match.DireScore,
		RadiantTeamName: match.RadiantTeamName,
		DireTeamName:    match.DireTeamName,
		GameMode:        match.GameMode,
		IsParsed:        match.IsParsed,
		ParseRequested:  match.ParseRequested,
	}
}

func toMatchParticipant(participation *models.MatchPlayer) dto.MatchParticipant {
	return dto.MatchParticipant{
		PlayerId:  participation.PlayerId,
		AccountId: participation.Player.AccountId,
		Nickname:  participation.Player.Nickname,
		AvatarUrl: participation.Player.AvatarUrl,
		HeroId:    participation.HeroId,
		Team:      participation.Team,
		Kills:     participation.Kills,
		Deaths:    participation.Deaths,
		Assists:   participation.Assists,
		Gpm:       participation.Gpm,
		Xpm:       participation.Xpm,
		NetWorth:  participation.NetWorth,
		LastHits:  participation.LastHits,
		Denies:    participation.Denies,
	}
}

func toMatchAchievement(fact *models.Achievement) dto.MatchAchievement {
	entry := dto.MatchAchievement{
		Type:        fact.AchievementType,
		Name:        fact.AchievementName,
		Description: fact.AchievementDesc,
		PlayerId:    fact.PlayerId,
		Team:        fact.Team,
	}

	if fact.Player != nil {
		entry.Nickname = &fact.Player.Nickname
	}

	if fact.Value != nil {
		var value map[string]any
		if err := json.Unmarshal(fact.Value, &value); err == nil {
			entry.Value = value
		}
	}

	return entry
}

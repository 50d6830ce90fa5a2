package services

import (
	"context"

	"dotatracker/api/dto"
	"dotatracker/api/filters"
	"dotatracker/api/repositories"
	"dotatracker/pkg/database/models"
	"dotatracker/syncer/services/players"

	"gorm.io/gorm"
)

// PlayerService serves the player listing.
type PlayerService struct {
	PlayerRepository repositories.PlayerRepository
	Enricher         *players.Service
}

// PlayerServiceDeps carries the service collaborators.
type PlayerServiceDeps struct {
	DB               *gorm.DB
	PlayerRepository repositories.PlayerRepository
	Enricher         *players.Service
}

// NewPlayerService creates a new player service.
func NewPlayerService(deps *PlayerServiceDeps) *PlayerService {
	service := &PlayerService{
		PlayerRepository: deps.PlayerRepository,
		Enricher:         deps.Enricher,
	}

	if service.PlayerRepository == nil {
		service.PlayerRepository = repositories.NewPlayerRepository(deps.DB)
	}

	return service
}

// GetPlayers returns one page of players and kicks a background enrichment
// for the ones still carrying a placeholder nickname.
func (s *PlayerService) GetPlayers(filter *filters.PlayerListFilter) ([]dto.PlayerEntry, int64, error) {
	playerRows, total, err := s.PlayerRepository.List(filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]dto.PlayerEntry, 0, len(playerRows))
	for i := range playerRows {
		entries = append(entries, toPlayerEntry(&playerRows[i]))
	}

	if s.Enricher != nil {
		if stale := collectPlaceholders(playerRows); len(stale) > 0 {
			// Best effort, the next page load picks the names up.
			go s.Enricher.EnrichPlayers(context.Background(), stale)
		}
	}

	return entries, total, nil
}

func collectPlaceholders(playerRows []models.Player) []*models.Player {
	var stale []*models.Player
	for i := range playerRows {
		if playerRows[i].HasPlaceholderNickname() {
			stale = append(stale, &playerRows[i])
		}
	}
	return stale
}

func toPlayerEntry(player *models.Player) dto.PlayerEntry {
	return dto.PlayerEntry{
		PlayerId:     player.ID,
		AccountId:    player.AccountId,
		Nickname:     player.Nickname,
		AvatarUrl:    player.AvatarUrl,
		TotalMatches: player.TotalMatches,
		TotalWins:    player.TotalWins,
	}
}

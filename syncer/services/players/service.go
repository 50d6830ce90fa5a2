// Package players resolves external account ids to internal player records
// and enriches their public profile from the identity provider.
package players

import (
	"context"
	"errors"
	"fmt"
	"log"

	"dotatracker/pkg/database/models"
	"dotatracker/pkg/steamid"
	"dotatracker/syncer/data/steam"
	"dotatracker/syncer/repositories"

	"gorm.io/gorm"
)

// The identity provider caps a single profile lookup at 100 ids.
const summariesBatchSize = 100

// IdentityProvider is the consumed slice of the Steam client.
type IdentityProvider interface {
	GetPlayerSummaries(ctx context.Context, steamIds64 []string) ([]steam.PlayerSummary, error)
}

// Service is the identity resolver.
type Service struct {
	PlayerRepository repositories.PlayerRepository
	provider         IdentityProvider
}

// NewService creates the player service.
func NewService(playerRepo repositories.PlayerRepository, provider IdentityProvider) *Service {
	return &Service{
		PlayerRepository: playerRepo,
		provider:         provider,
	}
}

// EnsurePlayer finds or creates the player for an account id. Safe under
// concurrent invocation for the same id: a duplicate key race degrades to
// reading the winning row.
func (s *Service) EnsurePlayer(accountId int64) (*models.Player, error) {
	player, err := s.PlayerRepository.GetByAccountId(accountId)
	if err != nil {
		return nil, err
	}
	if player != nil {
		return player, nil
	}

	player = &models.Player{
		AccountId: accountId,
		Nickname:  models.PlaceholderNickname(accountId),
	}

	if err := s.PlayerRepository.Create(player); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another resolver won the insert, use its row.
			existing, readErr := s.PlayerRepository.GetByAccountId(accountId)
			if readErr != nil {
				return nil, readErr
			}
			if existing != nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("couldn't create the player for account %d: %v", accountId, err)
	}

	return player, nil
}

// EnrichPlayers fetches the real nickname and avatar for every player still
// carrying the placeholder name. Best effort: failures are logged and the
// placeholders stay, ingestion is never blocked on the identity provider.
func (s *Service) EnrichPlayers(ctx context.Context, players []*models.Player) {
	byExternalId := make(map[string]*models.Player)
	var steamIds64 []string

	for _, player := range players {
		if player == nil || !player.HasPlaceholderNickname() {
			continue
		}

		externalId := steamid.ToSteamId64String(player.AccountId)
		byExternalId[externalId] = player
		steamIds64 = append(steamIds64, externalId)
	}

	if len(steamIds64) == 0 {
		return
	}

	for start := 0; start < len(steamIds64); start += summariesBatchSize {
		end := min(start+summariesBatchSize, len(steamIds64))

		summaries, err := s.provider.GetPlayerSummaries(ctx, steamIds64[start:end])
		if err != nil {
			log.Printf("Couldn't fetch the player summaries: %v", err)
			continue
		}

		for _, summary := range summaries {
			player, exists := byExternalId[summary.SteamId]
			if !exists || summary.PersonaName == "" {
				continue
			}

			if err := s.PlayerRepository.UpdateProfile(player.ID, summary.PersonaName, summary.AvatarFull); err != nil {
				log.Printf("Couldn't update the profile of player %d: %v", player.ID, err)
			}
		}
	}
}

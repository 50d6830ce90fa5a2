package services

import (
	"testing"

	"dotatracker/api/filters"
	"dotatracker/api/services/testutil"
	"dotatracker/pkg/database/models"

	"github.com/stretchr/testify/assert"
)

func TestGetPlayers(t *testing.T) {
	mockRepo := new(testutil.MockPlayerRepository)
	service := &PlayerService{PlayerRepository: mockRepo}

	mockRepo.On("List", 1, 10).Return([]models.Player{
		{ID: 1, AccountId: 1000, Nickname: "Yatoro", TotalMatches: 20, TotalWins: 15},
		{ID: 2, AccountId: 2000, Nickname: "Player_2000", TotalMatches: 5, TotalWins: 1},
	}, int64(2), nil)

	entries, total, err := service.GetPlayers(&filters.PlayerListFilter{Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, entries, 2)
	assert.Equal(t, "Yatoro", entries[0].Nickname)
	assert.Equal(t, 15, entries[0].TotalWins)
	testutil.VerifyAllMocks(t, mockRepo)
}

func TestCollectPlaceholders(t *testing.T) {
	players := []models.Player{
		{ID: 1, Nickname: "Yatoro"},
		{ID: 2, Nickname: "Player_2000"},
		{ID: 3, Nickname: "Player_3000"},
	}

	stale := collectPlaceholders(players)

	assert.Len(t, stale, 2)
	assert.Equal(t, uint(2), stale[0].ID)
	assert.Equal(t, uint(3), stale[1].ID)
}

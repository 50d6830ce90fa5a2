package testutil

import (
	"context"
	"testing"
	"time"

	"dotatracker/pkg/database/models"
	opendota "dotatracker/syncer/data/opendota"
	"dotatracker/syncer/data/steam"

	"github.com/stretchr/testify/mock"
)

// Shared error message for mocked database failures.
const DatabaseError = "database error"

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(*testing.T) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// ============================================================================
// Repository mocks.
// ============================================================================

type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) GetExistingMatchIds(leagueId int) ([]int64, error) {
	args := m.Called(leagueId)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockMatchRepository) GetByMatchId(matchId int64) (*models.Match, error) {
	args := m.Called(matchId)
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchRepository) UpsertMatch(match *models.Match) error {
	args := m.Called(match)
	return args.Error(0)
}

func (m *MockMatchRepository) CreateMatchPlayers(players []*models.MatchPlayer) error {
	args := m.Called(players)
	return args.Error(0)
}

func (m *MockMatchRepository) GetMatchPlayers(matchId int64) ([]models.MatchPlayer, error) {
	args := m.Called(matchId)
	return args.Get(0).([]models.MatchPlayer), args.Error(1)
}

func (m *MockMatchRepository) SetTeams(matchId int64, radiantTeamId *int64, radiantName *string, direTeamId *int64, direName *string) error {
	args := m.Called(matchId, radiantTeamId, radiantName, direTeamId, direName)
	return args.Error(0)
}

func (m *MockMatchRepository) SetParseRequested(matchId int64, at time.Time) error {
	args := m.Called(matchId, at)
	return args.Error(0)
}

func (m *MockMatchRepository) DeleteByLeague(leagueId int) (int64, error) {
	args := m.Called(leagueId)
	return args.Get(0).(int64), args.Error(1)
}

type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) GetByAccountId(accountId int64) (*models.Player, error) {
	args := m.Called(accountId)
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetByIds(ids []uint) ([]models.Player, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.Player), args.Error(1)
}

func (m *MockPlayerRepository) Create(player *models.Player) error {
	args := m.Called(player)
	return args.Error(0)
}

func (m *MockPlayerRepository) UpdateProfile(playerId uint, nickname string, avatarUrl string) error {
	args := m.Called(playerId, nickname, avatarUrl)
	return args.Error(0)
}

func (m *MockPlayerRepository) BumpAggregates(playerIds []uint, winnerIds []uint) error {
	args := m.Called(playerIds, winnerIds)
	return args.Error(0)
}

type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) ReplaceForMatch(matchId int64, facts []*models.Achievement) error {
	args := m.Called(matchId, facts)
	return args.Error(0)
}

type MockSyncLogRepository struct {
	mock.Mock
}

func (m *MockSyncLogRepository) Create(entry *models.SyncLog) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockSyncLogRepository) GetLatest(limit int) ([]models.SyncLog, error) {
	args := m.Called(limit)
	return args.Get(0).([]models.SyncLog), args.Error(1)
}

// ============================================================================
// Data source mocks.
// ============================================================================

type MockMatchLister struct {
	mock.Mock
}

func (m *MockMatchLister) GetMatchHistory(ctx context.Context, leagueId int) ([]steam.HistoryMatch, error) {
	args := m.Called(ctx, leagueId)
	return args.Get(0).([]steam.HistoryMatch), args.Error(1)
}

type MockMatchDetailer struct {
	mock.Mock
}

func (m *MockMatchDetailer) GetMatchDetail(ctx context.Context, matchId int64) (*opendota.MatchDetail, error) {
	args := m.Called(ctx, matchId)
	return args.Get(0).(*opendota.MatchDetail), args.Error(1)
}

func (m *MockMatchDetailer) RequestParse(ctx context.Context, matchId int64) (int64, error) {
	args := m.Called(ctx, matchId)
	return args.Get(0).(int64), args.Error(1)
}

type MockTeamDirectory struct {
	mock.Mock
}

func (m *MockTeamDirectory) GetTeamInfo(ctx context.Context, teamId int64) (*steam.TeamInfo, error) {
	args := m.Called(ctx, teamId)
	return args.Get(0).(*steam.TeamInfo), args.Error(1)
}

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) GetPlayerSummaries(ctx context.Context, steamIds64 []string) ([]steam.PlayerSummary, error) {
	args := m.Called(ctx, steamIds64)
	return args.Get(0).([]steam.PlayerSummary), args.Error(1)
}

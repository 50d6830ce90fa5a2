package sync

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"dotatracker/pkg/database/models"
	opendota "dotatracker/syncer/data/opendota"
	"dotatracker/syncer/data/steam"
	"dotatracker/syncer/services/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testLeagueId = 16935

func TestRunSyncsOnlyNewMatches(t *testing.T) {
	service, mocks := setupTestService()

	mocks.lister.On("GetMatchHistory", mock.Anything, testLeagueId).
		Return(historyMatches(1, 2, 3), nil)
	mocks.matchRepo.On("GetExistingMatchIds", testLeagueId).
		Return([]int64{1}, nil)

	for _, matchId := range []int64{2, 3} {
		mocks.detailer.On("GetMatchDetail", mock.Anything, matchId).
			Return(parsedDetail(matchId), nil)
		mocks.achievementRepo.On("ReplaceForMatch", matchId, mock.Anything).
			Return(nil)
	}

	mocks.matchRepo.On("UpsertMatch", mock.Anything).Return(nil)
	mocks.matchRepo.On("CreateMatchPlayers", mock.Anything).Return(nil)
	mocks.playerRepo.On("GetByAccountId", int64(1000)).Return(knownPlayer(1, 1000), nil)
	mocks.playerRepo.On("GetByAccountId", int64(2000)).Return(knownPlayer(2, 2000), nil)
	mocks.playerRepo.On("BumpAggregates", []uint{1, 2}, []uint{1}).Return(nil)
	mocks.syncLogRepo.On("Create", mock.MatchedBy(func(entry *models.SyncLog) bool {
		return entry.Status == models.SyncStatusSuccess && entry.SyncedCount == 2
	})).Return(nil)

	result, err := service.run(context.Background(), testLeagueId)

	assert.NoError(t, err)
	assert.Equal(t, &RunResult{Synced: 2, Total: 2}, result)

	// The already persisted match was never fetched again.
	mocks.detailer.AssertNotCalled(t, "GetMatchDetail", mock.Anything, int64(1))

	status := service.GetStatus()
	assert.False(t, status.Running)
	assert.Equal(t, 2, status.Progress.Current)
	assert.Equal(t, 2, status.Progress.Total)
	assert.Nil(t, status.CurrentMatch)

	testutil.VerifyAllMocks(t, mocks.lister, mocks.detailer, mocks.matchRepo, mocks.syncLogRepo)
}

func TestRunSkipsFailedMatches(t *testing.T) {
	service, mocks := setupTestService()

	mocks.lister.On("GetMatchHistory", mock.Anything, testLeagueId).
		Return(historyMatches(2, 3), nil)
	mocks.matchRepo.On("GetExistingMatchIds", testLeagueId).
		Return([]int64{}, nil)

	// The first match fails on fetch, the batch keeps going.
	mocks.detailer.On("GetMatchDetail", mock.Anything, int64(2)).
		Return((*opendota.MatchDetail)(nil), errors.New("upstream timeout"))
	mocks.detailer.On("GetMatchDetail", mock.Anything, int64(3)).
		Return(parsedDetail(3), nil)
	mocks.achievementRepo.On("ReplaceForMatch", int64(3), mock.Anything).Return(nil)

	mocks.matchRepo.On("UpsertMatch", mock.Anything).Return(nil)
	mocks.matchRepo.On("CreateMatchPlayers", mock.Anything).Return(nil)
	mocks.playerRepo.On("GetByAccountId", int64(1000)).Return(knownPlayer(1, 1000), nil)
	mocks.playerRepo.On("GetByAccountId", int64(2000)).Return(knownPlayer(2, 2000), nil)
	mocks.playerRepo.On("BumpAggregates", mock.Anything, mock.Anything).Return(nil)
	mocks.syncLogRepo.On("Create", mock.MatchedBy(func(entry *models.SyncLog) bool {
		return entry.Status == models.SyncStatusSuccess && entry.SyncedCount == 1
	})).Return(nil)

	result, err := service.run(context.Background(), testLeagueId)

	assert.NoError(t, err)
	assert.Equal(t, &RunResult{Synced: 1, Total: 2}, result)
	assert.False(t, service.GetStatus().Running)
}

func TestRunDiscoveryFailureAborts(t *testing.T) {
	service, mocks := setupTestService()

	mocks.lister.On("GetMatchHistory", mock.Anything, testLeagueId).
		Return([]steam.HistoryMatch(nil), errors.New("api key rejected"))
	mocks.syncLogRepo.On("Create", mock.MatchedBy(func(entry *models.SyncLog) bool {
		return entry.Status == models.SyncStatusFailed && entry.ErrorMessage != nil
	})).Return(nil)

	result, err := service.run(context.Background(), testLeagueId)

	assert.Error(t, err)
	assert.Nil(t, result)

	// The failed run still releases the single flight guard.
	status := service.GetStatus()
	assert.False(t, status.Running)
	assert.NotEmpty(t, status.Error)
}

func TestSyncNewMatchNilDetailIsSoftSkip(t *testing.T) {
	service, mocks := setupTestService()

	mocks.detailer.On("GetMatchDetail", mock.Anything, int64(5)).
		Return((*opendota.MatchDetail)(nil), nil)

	err := service.syncNewMatch(context.Background(), 5, testLeagueId)

	assert.NoError(t, err)
	mocks.matchRepo.AssertNotCalled(t, "UpsertMatch", mock.Anything)
}

func TestSyncNewMatchUnparsedSkipsFacts(t *testing.T) {
	service, mocks := setupTestService()

	mocks.detailer.On("GetMatchDetail", mock.Anything, int64(5)).
		Return(unparsedDetail(5), nil)
	mocks.matchRepo.On("UpsertMatch", mock.MatchedBy(func(match *models.Match) bool {
		return !match.IsParsed
	})).Return(nil)
	mocks.matchRepo.On("CreateMatchPlayers", mock.Anything).Return(nil)
	mocks.playerRepo.On("GetByAccountId", int64(1000)).Return(knownPlayer(1, 1000), nil)
	mocks.playerRepo.On("GetByAccountId", int64(2000)).Return(knownPlayer(2, 2000), nil)
	mocks.playerRepo.On("BumpAggregates", mock.Anything, mock.Anything).Return(nil)

	err := service.syncNewMatch(context.Background(), 5, testLeagueId)

	assert.NoError(t, err)
	mocks.achievementRepo.AssertNotCalled(t, "ReplaceForMatch", mock.Anything, mock.Anything)
}

func TestSyncNewMatchSkipsAnonymousSlots(t *testing.T) {
	service, mocks := setupTestService()

	detail := parsedDetail(5)
	detail.Players[1].AccountId = 0

	mocks.detailer.On("GetMatchDetail", mock.Anything, int64(5)).Return(detail, nil)
	mocks.matchRepo.On("UpsertMatch", mock.Anything).Return(nil)
	mocks.playerRepo.On("GetByAccountId", int64(1000)).Return(knownPlayer(1, 1000), nil)
	mocks.matchRepo.On("CreateMatchPlayers", mock.MatchedBy(func(players []*models.MatchPlayer) bool {
		return len(players) == 1 && players[0].PlayerId == 1
	})).Return(nil)
	mocks.playerRepo.On("BumpAggregates", []uint{1}, []uint{1}).Return(nil)

	// No fact may reference the unpersisted anonymous slot.
	mocks.achievementRepo.On("ReplaceForMatch", int64(5), mock.MatchedBy(func(facts []*models.Achievement) bool {
		for _, fact := range facts {
			if fact.PlayerId != nil && *fact.PlayerId == 0 {
				return false
			}
		}
		return true
	})).Return(nil)

	err := service.syncNewMatch(context.Background(), 5, testLeagueId)

	assert.NoError(t, err)
	testutil.VerifyAllMocks(t, mocks.matchRepo, mocks.achievementRepo)
}

func TestStartSyncSingleFlight(t *testing.T) {
	service, _ := setupTestService()

	assert.NoError(t, service.tracker.Begin())
	assert.ErrorIs(t, service.StartSync(testLeagueId), ErrAlreadyRunning)
	service.tracker.Finish(nil)
}

func TestForceResync(t *testing.T) {
	service, mocks := setupTestService()

	mocks.matchRepo.On("DeleteByLeague", testLeagueId).Return(int64(4), nil)
	mocks.lister.On("GetMatchHistory", mock.Anything, testLeagueId).
		Return(historyMatches(), nil)
	mocks.matchRepo.On("GetExistingMatchIds", testLeagueId).Return([]int64{}, nil)
	mocks.syncLogRepo.On("Create", mock.Anything).Return(nil)

	result, err := service.ForceResync(context.Background(), testLeagueId)

	assert.NoError(t, err)
	assert.Equal(t, &ResyncResult{Deleted: 4, Synced: 0, Total: 0}, result)
	assert.False(t, service.GetStatus().Running)
}

func TestForceResyncSingleFlight(t *testing.T) {
	service, mocks := setupTestService()

	assert.NoError(t, service.tracker.Begin())

	result, err := service.ForceResync(context.Background(), testLeagueId)

	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Nil(t, result)
	mocks.matchRepo.AssertNotCalled(t, "DeleteByLeague", mock.Anything)
	service.tracker.Finish(nil)
}

func TestRefreshMatchUnknown(t *testing.T) {
	service, mocks := setupTestService()

	mocks.matchRepo.On("GetByMatchId", int64(9)).Return((*models.Match)(nil), nil)

	match, err := service.RefreshMatch(context.Background(), 9)

	assert.ErrorIs(t, err, ErrMatchNotFound)
	assert.Nil(t, match)
	mocks.detailer.AssertNotCalled(t, "GetMatchDetail", mock.Anything, mock.Anything)
}

func TestRefreshMatchRecomputesWhenParsed(t *testing.T) {
	service, mocks := setupTestService()

	existing := &models.Match{MatchId: 9, LeagueId: testLeagueId}
	mocks.matchRepo.On("GetByMatchId", int64(9)).Return(existing, nil)
	mocks.detailer.On("GetMatchDetail", mock.Anything, int64(9)).Return(parsedDetail(9), nil)
	mocks.matchRepo.On("UpsertMatch", mock.MatchedBy(func(match *models.Match) bool {
		return match.MatchId == 9 && match.LeagueId == testLeagueId && match.IsParsed
	})).Return(nil)

	// The player map is rebuilt from the rows written at first ingestion.
	mocks.matchRepo.On("GetMatchPlayers", int64(9)).Return([]models.MatchPlayer{
		{MatchId: 9, PlayerId: 1},
		{MatchId: 9, PlayerId: 2},
	}, nil)
	mocks.playerRepo.On("GetByIds", []uint{1, 2}).Return([]models.Player{
		*knownPlayer(1, 1000),
		*knownPlayer(2, 2000),
	}, nil)
	mocks.achievementRepo.On("ReplaceForMatch", int64(9), mock.MatchedBy(func(facts []*models.Achievement) bool {
		for _, fact := range facts {
			if fact.PlayerId != nil && *fact.PlayerId == 1 && fact.AchievementType == "first_blood" {
				return true
			}
		}
		return false
	})).Return(nil)

	match, err := service.RefreshMatch(context.Background(), 9)

	assert.NoError(t, err)
	assert.NotNil(t, match)

	// Participations are write once, a refresh never recreates them.
	mocks.matchRepo.AssertNotCalled(t, "CreateMatchPlayers", mock.Anything)
	testutil.VerifyAllMocks(t, mocks.achievementRepo)
}

func TestRefreshMatchUnparsedSkipsFacts(t *testing.T) {
	service, mocks := setupTestService()

	existing := &models.Match{MatchId: 9, LeagueId: testLeagueId}
	mocks.matchRepo.On("GetByMatchId", int64(9)).Return(existing, nil)
	mocks.detailer.On("GetMatchDetail", mock.Anything, int64(9)).Return(unparsedDetail(9), nil)
	mocks.matchRepo.On("UpsertMatch", mock.Anything).Return(nil)

	_, err := service.RefreshMatch(context.Background(), 9)

	assert.NoError(t, err)
	mocks.achievementRepo.AssertNotCalled(t, "ReplaceForMatch", mock.Anything, mock.Anything)
}

func TestRequestParse(t *testing.T) {
	service, mocks := setupTestService()

	existing := &models.Match{MatchId: 9, LeagueId: testLeagueId}
	mocks.matchRepo.On("GetByMatchId", int64(9)).Return(existing, nil)
	mocks.detailer.On("RequestParse", mock.Anything, int64(9)).Return(int64(777), nil)
	mocks.matchRepo.On("SetParseRequested", int64(9), mock.Anything).Return(nil)

	jobId, err := service.RequestParse(context.Background(), 9)

	assert.NoError(t, err)
	assert.Equal(t, int64(777), jobId)
	testutil.VerifyAllMocks(t, mocks.matchRepo, mocks.detailer)
}

func TestRequestParseAlreadyRequested(t *testing.T) {
	service, mocks := setupTestService()

	existing := &models.Match{MatchId: 9, ParseRequested: true}
	mocks.matchRepo.On("GetByMatchId", int64(9)).Return(existing, nil)

	_, err := service.RequestParse(context.Background(), 9)

	assert.ErrorIs(t, err, ErrParseAlreadyRequested)
	mocks.detailer.AssertNotCalled(t, "RequestParse", mock.Anything, mock.Anything)
}

func TestRequestParseUnknownMatch(t *testing.T) {
	service, mocks := setupTestService()

	mocks.matchRepo.On("GetByMatchId", int64(9)).Return((*models.Match)(nil), nil)

	_, err := service.RequestParse(context.Background(), 9)

	assert.ErrorIs(t, err, ErrMatchNotFound)
	mocks.detailer.AssertNotCalled(t, "RequestParse", mock.Anything, mock.Anything)
}

func TestMapParticipation(t *testing.T) {
	detail := parsedDetail(9)
	entry := &detail.Players[0]
	entry.GoldPerMin = 600
	entry.XpPerMin = 700
	entry.Item0 = 1
	entry.Item1 = 0
	entry.Item2 = 50

	row := mapParticipation(9, 1, "radiant", entry)

	assert.Equal(t, int64(9), row.MatchId)
	assert.Equal(t, uint(1), row.PlayerId)
	assert.Equal(t, "radiant", row.Team)
	assert.Equal(t, 600, row.Gpm)
	assert.Equal(t, 700, row.Xpm)

	// Empty inventory slots are dropped from the item list.
	var items []int
	assert.NoError(t, json.Unmarshal(row.Items, &items))
	assert.Equal(t, []int{1, 50}, items)
}

func TestMapParticipationEmptyInventory(t *testing.T) {
	detail := parsedDetail(9)
	entry := &detail.Players[0]

	row := mapParticipation(9, 1, "radiant", entry)

	// An all empty inventory round-trips as an empty list, not null.
	assert.Equal(t, "[]", string(row.Items))
}

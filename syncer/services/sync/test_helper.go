package sync

import (
	"time"

	"dotatracker/pkg/database/models"
	opendota "dotatracker/syncer/data/opendota"
	"dotatracker/syncer/data/steam"
	"dotatracker/syncer/services/achievements"
	"dotatracker/syncer/services/players"
	"dotatracker/syncer/services/testutil"
)

// Bundle of every mock wired into a test service.
type serviceMocks struct {
	lister   *testutil.MockMatchLister
	detailer *testutil.MockMatchDetailer
	teams    *testutil.MockTeamDirectory

	matchRepo       *testutil.MockMatchRepository
	playerRepo      *testutil.MockPlayerRepository
	achievementRepo *testutil.MockAchievementRepository
	syncLogRepo     *testutil.MockSyncLogRepository

	provider *testutil.MockIdentityProvider
}

// setupTestService builds a service over mocks with the sleeps disabled.
func setupTestService() (*Service, *serviceMocks) {
	mocks := &serviceMocks{
		lister:          new(testutil.MockMatchLister),
		detailer:        new(testutil.MockMatchDetailer),
		teams:           new(testutil.MockTeamDirectory),
		matchRepo:       new(testutil.MockMatchRepository),
		playerRepo:      new(testutil.MockPlayerRepository),
		achievementRepo: new(testutil.MockAchievementRepository),
		syncLogRepo:     new(testutil.MockSyncLogRepository),
		provider:        new(testutil.MockIdentityProvider),
	}

	service := NewService(&ServiceDeps{
		Lister:             mocks.lister,
		Detailer:           mocks.detailer,
		Teams:              mocks.teams,
		MatchRepository:    mocks.matchRepo,
		PlayerRepository:   mocks.playerRepo,
		SyncLogRepository:  mocks.syncLogRepo,
		PlayerService:      players.NewService(mocks.playerRepo, mocks.provider),
		AchievementService: achievements.NewService(mocks.achievementRepo),
	})
	service.sleep = func(time.Duration) {}

	return service, mocks
}

// knownPlayer builds a persisted player with an already enriched nickname so
// the tests never hit the identity provider.
func knownPlayer(id uint, accountId int64) *models.Player {
	return &models.Player{
		ID:        id,
		AccountId: accountId,
		Nickname:  "TestPlayer",
	}
}

// parsedDetail builds a fully parsed two player payload.
func parsedDetail(matchId int64) *opendota.MatchDetail {
	fbSlot := 0
	return &opendota.MatchDetail{
		MatchId:      matchId,
		StartTime:    1700000000,
		Duration:     2400,
		RadiantWin:   true,
		RadiantScore: 30,
		DireScore:    20,
		GameMode:     2,
		Players: []opendota.MatchDetailPlayer{
			{AccountId: 1000, PlayerSlot: 0, Kills: 12, Deaths: 2, Assists: 8},
			{AccountId: 2000, PlayerSlot: 128, Kills: 5, Deaths: 9, Assists: 10},
		},
		Objectives: []opendota.Objective{
			{Type: opendota.ObjectiveFirstBlood, PlayerSlot: &fbSlot},
		},
	}
}

// unparsedDetail builds a payload without the event log.
func unparsedDetail(matchId int64) *opendota.MatchDetail {
	detail := parsedDetail(matchId)
	detail.Objectives = nil
	return detail
}

func historyMatches(ids ...int64) []steam.HistoryMatch {
	var matches []steam.HistoryMatch
	for _, id := range ids {
		matches = append(matches, steam.HistoryMatch{MatchId: id})
	}
	return matches
}

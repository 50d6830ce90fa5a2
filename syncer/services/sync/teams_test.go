package sync

import (
	"context"
	"errors"
	"testing"

	"dotatracker/syncer/data/steam"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func teamId(id int64) *int64 {
	return &id
}

func TestDistinctTeamIds(t *testing.T) {
	matches := []steam.HistoryMatch{
		{MatchId: 1, RadiantTeamId: teamId(10), DireTeamId: teamId(20)},
		{MatchId: 2, RadiantTeamId: teamId(20), DireTeamId: teamId(30)},
		{MatchId: 3},
	}

	assert.Equal(t, []int64{10, 20, 30}, distinctTeamIds(matches))
}

func TestReconcileTeams(t *testing.T) {
	service, mocks := setupTestService()

	matches := []steam.HistoryMatch{
		{MatchId: 1, RadiantTeamId: teamId(10), DireTeamId: teamId(20)},
		{MatchId: 2, RadiantTeamId: teamId(10)},
	}

	mocks.teams.On("GetTeamInfo", mock.Anything, int64(10)).
		Return(&steam.TeamInfo{TeamId: 10, Name: "Team Spirit"}, nil)
	mocks.teams.On("GetTeamInfo", mock.Anything, int64(20)).
		Return(&steam.TeamInfo{TeamId: 20, Name: "Team Liquid"}, nil)

	spirit := "Team Spirit"
	liquid := "Team Liquid"
	mocks.matchRepo.On("SetTeams", int64(1), teamId(10), &spirit, teamId(20), &liquid).Return(nil)
	mocks.matchRepo.On("SetTeams", int64(2), teamId(10), &spirit, (*int64)(nil), (*string)(nil)).Return(nil)

	service.reconcileTeams(context.Background(), matches)

	mocks.matchRepo.AssertNumberOfCalls(t, "SetTeams", 2)
}

func TestReconcileTeamsToleratesFailures(t *testing.T) {
	service, mocks := setupTestService()

	matches := []steam.HistoryMatch{
		{MatchId: 1, RadiantTeamId: teamId(10), DireTeamId: teamId(20)},
	}

	// One lookup fails, one team is unknown upstream. Both names stay null.
	mocks.teams.On("GetTeamInfo", mock.Anything, int64(10)).
		Return((*steam.TeamInfo)(nil), errors.New("upstream timeout"))
	mocks.teams.On("GetTeamInfo", mock.Anything, int64(20)).
		Return((*steam.TeamInfo)(nil), nil)

	mocks.matchRepo.On("SetTeams", int64(1), teamId(10), (*string)(nil), teamId(20), (*string)(nil)).Return(nil)

	service.reconcileTeams(context.Background(), matches)

	mocks.matchRepo.AssertNumberOfCalls(t, "SetTeams", 1)
}

func TestReconcileTeamsNoTeams(t *testing.T) {
	service, mocks := setupTestService()

	service.reconcileTeams(context.Background(), historyMatches(1, 2))

	mocks.teams.AssertNotCalled(t, "GetTeamInfo", mock.Anything, mock.Anything)
	mocks.matchRepo.AssertNotCalled(t, "SetTeams", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

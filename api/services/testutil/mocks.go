package testutil

import (
	"context"
	"testing"

	"dotatracker/api/dto"
	"dotatracker/pkg/database/models"

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

// MockMatchRepository mocks the read side match repository.
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) ListByLeague(leagueId int, page int, limit int) ([]models.Match, int64, error) {
	args := m.Called(leagueId, page, limit)
	return args.Get(0).([]models.Match), args.Get(1).(int64), args.Error(2)
}

func (m *MockMatchRepository) GetByMatchId(matchId int64) (*models.Match, error) {
	args := m.Called(matchId)
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchRepository) GetParticipations(matchId int64) ([]models.MatchPlayer, error) {
	args := m.Called(matchId)
	return args.Get(0).([]models.MatchPlayer), args.Error(1)
}

func (m *MockMatchRepository) GetAchievements(matchId int64) ([]models.Achievement, error) {
	args := m.Called(matchId)
	return args.Get(0).([]models.Achievement), args.Error(1)
}

// MockPlayerRepository mocks the read side player repository.
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) List(page int, limit int) ([]models.Player, int64, error) {
	args := m.Called(page, limit)
	return args.Get(0).([]models.Player), args.Get(1).(int64), args.Error(2)
}

// MockMatchCache mocks the redis backed match detail cache.
type MockMatchCache struct {
	mock.Mock
}

func (m *MockMatchCache) GetFullMatch(ctx context.Context, matchId int64) (*dto.FullMatch, error) {
	args := m.Called(ctx, matchId)
	return args.Get(0).(*dto.FullMatch), args.Error(1)
}

func (m *MockMatchCache) SetFullMatch(ctx context.Context, match *dto.FullMatch) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchCache) InvalidateFullMatch(ctx context.Context, matchId int64) error {
	args := m.Called(ctx, matchId)
	return args.Error(0)
}

package achievements

import (
	"encoding/json"
	"testing"

	"dotatracker/pkg/database/models"
	opendota "dotatracker/syncer/data/opendota"

	"github.com/stretchr/testify/assert"
)

func TestDetectRampage(t *testing.T) {
	tests := []struct {
		name       string
		multiKills map[string]int
		expected   bool
	}{
		{name: "noHistogram", multiKills: nil, expected: false},
		{name: "onlyQuadKills", multiKills: map[string]int{"4": 2}, expected: false},
		{name: "singleRampage", multiKills: map[string]int{"5": 1}, expected: true},
		{name: "mixedWithRampage", multiKills: map[string]int{"2": 3, "5": 2}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := []PlayerContext{newPlayer(1, 0, withMultiKills(tt.multiKills))}
			facts := Detect(newMatchContext(true, players, nil))

			assert.Equal(t, tt.expected, containsType(facts, TypeRampage))
		})
	}
}

func TestDetectFirstBloodAttribution(t *testing.T) {
	players := []PlayerContext{
		newPlayer(1, 0),
		newPlayer(2, 128),
	}
	objectives := []ObjectiveEvent{
		slotObjective(opendota.ObjectiveFirstBlood, 128),
	}

	facts := Detect(newMatchContext(true, players, objectives))

	assert.NotContains(t, typesForPlayer(facts, 1), TypeFirstBlood)
	assert.Contains(t, typesForPlayer(facts, 2), TypeFirstBlood)
}

func TestDetectAegisSnatch(t *testing.T) {
	players := []PlayerContext{
		newPlayer(1, 0),
		newPlayer(2, 128),
	}

	// A plain pickup is not a snatch.
	pickup := []ObjectiveEvent{slotObjective(opendota.ObjectiveAegis, 0)}
	facts := Detect(newMatchContext(true, players, pickup))
	assert.NotContains(t, typesForPlayer(facts, 1), TypeAegisSnatch)

	stolen := []ObjectiveEvent{slotObjective(opendota.ObjectiveAegisStolen, 128)}
	facts = Detect(newMatchContext(true, players, stolen))
	assert.Contains(t, typesForPlayer(facts, 2), TypeAegisSnatch)
}

func TestDetectTripleDouble(t *testing.T) {
	tests := []struct {
		name     string
		kills    int
		deaths   int
		assists  int
		expected bool
	}{
		{name: "allAtBoundary", kills: 10, deaths: 10, assists: 10, expected: true},
		{name: "killsBelow", kills: 9, deaths: 10, assists: 10, expected: false},
		{name: "deathsBelow", kills: 10, deaths: 9, assists: 10, expected: false},
		{name: "assistsBelow", kills: 10, deaths: 10, assists: 9, expected: false},
		{name: "wellAbove", kills: 15, deaths: 12, assists: 20, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := []PlayerContext{newPlayer(1, 0, withStats(tt.kills, tt.deaths, tt.assists))}
			facts := Detect(newMatchContext(false, players, nil))

			assert.Equal(t, tt.expected, containsType(facts, TypeTripleDouble))
		})
	}
}

func TestDetectGodlike(t *testing.T) {
	tests := []struct {
		name        string
		killStreaks map[string]int
		expected    bool
	}{
		{name: "noStreaks", killStreaks: nil, expected: false},
		{name: "nineStreak", killStreaks: map[string]int{"9": 1}, expected: false},
		{name: "tenStreak", killStreaks: map[string]int{"10": 1}, expected: true},
		{name: "longerStreak", killStreaks: map[string]int{"3": 2, "12": 1}, expected: true},
		{name: "malformedKey", killStreaks: map[string]int{"godlike": 1}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := []PlayerContext{newPlayer(1, 0, withKillStreaks(tt.killStreaks))}
			facts := Detect(newMatchContext(true, players, nil))

			assert.Equal(t, tt.expected, containsType(facts, TypeGodlike))
		})
	}
}

func TestDetectHardCarry(t *testing.T) {
	// Radiant scores 10+3+2+1+0, sixteen kills total.
	players := fullRoster([5]int{10, 3, 2, 1, 0})

	facts := Detect(newMatchContext(true, players, nil))
	assert.Contains(t, typesForPlayer(facts, 1), TypeCarryGame)

	// Exactly half is not more than half.
	players = fullRoster([5]int{8, 4, 2, 1, 1})
	facts = Detect(newMatchContext(true, players, nil))
	assert.NotContains(t, typesForPlayer(facts, 1), TypeCarryGame)

	// A losing carry never fires.
	players = fullRoster([5]int{10, 3, 2, 1, 0})
	facts = Detect(newMatchContext(false, players, nil))
	assert.NotContains(t, typesForPlayer(facts, 1), TypeCarryGame)
}

func TestDetectHardCarryPayload(t *testing.T) {
	players := fullRoster([5]int{10, 3, 2, 1, 0})
	facts := Detect(newMatchContext(true, players, nil))

	var carry *payloadValues
	for _, fact := range facts {
		if fact.AchievementType == TypeCarryGame {
			var payload payloadValues
			assert.NoError(t, json.Unmarshal(fact.Value, &payload))
			carry = &payload
		}
	}

	assert.NotNil(t, carry)
	assert.Equal(t, 10, carry.Kills)
	assert.Equal(t, 16, carry.TeamKills)
}

func TestDetectFlawless(t *testing.T) {
	tests := []struct {
		name       string
		radiantWin bool
		slot       int
		deaths     int
		expected   bool
	}{
		{name: "winnerWithoutDeaths", radiantWin: true, slot: 0, deaths: 0, expected: true},
		{name: "winnerWithDeaths", radiantWin: true, slot: 0, deaths: 1, expected: false},
		{name: "loserWithoutDeaths", radiantWin: false, slot: 0, deaths: 0, expected: false},
		{name: "direWinnerWithoutDeaths", radiantWin: false, slot: 128, deaths: 0, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := []PlayerContext{newPlayer(1, tt.slot, withStats(5, tt.deaths, 5))}
			facts := Detect(newMatchContext(tt.radiantWin, players, nil))

			assert.Equal(t, tt.expected, containsType(facts, TypePerfectGame))
		})
	}
}

func TestDetectAegisVictory(t *testing.T) {
	players := []PlayerContext{
		newPlayer(1, 0),
		newPlayer(2, 128),
	}

	// Winning side pickup fires the team fact tagged with the winner.
	facts := Detect(newMatchContext(true, players, []ObjectiveEvent{
		slotObjective(opendota.ObjectiveAegis, 0),
	}))
	team := teamFacts(facts)
	assert.Len(t, team, 1)
	assert.Equal(t, TypeAegisVictory, team[0].AchievementType)
	assert.Equal(t, SideRadiant, *team[0].Team)

	// Losing side pickup fires nothing.
	facts = Detect(newMatchContext(false, players, []ObjectiveEvent{
		slotObjective(opendota.ObjectiveAegis, 0),
	}))
	assert.Empty(t, teamFacts(facts))

	// A steal by the winner counts as a pickup.
	facts = Detect(newMatchContext(false, players, []ObjectiveEvent{
		slotObjective(opendota.ObjectiveAegisStolen, 128),
	}))
	team = teamFacts(facts)
	assert.Len(t, team, 1)
	assert.Equal(t, SideDire, *team[0].Team)
}

func TestDetectSkipsAnonymousSlots(t *testing.T) {
	// An anonymous slot has no persisted player row, so its surrogate key
	// stays zero in the context.
	anonymous := newPlayer(0, 0, withStats(6, 0, 2))
	anonymous.AccountId = 0
	named := newPlayer(1, 1, withStats(5, 3, 4))

	facts := Detect(newMatchContext(true, []PlayerContext{anonymous, named}, nil))

	for _, fact := range facts {
		if fact.PlayerId != nil {
			assert.NotZero(t, *fact.PlayerId)
		}
	}

	// The anonymous kills still count into the side total: five of eleven
	// kills is not more than half, so the named player is no carry.
	assert.NotContains(t, typesForPlayer(facts, 1), TypeCarryGame)
}

func TestDetectIsDeterministic(t *testing.T) {
	players := fullRoster([5]int{12, 3, 2, 1, 0})
	players[0].MultiKills = map[string]int{"5": 1}
	players[0].Deaths = 0
	objectives := []ObjectiveEvent{
		slotObjective(opendota.ObjectiveFirstBlood, 0),
		slotObjective(opendota.ObjectiveAegis, 1),
	}

	first := Detect(newMatchContext(true, players, objectives))
	second := Detect(newMatchContext(true, players, objectives))

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

// payloadValues decodes the carry payload.
type payloadValues struct {
	Kills     int `json:"kills"`
	TeamKills int `json:"team_kills"`
}

func containsType(facts []*models.Achievement, achievementType string) bool {
	for _, fact := range facts {
		if fact.AchievementType == achievementType {
			return true
		}
	}
	return false
}

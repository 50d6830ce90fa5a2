package achievements

import (
	"dotatracker/pkg/database/models"
	opendota "dotatracker/syncer/data/opendota"
)

// Helpers shared by the engine and context tests.

// playerOpt mutates a roster entry fixture.
type playerOpt func(*PlayerContext)

func withStats(kills, deaths, assists int) playerOpt {
	return func(p *PlayerContext) {
		p.Kills = kills
		p.Deaths = deaths
		p.Assists = assists
	}
}

func withMultiKills(histogram map[string]int) playerOpt {
	return func(p *PlayerContext) {
		p.MultiKills = histogram
	}
}

func withKillStreaks(histogram map[string]int) playerOpt {
	return func(p *PlayerContext) {
		p.KillStreaks = histogram
	}
}

// newPlayer builds a roster entry on the given slot with defaults.
func newPlayer(playerId uint, slot int, opts ...playerOpt) PlayerContext {
	p := PlayerContext{
		PlayerId:  playerId,
		AccountId: int64(playerId) * 1000,
		Slot:      slot,
		Side:      SideOfSlot(slot),
	}

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// newMatchContext builds a detection input with the aegis flag precomputed.
func newMatchContext(radiantWin bool, players []PlayerContext, objectives []ObjectiveEvent) *MatchContext {
	mc := &MatchContext{
		MatchId:    8000000001,
		RadiantWin: radiantWin,
		Players:    players,
		Objectives: objectives,
	}
	mc.AegisDestroyedByWinner = aegisPickedByWinner(mc)
	return mc
}

func slotObjective(eventType string, slot int) ObjectiveEvent {
	return ObjectiveEvent{Type: eventType, Slot: &slot}
}

// typesForPlayer collects the fired rule types for one player id.
func typesForPlayer(facts []*models.Achievement, playerId uint) []string {
	var types []string
	for _, fact := range facts {
		if fact.PlayerId != nil && *fact.PlayerId == playerId {
			types = append(types, fact.AchievementType)
		}
	}
	return types
}

// teamFacts collects the facts without a player attribution.
func teamFacts(facts []*models.Achievement) []*models.Achievement {
	var team []*models.Achievement
	for _, fact := range facts {
		if fact.PlayerId == nil {
			team = append(team, fact)
		}
	}
	return team
}

// fullRoster builds a standard ten player roster with the given kill lines
// for the radiant side and quiet dire players.
func fullRoster(radiantKills [5]int) []PlayerContext {
	var players []PlayerContext
	for i := 0; i < 5; i++ {
		players = append(players, newPlayer(uint(i+1), i, withStats(radiantKills[i], 5, 5)))
	}
	for i := 0; i < 5; i++ {
		players = append(players, newPlayer(uint(i+6), 128+i, withStats(2, 5, 5)))
	}
	return players
}

// parsedDetail builds a minimal fully parsed payload.
func parsedDetail(matchId int64) *opendota.MatchDetail {
	fbSlot := 0
	return &opendota.MatchDetail{
		MatchId:      matchId,
		StartTime:    1700000000,
		Duration:     2400,
		RadiantWin:   true,
		RadiantScore: 30,
		DireScore:    20,
		Players: []opendota.MatchDetailPlayer{
			{AccountId: 1000, PlayerSlot: 0, Kills: 12, Deaths: 2, Assists: 8},
			{AccountId: 2000, PlayerSlot: 128, Kills: 5, Deaths: 9, Assists: 10},
		},
		Objectives: []opendota.Objective{
			{Type: opendota.ObjectiveFirstBlood, PlayerSlot: &fbSlot},
		},
	}
}

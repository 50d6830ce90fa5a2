package achievements

import (
	"strconv"

	opendota "dotatracker/syncer/data/opendota"
)

// Achievement type tags.
const (
	TypeRampage      = "rampage"
	TypeFirstBlood   = "first_blood"
	TypeAegisSnatch  = "aegis_snatch"
	TypeTripleDouble = "triple_double"
	TypeGodlike      = "godlike"
	TypeCarryGame    = "carry_game"
	TypePerfectGame  = "perfect_game"
	TypeAegisVictory = "aegis_victory"
)

// PlayerRule is one independent predicate with its fact builder, evaluated
// for every player of a match. All matching rules fire, order is irrelevant.
type PlayerRule struct {
	Type        string
	Name        string
	Description string
	Matches     func(mc *MatchContext, p *PlayerContext) bool
	// Payload captures the triggering values, nil when the fact is self evident.
	Payload func(mc *MatchContext, p *PlayerContext) map[string]any
}

// TeamRule is a match level predicate producing a fact tagged with a side.
type TeamRule struct {
	Type        string
	Name        string
	Description string
	Matches     func(mc *MatchContext) (string, bool)
	Payload     func(mc *MatchContext) map[string]any
}

// Threshold for the godlike streak.
const godlikeStreak = 10

// PlayerRules is the fixed per player rule set.
var PlayerRules = []PlayerRule{
	{
		Type:        TypeRampage,
		Name:        "Rampage",
		Description: "Scored a rampage",
		Matches: func(mc *MatchContext, p *PlayerContext) bool {
			return p.MultiKills["5"] > 0
		},
		Payload: func(mc *MatchContext, p *PlayerContext) map[string]any {
			return map[string]any{"kills": p.Kills}
		},
	},
	{
		Type:        TypeFirstBlood,
		Name:        "First Blood",
		Description: "Drew first blood",
		Matches: func(mc *MatchContext, p *PlayerContext) bool {
			return mc.HasObjectiveForSlot(opendota.ObjectiveFirstBlood, p.Slot)
		},
	},
	{
		Type:        TypeAegisSnatch,
		Name:        "Aegis Snatch",
		Description: "Snatched the Aegis of the Immortal",
		Matches: func(mc *MatchContext, p *PlayerContext) bool {
			return mc.HasObjectiveForSlot(opendota.ObjectiveAegisStolen, p.Slot)
		},
	},
	{
		Type:        TypeTripleDouble,
		Name:        "Triple Double",
		Description: "Reached double digits in kills, assists and deaths",
		Matches: func(mc *MatchContext, p *PlayerContext) bool {
			return p.Kills >= 10 && p.Assists >= 10 && p.Deaths >= 10
		},
		Payload: func(mc *MatchContext, p *PlayerContext) map[string]any {
			return map[string]any{"kills": p.Kills, "assists": p.Assists, "deaths": p.Deaths}
		},
	},
	{
		Type:        TypeGodlike,
		Name:        "Godlike",
		Description: "Held a kill streak of ten or more",
		Matches: func(mc *MatchContext, p *PlayerContext) bool {
			for streak := range p.KillStreaks {
				value, err := strconv.Atoi(streak)
				if err == nil && value >= godlikeStreak {
					return true
				}
			}
			return false
		},
	},
	{
		Type:        TypeCarryGame,
		Name:        "Hard Carry",
		Description: "Won with more than half of the team's kills",
		Matches: func(mc *MatchContext, p *PlayerContext) bool {
			if !mc.Won(p) {
				return false
			}
			return float64(p.Kills) > float64(mc.SideKills(p.Side))/2
		},
		Payload: func(mc *MatchContext, p *PlayerContext) map[string]any {
			return map[string]any{"kills": p.Kills, "team_kills": mc.SideKills(p.Side)}
		},
	},
	{
		Type:        TypePerfectGame,
		Name:        "Flawless",
		Description: "Won without dying",
		Matches: func(mc *MatchContext, p *PlayerContext) bool {
			return mc.Won(p) && p.Deaths == 0
		},
	},
}

// TeamRules is the fixed match level rule set.
var TeamRules = []TeamRule{
	{
		Type:        TypeAegisVictory,
		Name:        "Aegis Victory",
		Description: "Winning team secured the Aegis",
		Matches: func(mc *MatchContext) (string, bool) {
			if !mc.AegisDestroyedByWinner {
				return "", false
			}
			return mc.WinningSide(), true
		},
	},
}

package achievements

import (
	opendota "dotatracker/syncer/data/opendota"
)

// Sides of a match.
const (
	SideRadiant = "radiant"
	SideDire    = "dire"
)

// PlayerContext is the per player slice of the detection input.
type PlayerContext struct {
	PlayerId  uint
	AccountId int64
	Slot      int
	Side      string

	Kills   int
	Deaths  int
	Assists int

	// Histograms keyed by streak length.
	MultiKills  map[string]int
	KillStreaks map[string]int
}

// ObjectiveEvent is one normalized entry of the match event log.
type ObjectiveEvent struct {
	Type string
	Slot *int
}

// MatchContext is the normalized input of the rule engine, built from a
// fully parsed match payload.
type MatchContext struct {
	MatchId    int64
	RadiantWin bool

	// Precomputed during normalization: the winning side picked up the Aegis.
	AegisDestroyedByWinner bool

	Players    []PlayerContext
	Objectives []ObjectiveEvent
}

// WinningSide returns the side that won the match.
func (mc *MatchContext) WinningSide() string {
	if mc.RadiantWin {
		return SideRadiant
	}
	return SideDire
}

// Won reports whether the given player is on the winning side.
func (mc *MatchContext) Won(p *PlayerContext) bool {
	return p.Side == mc.WinningSide()
}

// SideKills sums the kills of every player on the given side.
func (mc *MatchContext) SideKills(side string) int {
	total := 0
	for i := range mc.Players {
		if mc.Players[i].Side == side {
			total += mc.Players[i].Kills
		}
	}
	return total
}

// HasObjectiveForSlot reports whether the event log attributes an event of
// the given type to the roster slot.
func (mc *MatchContext) HasObjectiveForSlot(eventType string, slot int) bool {
	for i := range mc.Objectives {
		obj := &mc.Objectives[i]
		if obj.Type == eventType && obj.Slot != nil && *obj.Slot == slot {
			return true
		}
	}
	return false
}

// SideOfSlot maps a roster slot to its side.
func SideOfSlot(slot int) string {
	if opendota.IsRadiantSlot(slot) {
		return SideRadiant
	}
	return SideDire
}

// BuildMatchContext normalizes a fully parsed payload into the detection
// input. playerIds maps each account id to the persisted surrogate key.
func BuildMatchContext(detail *opendota.MatchDetail, playerIds map[int64]uint) *MatchContext {
	mc := &MatchContext{
		MatchId:    detail.MatchId,
		RadiantWin: detail.RadiantWin,
	}

	for _, p := range detail.Players {
		mc.Players = append(mc.Players, PlayerContext{
			PlayerId:    playerIds[p.AccountId],
			AccountId:   p.AccountId,
			Slot:        p.PlayerSlot,
			Side:        SideOfSlot(p.PlayerSlot),
			Kills:       p.Kills,
			Deaths:      p.Deaths,
			Assists:     p.Assists,
			MultiKills:  p.MultiKills,
			KillStreaks: p.KillStreaks,
		})
	}

	for _, obj := range detail.Objectives {
		mc.Objectives = append(mc.Objectives, ObjectiveEvent{
			Type: obj.Type,
			Slot: obj.PlayerSlot,
		})
	}

	mc.AegisDestroyedByWinner = aegisPickedByWinner(mc)

	return mc
}

// aegisPickedByWinner reports whether the event log shows an Aegis pickup by
// a slot on the winning side.
func aegisPickedByWinner(mc *MatchContext) bool {
	winner := mc.WinningSide()
	for i := range mc.Objectives {
		obj := &mc.Objectives[i]
		if obj.Slot == nil {
			continue
		}
		if obj.Type != opendota.ObjectiveAegis && obj.Type != opendota.ObjectiveAegisStolen {
			continue
		}
		if SideOfSlot(*obj.Slot) == winner {
			return true
		}
	}
	return false
}

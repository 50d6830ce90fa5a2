package opendota

// Objective event types used for attribution in the event log.
const (
	ObjectiveFirstBlood  = "CHAT_MESSAGE_FIRSTBLOOD"
	ObjectiveAegis       = "CHAT_MESSAGE_AEGIS"
	ObjectiveAegisStolen = "CHAT_MESSAGE_AEGIS_STOLEN"
)

// Roster slots below this value belong to the radiant side.
const radiantSlotLimit = 128

// MatchDetail is the full match payload.
// Objectives is only present when the replay was parsed, its absence marks
// the match as partially parsed.
type MatchDetail struct {
	MatchId      int64               `json:"match_id"`
	LeagueId     int                 `json:"leagueid"`
	StartTime    int64               `json:"start_time"`
	Duration     int                 `json:"duration"`
	RadiantWin   bool                `json:"radiant_win"`
	RadiantScore int                 `json:"radiant_score"`
	DireScore    int                 `json:"dire_score"`
	GameMode     int                 `json:"game_mode"`
	Players      []MatchDetailPlayer `json:"players"`
	Objectives   []Objective         `json:"objectives"`
}

// MatchDetailPlayer is one roster entry with its stats and inventory.
type MatchDetailPlayer struct {
	AccountId  int64 `json:"account_id"`
	PlayerSlot int   `json:"player_slot"`
	HeroId     int   `json:"hero_id"`

	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`

	GoldPerMin int `json:"gold_per_min"`
	XpPerMin   int `json:"xp_per_min"`
	NetWorth   int `json:"net_worth"`
	LastHits   int `json:"last_hits"`
	Denies     int `json:"denies"`

	Item0 int `json:"item_0"`
	Item1 int `json:"item_1"`
	Item2 int `json:"item_2"`
	Item3 int `json:"item_3"`
	Item4 int `json:"item_4"`
	Item5 int `json:"item_5"`

	Backpack0   *int `json:"backpack_0"`
	Backpack1   *int `json:"backpack_1"`
	Backpack2   *int `json:"backpack_2"`
	ItemNeutral *int `json:"item_neutral"`

	Lane *int `json:"lane"`

	HeroDamage  int `json:"hero_damage"`
	TowerDamage int `json:"tower_damage"`
	HeroHealing int `json:"hero_healing"`

	AbilityUpgrades []int `json:"ability_upgrades_arr"`

	// Histograms keyed by streak length, only present on parsed replays.
	// Example: {"2": 3, "5": 1} means three double kills and one rampage.
	MultiKills  map[string]int `json:"multi_kills"`
	KillStreaks map[string]int `json:"kill_streaks"`

	FirstbloodClaimed int `json:"firstblood_claimed"`
}

// Objective is one entry of the parsed event log.
// PlayerSlot attributes the event to a roster slot, nil for building events.
type Objective struct {
	Type       string `json:"type"`
	Time       int    `json:"time"`
	PlayerSlot *int   `json:"player_slot"`
}

// IsRadiantSlot reports whether a roster slot belongs to the radiant side.
func IsRadiantSlot(slot int) bool {
	return slot < radiantSlotLimit
}

// IsParsed reports whether the payload carried the detailed event log.
func (m *MatchDetail) IsParsed() bool {
	return m.Objectives != nil
}

// parseRequestResponse is the envelope of the replay parse request.
type parseRequestResponse struct {
	Job struct {
		JobId int64 `json:"jobId"`
	} `json:"job"`
}

package steam

// matchHistoryResponse is the raw GetMatchHistory envelope.
type matchHistoryResponse struct {
	Result struct {
		Status  int            `json:"status"`
		Matches []HistoryMatch `json:"matches"`
	} `json:"result"`
}

// HistoryMatch is one candidate match listed for a league.
// The team ids can be absent for unofficial lobbies.
type HistoryMatch struct {
	MatchId       int64  `json:"match_id"`
	RadiantTeamId *int64 `json:"radiant_team_id"`
	DireTeamId    *int64 `json:"dire_team_id"`
}

// teamInfoResponse is the raw GetTeamInfoByTeamID envelope.
type teamInfoResponse struct {
	Result struct {
		Teams []struct {
			Name string `json:"name"`
			Tag  string `json:"tag"`
		} `json:"teams"`
	} `json:"result"`
}

// TeamInfo is the resolved identity of a persistent team.
type TeamInfo struct {
	TeamId int64
	Name   string
	Tag    string
}

// playerSummariesResponse is the raw GetPlayerSummaries envelope.
type playerSummariesResponse struct {
	Response struct {
		Players []PlayerSummary `json:"players"`
	} `json:"response"`
}

// PlayerSummary is the public profile of one Steam account.
type PlayerSummary struct {
	SteamId     string `json:"steamid"`
	PersonaName string `json:"personaname"`
	AvatarFull  string `json:"avatarfull"`
}

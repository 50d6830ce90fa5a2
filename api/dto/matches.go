package dto

// MatchPreview is the list entry returned by the match listing.
type MatchPreview struct {
	MatchId         int64   `json:"matchId"`
	LeagueId        int     `json:"leagueId"`
	StartTime       int64   `json:"startTime"`
	Duration        int     `json:"duration"`
	RadiantWin      bool    `json:"radiantWin"`
	RadiantScore    int     `json:"radiantScore"`
	DireScore       int     `json:"direScore"`
	RadiantTeamName *string `json:"radiantTeamName"`
	DireTeamName    *string `json:"direTeamName"`
	GameMode        int     `json:"gameMode"`
	IsParsed        bool    `json:"isParsed"`
	ParseRequested  bool    `json:"parseRequested"`
}

// MatchParticipant is one roster row of the match detail.
type MatchParticipant struct {
	PlayerId  uint    `json:"playerId"`
	AccountId int64   `json:"accountId"`
	Nickname  string  `json:"nickname"`
	AvatarUrl *string `json:"avatarUrl"`
	HeroId    int     `json:"heroId"`
	Team      string  `json:"team"`
	Kills     int     `json:"kills"`
	Deaths    int     `json:"deaths"`
	Assists   int     `json:"assists"`
	Gpm       int     `json:"gpm"`
	Xpm       int     `json:"xpm"`
	NetWorth  int     `json:"netWorth"`
	LastHits  int     `json:"lastHits"`
	Denies    int     `json:"denies"`
}

// FullMatch is the match detail with its roster.
type FullMatch struct {
	MatchPreview
	Players []MatchParticipant `json:"players"`
}

// MatchAchievement is one fact row of a match.
type MatchAchievement struct {
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	PlayerId    *uint          `json:"playerId"`
	Nickname    *string        `json:"nickname"`
	Team        *string        `json:"team"`
	Value       map[string]any `json:"value"`
}

// PaginatedMatches is the match listing envelope.
type PaginatedMatches struct {
	Matches []MatchPreview `json:"matches"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
}

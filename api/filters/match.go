package filters

// MatchListFilter binds the match listing query params.
type MatchListFilter struct {
	LeagueId int `form:"league_id"`
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	Limit    int `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}

// MatchURIParams binds the match id path param.
type MatchURIParams struct {
	MatchId int64 `uri:"matchId" binding:"required"`
}

// PlayerListFilter binds the player listing query params.
type PlayerListFilter struct {
	Page  int `form:"page,default=1" binding:"omitempty,min=1"`
	Limit int `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}

// SyncFilter binds the sync trigger query params.
type SyncFilter struct {
	LeagueId int `form:"league_id"`
}

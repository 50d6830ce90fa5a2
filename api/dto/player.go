package dto

// PlayerEntry is one row of the player listing.
type PlayerEntry struct {
	PlayerId     uint    `json:"playerId"`
	AccountId    int64   `json:"accountId"`
	Nickname     string  `json:"nickname"`
	AvatarUrl    *string `json:"avatarUrl"`
	TotalMatches int     `json:"totalMatches"`
	TotalWins    int     `json:"totalWins"`
}

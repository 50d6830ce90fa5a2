// Package steamid converts between Dota 2 account ids and 64 bit Steam ids.
// The conversion is the join key between the match provider and the identity
// provider, so it must be exact.
package steamid

import "strconv"

// Fixed offset between a 32 bit account id and the 64 bit Steam id.
const steamId64Base int64 = 76561197960265728

// ToSteamId64 converts an account id to the 64 bit Steam id.
func ToSteamId64(accountId int64) int64 {
	return steamId64Base + accountId
}

// ToSteamId64String converts an account id to the 64 bit Steam id string
// expected by the Steam Web API.
func ToSteamId64String(accountId int64) string {
	return strconv.FormatInt(ToSteamId64(accountId), 10)
}

// ToAccountId converts a 64 bit Steam id back to the account id.
func ToAccountId(steamId64 int64) int64 {
	return steamId64 - steamId64Base
}

// ParseSteamId64 parses the Steam id string returned by the identity provider.
func ParseSteamId64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

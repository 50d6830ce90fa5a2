// Package steam is the client for the Steam Web API endpoints used by the
// sync pipeline: league match discovery, team identities and player profiles.
package steam

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"dotatracker/pkg/config"
	"dotatracker/syncer/requests"
)

const (
	matchHistoryPath    = "/IDOTA2Match_570/GetMatchHistory/v1"
	teamInfoPath        = "/IDOTA2Match_570/GetTeamInfoByTeamID/v1"
	playerSummariesPath = "/ISteamUser/GetPlayerSummaries/v0002/"

	// Max matches the history endpoint returns per request.
	matchesRequested = 100
)

// Client for the Steam Web API.
type Client struct {
	baseUrl string
	apiKey  string
	http    *requests.Client
}

// NewClient creates the Steam client from the loaded configuration.
func NewClient() *Client {
	return &Client{
		baseUrl: config.Steam.BaseURL,
		apiKey:  config.Steam.ApiKey,
		http:    requests.NewClient(),
	}
}

// GetMatchHistory lists the candidate matches for a league, with the team ids
// when the lobby carried registered teams.
func (c *Client) GetMatchHistory(ctx context.Context, leagueId int) ([]HistoryMatch, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("league_id", strconv.Itoa(leagueId))
	params.Set("matches_requested", strconv.Itoa(matchesRequested))

	var resp matchHistoryResponse
	if err := c.http.GetJSON(ctx, c.baseUrl+matchHistoryPath, params, &resp); err != nil {
		return nil, fmt.Errorf("couldn't get the match history for league %d: %w", leagueId, err)
	}

	return resp.Result.Matches, nil
}

// GetTeamInfo resolves a team id to its display identity.
// Returns nil when the team is unknown, the caller treats it as best effort.
func (c *Client) GetTeamInfo(ctx context.Context, teamId int64) (*TeamInfo, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("start_at_team_id", strconv.FormatInt(teamId, 10))
	params.Set("teams_requested", "1")

	var resp teamInfoResponse
	if err := c.http.GetJSON(ctx, c.baseUrl+teamInfoPath, params, &resp); err != nil {
		return nil, fmt.Errorf("couldn't get the team info for team %d: %w", teamId, err)
	}

	if len(resp.Result.Teams) == 0 {
		return nil, nil
	}

	team := resp.Result.Teams[0]
	return &TeamInfo{
		TeamId: teamId,
		Name:   team.Name,
		Tag:    team.Tag,
	}, nil
}

// GetPlayerSummaries fetches the public profiles for a batch of 64 bit Steam ids.
// The endpoint caps a single request at 100 ids, the caller batches accordingly.
func (c *Client) GetPlayerSummaries(ctx context.Context, steamIds64 []string) ([]PlayerSummary, error) {
	if len(steamIds64) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("steamids", strings.Join(steamIds64, ","))

	var resp playerSummariesResponse
	if err := c.http.GetJSON(ctx, c.baseUrl+playerSummariesPath, params, &resp); err != nil {
		return nil, fmt.Errorf("couldn't get the player summaries: %w", err)
	}

	return resp.Response.Players, nil
}

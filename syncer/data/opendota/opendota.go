// Package opendota is the client for the OpenDota API, used for the full
// match detail (including the parsed event log) and for replay parse requests.
package opendota

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"dotatracker/pkg/config"
	"dotatracker/syncer/requests"
)

// Client for the OpenDota API.
type Client struct {
	baseUrl string
	http    *requests.Client
}

// NewClient creates the OpenDota client from the loaded configuration.
func NewClient() *Client {
	return &Client{
		baseUrl: config.OpenDota.BaseURL,
		http:    requests.NewClient(),
	}
}

// GetMatchDetail fetches the full detail of a match.
// Returns nil without error when the upstream has no data for the id.
func (c *Client) GetMatchDetail(ctx context.Context, matchId int64) (*MatchDetail, error) {
	var detail MatchDetail
	url := c.baseUrl + "/matches/" + strconv.FormatInt(matchId, 10)

	if err := c.http.GetJSON(ctx, url, nil, &detail); err != nil {
		if errors.Is(err, requests.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("couldn't get the detail for match %d: %w", matchId, err)
	}

	// The API can answer an empty object for unknown matches.
	if detail.MatchId == 0 {
		return nil, nil
	}

	return &detail, nil
}

// RequestParse asks the upstream to prioritize parsing the match replay.
// Returns the job id assigned by the upstream queue.
func (c *Client) RequestParse(ctx context.Context, matchId int64) (int64, error) {
	var resp parseRequestResponse
	url := c.baseUrl + "/request/" + strconv.FormatInt(matchId, 10)

	if err := c.http.PostJSON(ctx, url, nil, &resp); err != nil {
		return 0, fmt.Errorf("couldn't request the parse for match %d: %w", matchId, err)
	}

	return resp.Job.JobId, nil
}

// Package requests holds the shared HTTP plumbing for the upstream APIs.
// Every outbound call carries a fixed timeout and transient failures are
// retried with a linearly increasing delay up to a small cap.
package requests

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	defaultRetries = 3
	retryBaseDelay = time.Second
)

// ErrNotFound is returned when the upstream has no data for the resource.
var ErrNotFound = errors.New("resource not found")

// Client is a small JSON client over the standard http.Client.
type Client struct {
	http       *http.Client
	maxRetries int

	// Sleep is swapped out on tests to avoid waiting on the backoff.
	sleep func(time.Duration)
}

// NewClient creates the client with the fixed request timeout.
func NewClient() *Client {
	return &Client{
		http:       &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultRetries,
		sleep:      time.Sleep,
	}
}

// GetJSON runs a GET against the url with the given query params and decodes
// the JSON response into out. Retries transient failures with linear backoff.
func (c *Client) GetJSON(ctx context.Context, rawUrl string, params url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, rawUrl, params, out)
}

// PostJSON runs a POST against the url and decodes the JSON response into out.
func (c *Client) PostJSON(ctx context.Context, rawUrl string, params url.Values, out any) error {
	return c.doJSON(ctx, http.MethodPost, rawUrl, params, out)
}

func (c *Client) doJSON(ctx context.Context, method string, rawUrl string, params url.Values, out any) error {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Linearly increasing delay between attempts.
			c.sleep(retryBaseDelay * time.Duration(attempt))
		}

		err := c.doOnce(ctx, method, rawUrl, params, out)
		if err == nil {
			return nil
		}

		// Not found is final, the upstream simply has no data.
		if errors.Is(err, ErrNotFound) {
			return err
		}

		lastErr = err
	}

	return fmt.Errorf("request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) doOnce(ctx context.Context, method string, rawUrl string, params url.Values, out any) error {
	fullUrl := rawUrl
	if len(params) > 0 {
		fullUrl = rawUrl + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullUrl, nil)
	if err != nil {
		return fmt.Errorf("couldn't create the request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawUrl)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("couldn't decode the response: %w", err)
	}

	return nil
}

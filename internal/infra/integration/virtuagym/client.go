// Package virtuagym wraps the gym-membership platform API. The funnel only
// needs one slice of it: which members joined a club since a given moment,
// so registrations can be pulled into the event log.
package virtuagym

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	apiKey     string
	clubSecret string
	clubID     string
	http       *http.Client
}

func NewClient(baseURL, apiKey, clubSecret, clubID string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		clubSecret: clubSecret,
		clubID:     clubID,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != "" && c.clubSecret != "" && c.clubID != ""
}

// FetchMembers lists club members created on or after since. Credentials
// travel as query parameters, that is how this platform authenticates.
func (c *Client) FetchMembers(ctx context.Context, since time.Time) ([]Member, error) {
	endpoint := fmt.Sprintf("%s/club/%s/member", c.baseURL, url.PathEscape(c.clubID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build member request: %w", err)
	}

	q := req.URL.Query()
	q.Set("api_key", c.apiKey)
	q.Set("club_secret", c.clubSecret)
	q.Set("sync_from", strconv.FormatInt(since.Unix(), 10))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("membership api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("membership api returned %d", resp.StatusCode)
	}

	var envelope memberListResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode member response: %w", err)
	}

	if envelope.Status.StatusCode != 200 {
		return nil, fmt.Errorf("membership api error %d: %s", envelope.Status.StatusCode, envelope.Status.Message)
	}

	return envelope.Result, nil
}

// Package lrclib implements lyric lookup against the public LRCLib API.
package lrclib

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client is an LRCLib API client that implements lyrics.Provider.
// The service needs no credentials.
type Client struct {
	httpClient *http.Client
	apiURL     string
}

// New creates a new LRCLib client.
func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     "https://lrclib.net/api/get",
	}
}

func (c *Client) Name() string { return "lrclib" }

// Search fetches plain lyrics for the given title/artist pair. A 404 means
// LRCLib has no entry for the track and is not an error. Tracks that only
// carry synced lyrics count as no result.
func (c *Client) Search(ctx context.Context, title, artist string) (string, error) {
	params := url.Values{}
	params.Set("artist_name", artist)
	params.Set("track_name", title)

	reqURL := fmt.Sprintf("%s?%s", c.apiURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create lrclib request: %w", err)
	}
	req.Header.Set("User-Agent", "lyricfill/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lrclib request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lrclib returned status %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode lrclib response: %w", err)
	}

	return apiResp.PlainLyrics, nil
}

type apiResponse struct {
	SyncedLyrics string `json:"syncedLyrics"`
	PlainLyrics  string `json:"plainLyrics"`
}

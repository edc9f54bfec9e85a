// Package lyricsovh implements lyric lookup against the public lyrics.ovh API.
package lyricsovh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is a lyrics.ovh API client that implements lyrics.Provider.
// The service needs no credentials.
type Client struct {
	httpClient *http.Client
	apiURL     string
}

// New creates a new lyrics.ovh client.
func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		apiURL:     "https://api.lyrics.ovh/v1",
	}
}

func (c *Client) Name() string { return "lyrics.ovh" }

// Search fetches lyrics for the given title/artist pair. A 404 means the
// service has no entry for the song and is not an error.
func (c *Client) Search(ctx context.Context, title, artist string) (string, error) {
	reqURL := fmt.Sprintf("%s/%s/%s", c.apiURL, url.PathEscape(artist), url.PathEscape(title))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create lyrics.ovh request: %w", err)
	}
	req.Header.Set("User-Agent", "lyricfill/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lyrics.ovh request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("lyrics.ovh returned %d: %s", resp.StatusCode, body)
	}

	var lyricsResp lyricsResponse
	if err := json.NewDecoder(resp.Body).Decode(&lyricsResp); err != nil {
		return "", fmt.Errorf("failed to decode lyrics.ovh response: %w", err)
	}

	return lyricsResp.Lyrics, nil
}

type lyricsResponse struct {
	Lyrics string `json:"lyrics"`
}

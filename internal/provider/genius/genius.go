// Package genius implements lyric lookup against the Genius API.
//
// Genius exposes search over its API but not the lyric text itself, so the
// client searches for the song, then fetches the song page and extracts the
// lyrics from the HTML.
package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// excludedTitlePattern filters out search hits that are alternate cuts
// rather than the song itself.
var excludedTitlePattern = regexp.MustCompile(`(?i)\b(remix|live)\b`)

// sectionHeaderPattern matches inline markers like [Chorus] or [Verse 1].
var sectionHeaderPattern = regexp.MustCompile(`\[[^\]]*\]`)

// Client is a Genius API client that implements lyrics.Provider.
type Client struct {
	token      string
	httpClient *http.Client
	apiURL     string
}

// New creates a new Genius client with the given access token.
func New(token string) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     "https://api.genius.com",
	}
}

func (c *Client) Name() string { return "genius" }

// Search looks the song up via the search API, picks the best hit and
// scrapes its page for the lyric text. Returns "" with a nil error when no
// acceptable hit or no lyric text exists.
func (c *Client) Search(ctx context.Context, title, artist string) (string, error) {
	hits, err := c.search(ctx, title, artist)
	if err != nil {
		return "", err
	}

	hit := pickHit(hits, artist)
	if hit == nil {
		return "", nil
	}

	return c.fetchLyrics(ctx, hit.Result.URL)
}

func (c *Client) search(ctx context.Context, title, artist string) ([]hit, error) {
	q := strings.TrimSpace(title + " " + artist)
	reqURL := fmt.Sprintf("%s/search?q=%s", c.apiURL, url.QueryEscape(q))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create genius request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", "lyricfill/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("genius search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("genius search returned %d: %s", resp.StatusCode, body)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode genius response: %w", err)
	}

	return searchResp.Response.Hits, nil
}

// pickHit chooses the best search hit: a song whose title is not an
// excluded cut, preferring an exact artist match over the first acceptable
// hit. Returns nil when nothing qualifies.
func pickHit(hits []hit, artist string) *hit {
	var first *hit
	for i := range hits {
		h := &hits[i]
		if h.Type != "song" {
			continue
		}
		if excludedTitlePattern.MatchString(h.Result.Title) {
			continue
		}
		if strings.EqualFold(h.Result.PrimaryArtist.Name, artist) {
			return h
		}
		if first == nil {
			first = h
		}
	}
	return first
}

func (c *Client) fetchLyrics(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create genius page request: %w", err)
	}
	req.Header.Set("User-Agent", "lyricfill/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("genius page request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("genius page returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse genius page: %w", err)
	}

	var parts []string
	doc.Find("div[data-lyrics-container='true']").Each(func(_ int, sel *goquery.Selection) {
		sel.Find("br").ReplaceWithHtml("\n")
		parts = append(parts, sel.Text())
	})
	if len(parts) == 0 {
		return "", nil
	}

	return stripSectionHeaders(strings.Join(parts, "\n")), nil
}

// stripSectionHeaders removes [Chorus]-style markers and collapses the
// blank lines they leave behind.
func stripSectionHeaders(text string) string {
	text = sectionHeaderPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\n\n", "\n")
	return strings.TrimSpace(text)
}

// Genius API response types

type searchResponse struct {
	Response struct {
		Hits []hit `json:"hits"`
	} `json:"response"`
}

type hit struct {
	Type   string     `json:"type"`
	Result songResult `json:"result"`
}

type songResult struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	FullTitle     string `json:"full_title"`
	URL           string `json:"url"`
	PrimaryArtist artist `json:"primary_artist"`
}

type artist struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/claimcheck/pkg/types"
)

// SearxBackend queries a self-hosted SearXNG instance via its JSON API.
type SearxBackend struct {
	Client *http.Client
	// BaseURL is the instance root (e.g. "https://searx.internal").
	BaseURL   string
	UserAgent string
}

// Name returns the backend identifier.
func (b *SearxBackend) Name() string { return "searx" }

// Search queries the SearXNG instance and returns hits.
func (b *SearxBackend) Search(ctx context.Context, query string, limit int) ([]types.RawHit, error) {
	if query == "" {
		return nil, fmt.Errorf("empty SearXNG query")
	}
	if b.BaseURL == "" {
		return nil, fmt.Errorf("SearXNG base URL not configured")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")

	endpoint := strings.TrimSuffix(b.BaseURL, "/") + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SearXNG request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SearXNG returned HTTP %d", resp.StatusCode)
	}

	var sr searxResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing SearXNG response: %w", err)
	}

	// SearXNG scores are unbounded; normalize against the best in the page.
	var maxScore float64
	for _, r := range sr.Results {
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}

	var hits []types.RawHit
	for _, r := range sr.Results {
		if len(hits) >= limit && limit > 0 {
			break
		}
		if r.URL == "" {
			continue
		}
		h := types.RawHit{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Content,
			Engine:  "searx",
		}
		if maxScore > 0 {
			h.Score = r.Score / maxScore
		}
		if t, parseErr := time.Parse("2006-01-02T15:04:05", r.PublishedDate); parseErr == nil {
			h.Published = t
		}
		hits = append(hits, h)
	}
	return hits, nil
}

// SearXNG JSON structures.
type searxResponse struct {
	Results []searxResult `json:"results"`
}

type searxResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"publishedDate"`
}

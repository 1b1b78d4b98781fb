// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/claimcheck/pkg/types"
)

// braveAPIBase is the Brave Web Search endpoint. Declared as a var so
// tests can substitute an httptest server.
var braveAPIBase = "https://api.search.brave.com/res/v1/web/search"

// BraveBackend queries the Brave Search API.
type BraveBackend struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// Name returns the backend identifier.
func (b *BraveBackend) Name() string { return "brave" }

// Search queries the Brave Search API and returns hits.
func (b *BraveBackend) Search(ctx context.Context, query string, limit int) ([]types.RawHit, error) {
	if query == "" {
		return nil, fmt.Errorf("empty Brave query")
	}
	if limit <= 0 || limit > 20 {
		limit = 20
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", fmt.Sprintf("%d", limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, braveAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-Subscription-Token", b.APIKey)
	req.Header.Set("Accept", "application/json")
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Brave API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Brave API returned HTTP %d", resp.StatusCode)
	}

	var br braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&br); err != nil {
		return nil, fmt.Errorf("parsing Brave response: %w", err)
	}

	total := len(br.Web.Results)
	var hits []types.RawHit
	for i, r := range br.Web.Results {
		if r.URL == "" {
			continue
		}
		h := types.RawHit{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Description,
			Engine:  "brave",
		}
		if t, parseErr := time.Parse(time.RFC3339, r.PageAge); parseErr == nil {
			h.Published = t
		}
		// Position-based score: Brave returns results ranked but unscored.
		if total > 1 {
			h.Score = 1.0 - float64(i)/float64(total-1)*0.9
		} else {
			h.Score = 1.0
		}
		hits = append(hits, h)
	}
	return hits, nil
}

// Brave API JSON structures.
type braveResponse struct {
	Web braveWeb `json:"web"`
}

type braveWeb struct {
	Results []braveResult `json:"results"`
}

type braveResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	PageAge     string `json:"page_age"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/claimcheck/pkg/types"
)

// wikiAPIBase is the MediaWiki search endpoint. Declared as a var so tests
// can substitute an httptest server.
var wikiAPIBase = "https://en.wikipedia.org/w/api.php"

// wikiArticleBase is the prefix for article URLs built from page titles.
var wikiArticleBase = "https://en.wikipedia.org/wiki/"

// searchMatchRe strips the highlight markup MediaWiki embeds in snippets.
var searchMatchRe = regexp.MustCompile(`</?span[^>]*>`)

// WikipediaBackend queries the MediaWiki search API. It needs no
// credentials and serves as the always-available backend.
type WikipediaBackend struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the backend identifier.
func (b *WikipediaBackend) Name() string { return "wikipedia" }

// Search queries the MediaWiki API and returns hits.
func (b *WikipediaBackend) Search(ctx context.Context, query string, limit int) ([]types.RawHit, error) {
	if query == "" {
		return nil, fmt.Errorf("empty Wikipedia query")
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", fmt.Sprintf("%d", limit))
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wikiAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Wikipedia API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Wikipedia API returned HTTP %d", resp.StatusCode)
	}

	var wr wikiResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("parsing Wikipedia response: %w", err)
	}

	total := len(wr.Query.Search)
	var hits []types.RawHit
	for i, r := range wr.Query.Search {
		if r.Title == "" {
			continue
		}
		h := types.RawHit{
			Title:   r.Title,
			URL:     wikiArticleBase + url.PathEscape(strings.ReplaceAll(r.Title, " ", "_")),
			Snippet: searchMatchRe.ReplaceAllString(r.Snippet, ""),
			Engine:  "wikipedia",
		}
		if t, parseErr := time.Parse(time.RFC3339, r.Timestamp); parseErr == nil {
			h.Published = t
		}
		if total > 1 {
			h.Score = 1.0 - float64(i)/float64(total-1)*0.9
		} else {
			h.Score = 1.0
		}
		hits = append(hits, h)
	}
	return hits, nil
}

// MediaWiki API JSON structures.
type wikiResponse struct {
	Query wikiQuery `json:"query"`
}

type wikiQuery struct {
	Search []wikiSearchResult `json:"search"`
}

type wikiSearchResult struct {
	Title     string `json:"title"`
	Snippet   string `json:"snippet"`
	Timestamp string `json:"timestamp"`
}

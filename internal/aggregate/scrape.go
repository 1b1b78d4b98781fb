// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/claimcheck/internal/httputil"
	"github.com/pdiddy/claimcheck/pkg/types"
)

// scrapeBase is the DuckDuckGo HTML endpoint. Declared as a var so tests
// can substitute an httptest server.
var scrapeBase = "https://html.duckduckgo.com/html/"

// ScrapeBackend parses the DuckDuckGo HTML results page. It is the
// supplementary backend: only consulted when the primary API backends
// leave the aggregator short of its target count.
type ScrapeBackend struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the backend identifier.
func (b *ScrapeBackend) Name() string { return "ddg_scrape" }

// Search fetches and scrapes one results page.
func (b *ScrapeBackend) Search(ctx context.Context, query string, limit int) ([]types.RawHit, error) {
	if query == "" {
		return nil, fmt.Errorf("empty scrape query")
	}
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("q", query)

	body, _, err := httputil.GetBody(ctx, b.Client, scrapeBase+"?"+params.Encode(), b.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("scrape request: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}

	var hits []types.RawHit
	doc.Find(".result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(hits) >= limit {
			return false
		}
		link := sel.Find(".result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		target := decodeRedirect(href)
		if target == "" {
			return true
		}
		hits = append(hits, types.RawHit{
			Title:   strings.TrimSpace(link.Text()),
			URL:     target,
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").Text()),
			Engine:  "ddg_scrape",
		})
		return true
	})
	return hits, nil
}

// decodeRedirect unwraps DuckDuckGo's /l/?uddg=<encoded> redirect links.
// Plain links are returned as-is.
func decodeRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return href
	}
	// Relative link within the results page, not a hit.
	return ""
}

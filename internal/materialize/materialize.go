// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package materialize turns aggregator hits into full ResearchSource
// records: fetch the page, extract readable text, classify the source, and
// keep the content cache warm.
// Implements: prd010-research (R4);
//
//	docs/ARCHITECTURE § Materialization.
package materialize

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/claimcheck/internal/cache"
	"github.com/pdiddy/claimcheck/internal/httputil"
	"github.com/pdiddy/claimcheck/pkg/types"
)

// batchSize is how many pages are fetched concurrently. Batches run
// sequentially so a slow site cannot monopolize the run.
const batchSize = 5

// defaultPageTimeout bounds one page fetch when the config leaves it unset.
const defaultPageTimeout = 12 * time.Second

// Page is the render result returned by the page-fetch collaborator.
type Page struct {
	HTML     string
	FinalURL string
	Title    string
}

// Fetcher is the external page-rendering collaborator. Implementations may
// run a sandboxed browsing context. A nil Fetcher, an error, or a nil Page
// all route the URL to the plain-HTTP fallback.
type Fetcher interface {
	FetchPage(ctx context.Context, url string, timeout time.Duration, render bool) (*Page, error)
}

// Materializer fetches and caches readable source content.
type Materializer struct {
	Fetcher Fetcher // optional; plain HTTP is the fallback
	Cache   cache.Store
	Client  *http.Client
	Config  types.FetchConfig
	Log     *zap.Logger
}

// Materialize resolves each URL into a ResearchSource, preserving input
// order. A URL that cannot be materialized by any path is dropped; the
// batch never fails as a whole.
func (m *Materializer) Materialize(ctx context.Context, urls []string, hints map[string]types.RawHit) []types.ResearchSource {
	log := m.Log
	if log == nil {
		log = zap.NewNop()
	}

	results := make([]*types.ResearchSource, len(urls))

	for start := 0; start < len(urls); start += batchSize {
		end := start + batchSize
		if end > len(urls) {
			end = len(urls)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				src := m.materializeOne(gctx, urls[i], hints)
				results[i] = src
				return nil // failures drop the URL, never the batch
			})
		}
		g.Wait()
	}

	var sources []types.ResearchSource
	for i, src := range results {
		if src == nil {
			log.Debug("dropped unmaterializable url", zap.String("url", urls[i]))
			continue
		}
		sources = append(sources, *src)
	}
	return sources
}

func (m *Materializer) materializeOne(ctx context.Context, url string, hints map[string]types.RawHit) *types.ResearchSource {
	hint, hasHint := hints[url]

	if m.Cache != nil {
		if src, ok := m.Cache.Get(url); ok {
			if hasHint {
				refresh(src, hint)
			}
			return src
		}
	}

	page := m.renderPage(ctx, url)
	var title, text string
	if page != nil {
		title, text = ExtractReadable(page.HTML)
	}
	// The collaborator failing or rendering nothing readable both fall
	// back to a plain fetch of the original URL.
	if text == "" {
		if page = m.plainPage(ctx, url); page == nil {
			return nil
		}
		title, text = ExtractReadable(page.HTML)
		if text == "" {
			return nil
		}
	}
	if title == "" {
		title = page.Title
	}
	if title == "" && hasHint {
		title = hint.Title
	}

	finalURL := httputil.Canonicalize(page.FinalURL)
	domain := httputil.Domain(finalURL)

	src := &types.ResearchSource{
		URL:      finalURL,
		Title:    title,
		FullText: text,
		Domain:   domain,
		Type:     Classify(domain, title),
	}
	if hasHint {
		refresh(src, hint)
	}

	if m.Cache != nil {
		m.Cache.Put(finalURL, src)
		if orig := httputil.Canonicalize(url); orig != finalURL {
			m.Cache.Put(orig, src)
		}
	}
	return src
}

// renderPage asks the collaborator for the page. Nil when no collaborator
// is configured or it produced nothing usable.
func (m *Materializer) renderPage(ctx context.Context, url string) *Page {
	if m.Fetcher == nil {
		return nil
	}
	page, err := m.Fetcher.FetchPage(ctx, url, m.pageTimeout(), true)
	if err != nil || page == nil || page.HTML == "" {
		return nil
	}
	if page.FinalURL == "" {
		page.FinalURL = url
	}
	return page
}

// plainPage fetches the page over plain HTTP.
func (m *Materializer) plainPage(ctx context.Context, url string) *Page {
	fctx, cancel := context.WithTimeout(ctx, m.pageTimeout())
	defer cancel()

	body, finalURL, err := httputil.GetBody(fctx, m.Client, url, m.Config.UserAgent)
	if err != nil {
		return nil
	}
	return &Page{HTML: string(body), FinalURL: finalURL}
}

func (m *Materializer) pageTimeout() time.Duration {
	if m.Config.PageTimeout > 0 {
		return m.Config.PageTimeout
	}
	return defaultPageTimeout
}

// refresh merges the latest aggregator metadata into a source. Cached
// content stays; snippet, score, engine, and timestamp may be newer.
func refresh(src *types.ResearchSource, hint types.RawHit) {
	if hint.Snippet != "" {
		src.Snippet = hint.Snippet
	}
	if hint.Score > 0 {
		src.EngineScore = hint.Score
	}
	if hint.Engine != "" {
		src.Engine = hint.Engine
	}
	if !hint.Published.IsZero() {
		src.Published = hint.Published
	}
}

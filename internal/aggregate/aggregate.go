// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate queries web search backends and returns unified,
// deduplicated candidate hits for materialization.
// Implements: prd010-research (R1-R3);
//
//	docs/ARCHITECTURE § Source Aggregation.
package aggregate

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/claimcheck/internal/httputil"
	"github.com/pdiddy/claimcheck/internal/textutil"
	"github.com/pdiddy/claimcheck/pkg/types"
)

// Backend searches a single engine. Each backend (Brave, SearXNG,
// Wikipedia) implements this interface per the Strategy pattern.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]types.RawHit, error)
}

// Output holds the aggregated hits and dedup statistics.
type Output struct {
	Hits          []types.RawHit
	DupsRemoved   int
	BackendErrors []string
}

// recentWindow is the published-date window that earns a rerank bonus.
const recentWindow = 7 * 24 * time.Hour

// Aggregate fans the query out to all primary backends concurrently. Each
// backend failure is recorded and contributes zero hits; no failure
// propagates. Hits are deduplicated by canonical URL in backend-priority
// order, keeping first-seen metadata. When the unique-URL count falls short
// of count and a supplement backend is configured, one supplementary call
// merges additional unique URLs. A cheap heuristic rerank orders the final
// list.
func Aggregate(ctx context.Context, query string, count int, backends []Backend, supplement Backend, preferred string, log *zap.Logger) Output {
	if count <= 0 {
		count = 20
	}
	if log == nil {
		log = zap.NewNop()
	}

	perBackend := make([][]types.RawHit, len(backends))
	errs := make([]string, len(backends))

	var wg sync.WaitGroup
	for i, b := range backends {
		wg.Add(1)
		go func(i int, b Backend) {
			defer wg.Done()
			hits, err := b.Search(ctx, query, count)
			if err != nil {
				errs[i] = b.Name() + ": " + err.Error()
				log.Warn("search backend failed", zap.String("backend", b.Name()), zap.Error(err))
				return
			}
			perBackend[i] = hits
		}(i, b)
	}
	wg.Wait()

	var out Output
	for _, e := range errs {
		if e != "" {
			out.BackendErrors = append(out.BackendErrors, e)
		}
	}

	// Dedup in backend-priority order so results are deterministic
	// regardless of which goroutine finished first.
	seen := make(map[string]bool)
	for _, hits := range perBackend {
		for _, h := range hits {
			key := httputil.Canonicalize(h.URL)
			if key == "" || seen[key] {
				out.DupsRemoved++
				continue
			}
			seen[key] = true
			out.Hits = append(out.Hits, h)
		}
	}

	// Thin primary set: one supplementary scrape-style call.
	if len(out.Hits) < count && supplement != nil {
		extra, err := supplement.Search(ctx, query, count-len(out.Hits))
		if err != nil {
			out.BackendErrors = append(out.BackendErrors, supplement.Name()+": "+err.Error())
			log.Warn("supplementary backend failed", zap.String("backend", supplement.Name()), zap.Error(err))
		}
		for _, h := range extra {
			if len(out.Hits) >= count {
				break
			}
			key := httputil.Canonicalize(h.URL)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out.Hits = append(out.Hits, h)
		}
	}

	rerank(out.Hits, query, preferred)
	return out
}

// rerank stable-sorts hits by a cheap heuristic: query terms in the title
// or snippet, recent publication, and a preferred-backend tag.
func rerank(hits []types.RawHit, query, preferred string) {
	terms := textutil.UniqueTerms(textutil.Terms(query))
	now := time.Now()

	type scored struct {
		hit   types.RawHit
		score float64
	}
	ranked := make([]scored, len(hits))
	for i, h := range hits {
		ranked[i] = scored{hit: h, score: rerankScore(h, terms, preferred, now)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	for i := range ranked {
		hits[i] = ranked[i].hit
	}
}

func rerankScore(h types.RawHit, terms []string, preferred string, now time.Time) float64 {
	title := strings.ToLower(h.Title)
	snippet := strings.ToLower(h.Snippet)

	var score float64
	for _, t := range terms {
		if textutil.ContainsTerm(title, t) {
			score += 2
		}
		if textutil.ContainsTerm(snippet, t) {
			score++
		}
	}
	if !h.Published.IsZero() && now.Sub(h.Published) < recentWindow {
		score += 1.5
	}
	if preferred != "" && h.Engine == preferred {
		score++
	}
	return score + h.Score
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research orchestrates the pipeline: aggregate search hits,
// materialize readable content, rank and diversify, detect contradictions,
// synthesize a cited summary, and verify it. Every stage degrades
// gracefully; the only error a run can return is an empty query.
// Implements: prd010-research (R1-R8);
//
//	docs/ARCHITECTURE § Pipeline.
package research

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/claimcheck/internal/aggregate"
	"github.com/pdiddy/claimcheck/internal/cache"
	"github.com/pdiddy/claimcheck/internal/contradict"
	"github.com/pdiddy/claimcheck/internal/materialize"
	"github.com/pdiddy/claimcheck/internal/rank"
	"github.com/pdiddy/claimcheck/internal/synthesize"
	"github.com/pdiddy/claimcheck/internal/verify"
	"github.com/pdiddy/claimcheck/pkg/types"
)

// ErrEmptyQuery is the only error Research returns; everything downstream
// degrades to a smaller result instead of failing.
var ErrEmptyQuery = errors.New("empty query")

// globalRegion is the region value that leaves the query untouched.
const globalRegion = "global"

// Engine runs the research pipeline. Construct with New, or assemble the
// fields directly in tests.
type Engine struct {
	Backends     []aggregate.Backend
	Supplement   aggregate.Backend
	Preferred    string
	MaxResults   int
	Materializer *materialize.Materializer
	Lexicons     []contradict.PolarityLexicon // nil selects the defaults
	Log          *zap.Logger
}

// New wires an Engine from configuration: enabled search backends, an HTTP
// client shared across stages, and the given content cache.
func New(cfg types.PipelineConfig, store cache.Store, fetcher materialize.Fetcher, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	client := &http.Client{Timeout: cfg.Search.Timeout}
	primaries, supplement := aggregate.Enabled(cfg.Search, client)

	return &Engine{
		Backends:   primaries,
		Supplement: supplement,
		Preferred:  cfg.Search.PreferredEngine,
		MaxResults: cfg.Search.MaxResults,
		Materializer: &materialize.Materializer{
			Fetcher: fetcher,
			Cache:   store,
			Client:  client,
			Config:  cfg.Fetch,
			Log:     log,
		},
		Log: log,
	}
}

// Research runs the full pipeline for one query. A region option other
// than "global" is appended to the search text but the reported query stays
// as given. No backend, fetch, or synthesis failure surfaces as an error:
// the result just shrinks, down to a placeholder for zero sources.
func (e *Engine) Research(ctx context.Context, query string, opts types.ResearchOptions) (*types.ResearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	opts = opts.Normalize()
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}

	searchText := query
	if opts.Region != "" && !strings.EqualFold(opts.Region, globalRegion) {
		searchText = query + " " + opts.Region
	}

	agg := aggregate.Aggregate(ctx, searchText, e.MaxResults, e.Backends, e.Supplement, e.Preferred, log)
	if len(agg.BackendErrors) > 0 {
		log.Debug("backend errors tolerated", zap.Strings("errors", agg.BackendErrors))
	}

	urls := make([]string, 0, len(agg.Hits))
	hints := make(map[string]types.RawHit, len(agg.Hits))
	for _, hit := range agg.Hits {
		urls = append(urls, hit.URL)
		hints[hit.URL] = hit
	}

	sources := e.Materializer.Materialize(ctx, urls, hints)
	sources = rank.ScoreAll(sources, query, rank.Weights{
		Authority: opts.AuthorityWeight,
		Recency:   opts.RecencyWeight,
	})
	sources = rank.Diversify(sources, opts.MaxSources)

	var contradictions []types.Contradiction
	if opts.IncludeCounterpoints {
		contradictions = contradict.Detect(sources, query, e.Lexicons)
	}

	syn := synthesize.Synthesize(query, sources)

	result := &types.ResearchResult{
		Query:          query,
		Sources:        sources,
		Summary:        syn.Summary,
		Citations:      syn.Citations,
		Confidence:     syn.Confidence,
		Contradictions: contradictions,
		Evidence:       syn.Evidence,
	}
	verification := verify.Verify(result)
	result.Verification = &verification

	log.Info("research complete",
		zap.String("query", query),
		zap.Int("sources", len(sources)),
		zap.Float64("confidence", result.Confidence),
		zap.Int("contradictions", len(contradictions)))
	return result, nil
}

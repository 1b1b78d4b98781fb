// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/claimcheck/internal/textutil"
	"github.com/pdiddy/claimcheck/pkg/types"
)

const (
	// crossCheckBatch claims are checked concurrently; batches run
	// sequentially.
	crossCheckBatch = 3

	// supportThreshold is the claim-term overlap fraction above which a
	// source counts as supporting.
	supportThreshold = 0.5

	// minVerifiedSupport: a claim needs this many supporting sources to
	// verify, unless nothing disputes it.
	minVerifiedSupport = 2

	// verdictFloor is the minimum confidence when any sources were found.
	verdictFloor = 0.3

	// claimTermMinLen mirrors the contradiction detector: terms this
	// short are too generic to measure overlap with.
	claimTermMinLen = 3
)

var timeNow = time.Now

// Researcher runs the research pipeline for a claim used as a query.
type Researcher interface {
	Research(ctx context.Context, query string, opts types.ResearchOptions) (*types.ResearchResult, error)
}

// Checker cross-checks document claims against the research pipeline.
type Checker struct {
	Researcher Researcher
	Options    types.ResearchOptions
	Log        *zap.Logger
}

// CrossCheckAll populates verdicts for every claim, in place, and returns
// the audit trail. Claims are checked in concurrent batches; a failed
// check degrades that claim to unverified rather than failing the batch.
func (c *Checker) CrossCheckAll(ctx context.Context, claims []types.DocumentClaim) []types.AuditTrailEntry {
	for start := 0; start < len(claims); start += crossCheckBatch {
		end := start + crossCheckBatch
		if end > len(claims) {
			end = len(claims)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				claims[i].Verdict = c.CrossCheck(gctx, claims[i].Text)
				return nil
			})
		}
		g.Wait()
	}

	trail := make([]types.AuditTrailEntry, 0, len(claims))
	for _, claim := range claims {
		supporting, disputing := tally(claim.Verdict.Sources)
		trail = append(trail, types.AuditTrailEntry{
			ClaimID:    claim.ID,
			Status:     claim.Verdict.Status,
			Supporting: supporting,
			Disputing:  disputing,
			Confidence: claim.Verdict.Confidence,
			CheckedAt:  timeNow(),
		})
	}
	return trail
}

// CrossCheck researches one claim and grades each returned source by how
// much of the claim's vocabulary it covers. Any failure yields an
// unverified verdict with no sources.
func (c *Checker) CrossCheck(ctx context.Context, claimText string) *types.ClaimVerdict {
	result, err := c.Researcher.Research(ctx, claimText, c.Options)
	if err != nil {
		if c.Log != nil {
			c.Log.Warn("claim cross-check failed",
				zap.String("claim", claimText), zap.Error(err))
		}
		return &types.ClaimVerdict{Status: types.ClaimUnverified}
	}

	claimTerms := textutil.UniqueTerms(textutil.ContentTerms(claimText, claimTermMinLen))

	sources := make([]types.ClaimSource, 0, len(result.Sources))
	for _, src := range result.Sources {
		overlap := overlapRatio(claimTerms, src.FullText)
		sources = append(sources, types.ClaimSource{
			URL:      src.URL,
			Title:    src.Title,
			Supports: overlap > supportThreshold,
			Overlap:  overlap,
		})
	}

	return verdict(sources)
}

// verdict derives status and confidence from graded sources.
func verdict(sources []types.ClaimSource) *types.ClaimVerdict {
	supporting, disputing := tally(sources)

	status := types.ClaimUnverified
	switch {
	case supporting > disputing &&
		(supporting >= minVerifiedSupport || disputing == 0):
		status = types.ClaimVerified
	case disputing > supporting:
		status = types.ClaimDisputed
	}

	confidence := 0.0
	if len(sources) > 0 {
		confidence = dominantConfidence(sources, supporting >= disputing)
		if confidence < verdictFloor {
			confidence = verdictFloor
		}
	}

	return &types.ClaimVerdict{
		Status:     status,
		Sources:    sources,
		Confidence: textutil.Clamp01(confidence),
	}
}

func tally(sources []types.ClaimSource) (supporting, disputing int) {
	for _, s := range sources {
		if s.Supports {
			supporting++
		} else {
			disputing++
		}
	}
	return supporting, disputing
}

// dominantConfidence is the mean overlap of whichever group won. Term
// overlap stands in for per-source confidence: a ClaimSource carries no
// confidence of its own, so how much of the claim a source echoes is the
// best available proxy.
func dominantConfidence(sources []types.ClaimSource, supportsWon bool) float64 {
	var sum float64
	var n int
	for _, s := range sources {
		if s.Supports != supportsWon {
			continue
		}
		sum += s.Overlap
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// overlapRatio is the fraction of claim terms present in the body.
func overlapRatio(claimTerms []string, body string) float64 {
	if len(claimTerms) == 0 {
		return 0
	}
	lowered := strings.ToLower(body)
	hits := 0
	for _, term := range claimTerms {
		if textutil.ContainsTerm(lowered, term) {
			hits++
		}
	}
	return float64(hits) / float64(len(claimTerms))
}

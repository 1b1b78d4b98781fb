// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank scores sources against the query and rebalances the ranked
// list so no single source type dominates.
// Implements: prd010-research (R5);
//
//	docs/ARCHITECTURE § Ranking.
package rank

import (
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/claimcheck/internal/textutil"
	"github.com/pdiddy/claimcheck/pkg/types"
)

const (
	// titleTermBonus and bodyTermBonus reward query terms found in the
	// source.
	titleTermBonus = 5.0
	bodyTermBonus  = 1.0

	// engineScoreFactor carries the upstream backend's own estimate.
	engineScoreFactor = 10.0

	// thinBodyPenalty punishes sources with almost no extracted text.
	thinBodyPenalty = 5.0
	thinBodyChars   = 100

	// recencyBonusMax decays linearly to zero over recencyHorizon.
	recencyBonusMax = 5.0
	recencyHorizon  = 90 * 24 * time.Hour

	// MaxSelected caps the diversified list.
	MaxSelected = 12

	// DiversifyRatio bounds any one source type to ceil(total/ratio)
	// entries. Tuned, not principled; kept for compatibility.
	DiversifyRatio = 3

	// diversityFloor lets the first few picks through regardless of type
	// so small result sets are not starved.
	diversityFloor = 5
)

// typeBonus is the authority bonus per source type, before weighting.
var typeBonus = map[types.SourceType]float64{
	types.SourceAcademic:      10,
	types.SourceDocumentation: 8,
	types.SourceNews:          5,
	types.SourceForum:         0,
	types.SourceOther:         0,
}

// Weights scales the authority and recency components of the score.
type Weights struct {
	Authority float64
	Recency   float64
}

// Score computes the query-relative relevance of a source: term overlap in
// title and body, weighted type authority, weighted recency decay, and the
// upstream engine score. Thin bodies are penalized. Never negative.
func Score(src types.ResearchSource, queryTerms []string, w Weights) float64 {
	title := strings.ToLower(src.Title)
	body := strings.ToLower(src.FullText)

	var score float64
	for _, term := range queryTerms {
		if textutil.ContainsTerm(title, term) {
			score += titleTermBonus
		}
		if textutil.ContainsTerm(body, term) {
			score += bodyTermBonus
		}
	}

	score += typeBonus[src.Type] * textutil.Clamp01(w.Authority)

	if !src.Published.IsZero() {
		age := time.Since(src.Published)
		if age >= 0 && age < recencyHorizon {
			decay := 1 - float64(age)/float64(recencyHorizon)
			score += recencyBonusMax * decay * textutil.Clamp01(w.Recency)
		}
	}

	if src.EngineScore > 0 {
		score += src.EngineScore * engineScoreFactor
	}

	if len(src.FullText) < thinBodyChars {
		score -= thinBodyPenalty
	}

	if score < 0 {
		return 0
	}
	return score
}

// ScoreAll assigns a relevance score to every source in place and returns
// the slice sorted descending by score (stable).
func ScoreAll(sources []types.ResearchSource, query string, w Weights) []types.ResearchSource {
	terms := textutil.UniqueTerms(textutil.Terms(query))
	for i := range sources {
		sources[i].RelevanceScore = Score(sources[i], terms, w)
	}
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].RelevanceScore > sources[j].RelevanceScore
	})
	return sources
}

// Diversify rebalances a score-sorted list: at most max entries (default
// 12), no source type over ceil(total/DiversifyRatio) during selection,
// except that the first diversityFloor picks pass regardless of type.
// Leftover slots are filled by next-highest score regardless of type.
func Diversify(sources []types.ResearchSource, max int) []types.ResearchSource {
	if max <= 0 || max > MaxSelected {
		max = MaxSelected
	}
	total := len(sources)
	if total > max {
		total = max
	}
	if total == 0 {
		return nil
	}

	perType := (total + DiversifyRatio - 1) / DiversifyRatio

	selected := make([]types.ResearchSource, 0, total)
	used := make([]bool, len(sources))
	counts := make(map[types.SourceType]int)

	for i, src := range sources {
		if len(selected) >= total {
			break
		}
		if len(selected) >= diversityFloor && counts[src.Type] >= perType {
			continue
		}
		selected = append(selected, src)
		counts[src.Type]++
		used[i] = true
	}

	// Fill remaining slots by score, ignoring the type cap.
	for i, src := range sources {
		if len(selected) >= total {
			break
		}
		if used[i] {
			continue
		}
		selected = append(selected, src)
	}

	return selected
}

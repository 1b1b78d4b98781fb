// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the claimcheck pipeline.
// Implements: prd010-research (RawHit, ResearchSource, R1.1-R1.4);
//
//	prd011-synthesis (Citation, Evidence, ResearchResult);
//	prd012-verification (VerificationResult);
//	prd013-document (DocumentSection, DocumentClaim).
//
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

import "time"

// SourceType categorizes a research source by publisher class. The scorer
// assigns an authority bonus per type and the diversifier balances the
// final list across types.
type SourceType string

const (
	SourceNews          SourceType = "news"
	SourceAcademic      SourceType = "academic"
	SourceDocumentation SourceType = "documentation"
	SourceForum         SourceType = "forum"
	SourceOther         SourceType = "other"
)

// RawHit is a candidate result returned by a single search backend. Hits
// are ephemeral: the aggregator deduplicates them and the materializer
// consumes them immediately to produce ResearchSources.
type RawHit struct {
	// Title is the result title as returned by the backend.
	Title string `json:"title" yaml:"title"`

	// URL is the result URL as returned by the backend (not yet canonical).
	URL string `json:"url" yaml:"url"`

	// Snippet is the backend-provided excerpt, if any.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// Engine identifies which backend found this hit (e.g. "brave", "searx").
	Engine string `json:"engine" yaml:"engine"`

	// Score is the backend's own relevance estimate, normalized to [0,1]
	// when the backend provides one, zero otherwise.
	Score float64 `json:"score" yaml:"score"`

	// Published is the publication date hint, zero when unknown.
	Published time.Time `json:"published,omitempty" yaml:"published,omitempty"`
}

// ResearchSource is a fully materialized source: a fetched, readable
// document contributing to an answer. RelevanceScore is assigned exactly
// once by the scorer after creation; all other fields are set by the
// materializer and not mutated afterwards.
type ResearchSource struct {
	// URL is the canonical URL the content was fetched from.
	URL string `json:"url" yaml:"url"`

	// Title is the page title, falling back to the backend-provided title.
	Title string `json:"title" yaml:"title"`

	// FullText is the readable text extracted from the page.
	FullText string `json:"full_text" yaml:"full_text"`

	// Snippet is the short excerpt shown alongside the source.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// Domain is the registrable host of the canonical URL.
	Domain string `json:"domain" yaml:"domain"`

	// Published is the publication date when known, zero otherwise.
	Published time.Time `json:"published,omitempty" yaml:"published,omitempty"`

	// RelevanceScore is the query-relative relevance assigned by the scorer.
	// Always >= 0.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// Type is the publisher class inferred from domain and title heuristics.
	Type SourceType `json:"type" yaml:"type"`

	// EngineScore is the upstream backend score carried over from the RawHit.
	EngineScore float64 `json:"engine_score,omitempty" yaml:"engine_score,omitempty"`

	// Engine identifies the backend that discovered this source.
	Engine string `json:"engine,omitempty" yaml:"engine,omitempty"`
}

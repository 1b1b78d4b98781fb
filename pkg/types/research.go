// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Citation links one summary sentence to the source and quote supporting it.
// Per prd011-synthesis R2.1-R2.4.
type Citation struct {
	// Index is the 1-based bracket number used in the summary, sequential
	// with no gaps.
	Index int `json:"index" yaml:"index"`

	// SourceIndex is the 0-based index into ResearchResult.Sources.
	SourceIndex int `json:"source_index" yaml:"source_index"`

	// Quote is the sentence extracted from the source.
	Quote string `json:"quote" yaml:"quote"`

	// Confidence is the normalized relevance of the quoted source, in [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// ContradictionSeverity grades how strongly two sources disagree.
type ContradictionSeverity string

const (
	SeverityMinor ContradictionSeverity = "minor"
	SeverityMajor ContradictionSeverity = "major"
)

// Contradiction records a detected disagreement between two sources that
// discuss the same topical terms with opposing polarity cues.
type Contradiction struct {
	// SharedTerms are the query terms both sources discuss.
	SharedTerms []string `json:"shared_terms" yaml:"shared_terms"`

	// SourceA and SourceB are 0-based indexes into ResearchResult.Sources.
	SourceA int `json:"source_a" yaml:"source_a"`
	SourceB int `json:"source_b" yaml:"source_b"`

	// Disagreement is the cumulative polarity severity score for the pair.
	Disagreement int `json:"disagreement" yaml:"disagreement"`

	// Severity is major when Disagreement exceeds the major threshold.
	Severity ContradictionSeverity `json:"severity" yaml:"severity"`

	// Summary is a short human-readable description of the conflict.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// EvidenceImportance tiers an evidence quote by query-term overlap.
type EvidenceImportance string

const (
	ImportanceLow    EvidenceImportance = "low"
	ImportanceMedium EvidenceImportance = "medium"
	ImportanceHigh   EvidenceImportance = "high"
)

// Evidence is a quote plus a deep link anchoring it to its exact location
// in the source, using a text-fragment URL anchor.
type Evidence struct {
	// ID is a stable identifier within the result (e.g. "ev-3").
	ID string `json:"id" yaml:"id"`

	// SourceIndex is the 0-based index into ResearchResult.Sources.
	SourceIndex int `json:"source_index" yaml:"source_index"`

	// Quote is the extracted sentence.
	Quote string `json:"quote" yaml:"quote"`

	// Context is the text surrounding the quote in the source.
	Context string `json:"context,omitempty" yaml:"context,omitempty"`

	// Importance tiers the quote by how many query terms it covers.
	Importance EvidenceImportance `json:"importance" yaml:"importance"`

	// FragmentURL is the source URL with a #:~:text= anchor encoding the
	// quote boundaries.
	FragmentURL string `json:"fragment_url" yaml:"fragment_url"`
}

// UngroundedClaim is a factual-marker sentence in the summary that carries
// no citation.
type UngroundedClaim struct {
	// Text is the uncited sentence.
	Text string `json:"text" yaml:"text"`

	// Position is the sentence's ordinal position within the summary.
	Position int `json:"position" yaml:"position"`

	// Severity reflects claim specificity: sentences with numbers or
	// multiple proper nouns are graded higher.
	Severity string `json:"severity" yaml:"severity"`
}

// VerificationResult quantifies how well a synthesized summary is grounded
// in its cited sources. Per prd012-verification R1-R4.
type VerificationResult struct {
	// Verified is true when citation coverage clears the threshold and
	// hallucination risk is low.
	Verified bool `json:"verified" yaml:"verified"`

	// ClaimDensity is the count of factual-marker sentences per 100 words
	// of summary.
	ClaimDensity float64 `json:"claim_density" yaml:"claim_density"`

	// CitationCoverage is the percentage of factual-marker sentences that
	// carry a citation.
	CitationCoverage float64 `json:"citation_coverage" yaml:"citation_coverage"`

	// UngroundedClaims lists factual sentences lacking any citation.
	UngroundedClaims []UngroundedClaim `json:"ungrounded_claims,omitempty" yaml:"ungrounded_claims,omitempty"`

	// HallucinationRisk estimates how much of the summary lacks grounding,
	// in [0,1]. Higher disagreement or lower coverage raises it.
	HallucinationRisk float64 `json:"hallucination_risk" yaml:"hallucination_risk"`

	// Suggestions are short remediation hints.
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// ResearchResult is the outcome of one pipeline run. It is created fresh
// per query and not mutated after return, except by explicit re-verification.
type ResearchResult struct {
	// Query is the original query text, before any region suffix.
	Query string `json:"query" yaml:"query"`

	// Sources are the diversified, relevance-ranked sources used for
	// synthesis. Citation and Evidence source indexes point into this slice.
	Sources []ResearchSource `json:"sources" yaml:"sources"`

	// Summary is the bracket-numbered cited summary.
	Summary string `json:"summary" yaml:"summary"`

	// Citations link summary sentences to sources.
	Citations []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`

	// Confidence is the aggregate confidence in [0,1]. Non-empty result
	// sets are floored at 0.3.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Contradictions are cross-source disagreements, present only when
	// counterpoint detection was requested.
	Contradictions []Contradiction `json:"contradictions,omitempty" yaml:"contradictions,omitempty"`

	// Verification grades the summary's grounding.
	Verification *VerificationResult `json:"verification,omitempty" yaml:"verification,omitempty"`

	// Evidence holds quote-anchored deep links into the sources.
	Evidence []Evidence `json:"evidence,omitempty" yaml:"evidence,omitempty"`
}

// ResearchOptions tunes a single pipeline run. The zero value is usable;
// Normalize fills defaults.
type ResearchOptions struct {
	// MaxSources caps the diversified source list (default 12).
	MaxSources int `json:"max_sources" yaml:"max_sources"`

	// IncludeCounterpoints enables contradiction detection.
	IncludeCounterpoints bool `json:"include_counterpoints" yaml:"include_counterpoints"`

	// Region is appended to the query text when not "" or "global".
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// RecencyWeight scales the recency bonus, in [0,1] (default 0.5).
	RecencyWeight float64 `json:"recency_weight" yaml:"recency_weight"`

	// AuthorityWeight scales the source-type bonus, in [0,1] (default 0.5).
	AuthorityWeight float64 `json:"authority_weight" yaml:"authority_weight"`
}

// DefaultOptions returns the standard options: 12 sources, both scoring
// weights at 0.5.
func DefaultOptions() ResearchOptions {
	return ResearchOptions{
		MaxSources:      12,
		RecencyWeight:   0.5,
		AuthorityWeight: 0.5,
	}
}

// Normalize returns a copy with MaxSources defaulted and weights clamped
// into [0,1]. An explicit zero weight is preserved (it disables that bonus).
func (o ResearchOptions) Normalize() ResearchOptions {
	if o.MaxSources <= 0 {
		o.MaxSources = 12
	}
	o.RecencyWeight = clamp01(o.RecencyWeight)
	o.AuthorityWeight = clamp01(o.AuthorityWeight)
	return o
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

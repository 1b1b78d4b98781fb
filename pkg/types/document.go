// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DocumentSection is a heading-delimited span of an ingested document.
type DocumentSection struct {
	// Title is the heading text, or "Introduction" for text before any
	// heading.
	Title string `json:"title" yaml:"title"`

	// Content is the accumulated body text of the section.
	Content string `json:"content" yaml:"content"`

	// Start and End are character offsets of the section within the
	// original document text.
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// EntityType categorizes a document entity by its surrounding context.
type EntityType string

const (
	EntityPerson       EntityType = "person"
	EntityOrganization EntityType = "organization"
	EntityLocation     EntityType = "location"
	EntityDate         EntityType = "date"
	EntityOther        EntityType = "other"
)

// DocumentEntity is a date or capitalized-token mention found in a document.
type DocumentEntity struct {
	// Text is the entity mention as it appears in the document.
	Text string `json:"text" yaml:"text"`

	// Type is inferred from keywords near the mention, defaulting to other.
	Type EntityType `json:"type" yaml:"type"`

	// Offset is the character position of the first occurrence.
	Offset int `json:"offset" yaml:"offset"`

	// Context is the text window surrounding the first occurrence.
	Context string `json:"context" yaml:"context"`

	// Mentions counts occurrences across the document.
	Mentions int `json:"mentions" yaml:"mentions"`
}

// TimelineEvent is a dated sentence extracted from a document.
type TimelineEvent struct {
	// Date is the detected date text (not parsed; documents mix formats).
	Date string `json:"date" yaml:"date"`

	// Sentence is the sentence containing the date.
	Sentence string `json:"sentence" yaml:"sentence"`

	// Confidence is a fixed moderate default for heuristic extraction.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// ClaimStatus is the verdict of a claim cross-check.
type ClaimStatus string

const (
	ClaimVerified   ClaimStatus = "verified"
	ClaimDisputed   ClaimStatus = "disputed"
	ClaimUnverified ClaimStatus = "unverified"
)

// ClaimSource records how one research source bears on a claim.
type ClaimSource struct {
	// URL and Title identify the source.
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title" yaml:"title"`

	// Supports is true when the source's term overlap with the claim
	// exceeds the support threshold.
	Supports bool `json:"supports" yaml:"supports"`

	// Overlap is the fraction of claim content-terms present in the source.
	Overlap float64 `json:"overlap" yaml:"overlap"`
}

// ClaimVerdict is the outcome of cross-checking one claim against the
// research pipeline.
type ClaimVerdict struct {
	// Status is verified, disputed, or unverified.
	Status ClaimStatus `json:"status" yaml:"status"`

	// Sources lists every source consulted, supporting or not.
	Sources []ClaimSource `json:"sources" yaml:"sources"`

	// Confidence is the mean confidence of the dominant group, floored at
	// 0.3 when any sources were found.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// DocumentClaim is a declarative, checkable sentence extracted from a
// document, optionally cross-checked against the research pipeline.
type DocumentClaim struct {
	// ID is a stable identifier within the document (e.g. "claim-4").
	ID string `json:"id" yaml:"id"`

	// Text is the claim sentence.
	Text string `json:"text" yaml:"text"`

	// Section is the title of the owning section, by offset containment.
	Section string `json:"section" yaml:"section"`

	// Offset is the character position of the sentence in the document.
	Offset int `json:"offset" yaml:"offset"`

	// Verdict is populated by cross-checking; nil until then.
	Verdict *ClaimVerdict `json:"verdict,omitempty" yaml:"verdict,omitempty"`
}

// FactHighlight marks a verified claim for display.
type FactHighlight struct {
	ClaimID    string  `json:"claim_id" yaml:"claim_id"`
	Text       string  `json:"text" yaml:"text"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// AssumptionHighlight flags a claim that is unverified, disputed, or weakly
// supported.
type AssumptionHighlight struct {
	ClaimID string `json:"claim_id" yaml:"claim_id"`
	Text    string `json:"text" yaml:"text"`

	// Severity escalates when more than one source disputes the claim or
	// confidence falls below 0.4.
	Severity string `json:"severity" yaml:"severity"`

	// Reason explains why the claim was flagged.
	Reason string `json:"reason" yaml:"reason"`
}

// AuditTrailEntry records one cross-check outcome for the document audit.
type AuditTrailEntry struct {
	ClaimID    string      `json:"claim_id" yaml:"claim_id"`
	Status     ClaimStatus `json:"status" yaml:"status"`
	Supporting int         `json:"supporting" yaml:"supporting"`
	Disputing  int         `json:"disputing" yaml:"disputing"`
	Confidence float64     `json:"confidence" yaml:"confidence"`
	CheckedAt  time.Time   `json:"checked_at" yaml:"checked_at"`
}

// DocumentAudit aggregates per-claim verdicts into document-level artifacts.
type DocumentAudit struct {
	Sections    []DocumentSection     `json:"sections" yaml:"sections"`
	Entities    []DocumentEntity      `json:"entities" yaml:"entities"`
	Timeline    []TimelineEvent       `json:"timeline" yaml:"timeline"`
	Claims      []DocumentClaim       `json:"claims" yaml:"claims"`
	Facts       []FactHighlight       `json:"facts,omitempty" yaml:"facts,omitempty"`
	Assumptions []AssumptionHighlight `json:"assumptions,omitempty" yaml:"assumptions,omitempty"`
	Trail       []AuditTrailEntry     `json:"trail,omitempty" yaml:"trail,omitempty"`

	// EntityClaims maps entity text to the IDs of claims mentioning it.
	EntityClaims map[string][]string `json:"entity_claims,omitempty" yaml:"entity_claims,omitempty"`
}

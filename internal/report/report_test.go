// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/claimcheck/pkg/types"
)

func TestResearchReport(t *testing.T) {
	result := &types.ResearchResult{
		Query:      "solar capacity growth",
		Summary:    "Solar capacity grew 30% in 2024. [1]",
		Confidence: 0.82,
		Sources: []types.ResearchSource{{
			URL:            "https://example.org/solar",
			Title:          "Solar Report",
			Domain:         "example.org",
			Type:           types.SourceNews,
			RelevanceScore: 24,
		}},
		Citations: []types.Citation{{
			Index:       1,
			SourceIndex: 0,
			Quote:       "Solar capacity grew 30% in 2024.",
			Confidence:  1.0,
		}},
		Contradictions: []types.Contradiction{{
			SourceA:      0,
			SourceB:      1,
			SharedTerms:  []string{"solar", "capacity"},
			Disagreement: 4,
			Severity:     types.SeverityMinor,
			Summary:      `"Solar Report" and "Counter" take opposing positions on solar, capacity`,
		}},
		Evidence: []types.Evidence{{
			ID:          "ev-1",
			SourceIndex: 0,
			Quote:       "Solar capacity grew 30% in 2024.",
			FragmentURL: "https://example.org/solar#:~:text=Solar%20capacity%20grew%2030%25%20in%202024.",
			Importance:  types.ImportanceHigh,
		}},
		Verification: &types.VerificationResult{
			Verified:         true,
			ClaimDensity:     12.5,
			CitationCoverage: 100,
		},
	}

	var buf bytes.Buffer
	if err := Research(&buf, result); err != nil {
		t.Fatalf("Research: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Research: solar capacity growth",
		"Confidence: 0.82",
		"Solar capacity grew 30% in 2024. [1]",
		"## Sources",
		"[Solar Report](https://example.org/solar)",
		"## Citations",
		"## Contradictions",
		"**minor**",
		"## Evidence",
		"#:~:text=",
		"## Verification",
		"Citation coverage: 100%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestResearchReportOmitsEmptySections(t *testing.T) {
	result := &types.ResearchResult{
		Query:   "unfindable query",
		Summary: "No sources found for query: unfindable query",
	}

	var buf bytes.Buffer
	if err := Research(&buf, result); err != nil {
		t.Fatalf("Research: %v", err)
	}
	out := buf.String()

	for _, absent := range []string{"## Sources", "## Citations", "## Contradictions", "## Evidence", "## Verification"} {
		if strings.Contains(out, absent) {
			t.Errorf("empty result rendered section %q", absent)
		}
	}
}

func TestAuditReport(t *testing.T) {
	audit := &types.DocumentAudit{
		Sections: []types.DocumentSection{{Title: "Findings", Content: "Revenue grew 20% in Q3.", End: 23}},
		Timeline: []types.TimelineEvent{{Date: "2024-03-15", Sentence: "The study ran on 2024-03-15.", Confidence: 0.7}},
		Claims: []types.DocumentClaim{
			{
				ID:      "claim-1",
				Text:    "Revenue grew 20% in Q3.",
				Section: "Findings",
				Verdict: &types.ClaimVerdict{Status: types.ClaimVerified, Confidence: 0.9},
			},
			{
				ID:      "claim-2",
				Text:    "The market will keep expanding forever.",
				Section: "Findings",
			},
		},
		Facts: []types.FactHighlight{{ClaimID: "claim-1", Text: "Revenue grew 20% in Q3.", Confidence: 0.9}},
		Assumptions: []types.AssumptionHighlight{{
			ClaimID:  "claim-2",
			Text:     "The market will keep expanding forever.",
			Severity: "high",
			Reason:   "no sources found",
		}},
		Trail: []types.AuditTrailEntry{{
			ClaimID:    "claim-1",
			Status:     types.ClaimVerified,
			Supporting: 2,
			Confidence: 0.9,
			CheckedAt:  time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
		}},
	}

	var buf bytes.Buffer
	if err := Audit(&buf, "quarterly.md", audit); err != nil {
		t.Fatalf("Audit: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Document audit: quarterly.md",
		"Sections: 1 | Entities: 0 | Timeline events: 1 | Claims: 2",
		"## Claims",
		"`claim-1` **verified** (0.90, Findings)",
		"`claim-2` **unverified** (0.00, Findings)",
		"## Verified facts",
		"## Assumptions",
		"claim-2 (high, no sources found)",
		"## Timeline",
		"2024-03-15",
		"## Audit trail",
		"2026-02-01 09:30:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

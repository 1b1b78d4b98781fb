// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders research results and document audits as Markdown
// for human review or archiving alongside the machine-readable output.
// Implements: prd011-synthesis (R5), prd013-document (R8);
//
//	docs/ARCHITECTURE § Reports.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/claimcheck/pkg/types"
)

// Research writes a Markdown report for one research result.
func Research(w io.Writer, result *types.ResearchResult) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Research: %s\n\n", result.Query)
	fmt.Fprintf(&b, "Confidence: %.2f\n\n", result.Confidence)
	fmt.Fprintf(&b, "%s\n", result.Summary)

	if len(result.Sources) > 0 {
		b.WriteString("\n## Sources\n\n")
		for i, src := range result.Sources {
			fmt.Fprintf(&b, "%d. [%s](%s) (%s, %s, relevance %.1f)\n",
				i+1, src.Title, src.URL, src.Domain, src.Type, src.RelevanceScore)
		}
	}

	if len(result.Citations) > 0 {
		b.WriteString("\n## Citations\n\n")
		for _, c := range result.Citations {
			fmt.Fprintf(&b, "- [%d] source %d (%.2f): %q\n",
				c.Index, c.SourceIndex+1, c.Confidence, c.Quote)
		}
	}

	if len(result.Contradictions) > 0 {
		b.WriteString("\n## Contradictions\n\n")
		for _, c := range result.Contradictions {
			fmt.Fprintf(&b, "- **%s** (terms: %s): %s\n",
				c.Severity, strings.Join(c.SharedTerms, ", "), c.Summary)
		}
	}

	if len(result.Evidence) > 0 {
		b.WriteString("\n## Evidence\n\n")
		for _, ev := range result.Evidence {
			fmt.Fprintf(&b, "- %s (%s): %q\n  %s\n", ev.ID, ev.Importance, ev.Quote, ev.FragmentURL)
		}
	}

	if v := result.Verification; v != nil {
		b.WriteString("\n## Verification\n\n")
		fmt.Fprintf(&b, "- Verified: %v\n", v.Verified)
		fmt.Fprintf(&b, "- Claim density: %.1f per 100 words\n", v.ClaimDensity)
		fmt.Fprintf(&b, "- Citation coverage: %.0f%%\n", v.CitationCoverage)
		fmt.Fprintf(&b, "- Hallucination risk: %.2f\n", v.HallucinationRisk)
		for _, s := range v.Suggestions {
			fmt.Fprintf(&b, "- Suggestion: %s\n", s)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Audit writes a Markdown report for one document audit.
func Audit(w io.Writer, name string, audit *types.DocumentAudit) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Document audit: %s\n\n", name)
	fmt.Fprintf(&b, "Sections: %d | Entities: %d | Timeline events: %d | Claims: %d\n",
		len(audit.Sections), len(audit.Entities), len(audit.Timeline), len(audit.Claims))

	if len(audit.Claims) > 0 {
		b.WriteString("\n## Claims\n\n")
		for _, claim := range audit.Claims {
			status := types.ClaimUnverified
			confidence := 0.0
			if claim.Verdict != nil {
				status = claim.Verdict.Status
				confidence = claim.Verdict.Confidence
			}
			fmt.Fprintf(&b, "- `%s` **%s** (%.2f, %s): %s\n",
				claim.ID, status, confidence, claim.Section, claim.Text)
		}
	}

	if len(audit.Facts) > 0 {
		b.WriteString("\n## Verified facts\n\n")
		for _, f := range audit.Facts {
			fmt.Fprintf(&b, "- %s (%.2f): %s\n", f.ClaimID, f.Confidence, f.Text)
		}
	}

	if len(audit.Assumptions) > 0 {
		b.WriteString("\n## Assumptions\n\n")
		for _, a := range audit.Assumptions {
			fmt.Fprintf(&b, "- %s (%s, %s): %s\n", a.ClaimID, a.Severity, a.Reason, a.Text)
		}
	}

	if len(audit.Timeline) > 0 {
		b.WriteString("\n## Timeline\n\n")
		for _, ev := range audit.Timeline {
			fmt.Fprintf(&b, "- %s: %s\n", ev.Date, ev.Sentence)
		}
	}

	if len(audit.Trail) > 0 {
		b.WriteString("\n## Audit trail\n\n")
		for _, entry := range audit.Trail {
			fmt.Fprintf(&b, "- %s %s (%d supporting, %d disputing, %.2f) at %s\n",
				entry.ClaimID, entry.Status, entry.Supporting, entry.Disputing,
				entry.Confidence, entry.CheckedAt.Format("2006-01-02 15:04:05"))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

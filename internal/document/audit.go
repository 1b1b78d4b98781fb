// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/claimcheck/internal/textutil"
	"github.com/pdiddy/claimcheck/pkg/types"
)

const (
	// weakConfidence flags a verified-but-shaky claim as an assumption.
	weakConfidence = 0.6

	// severeConfidence escalates an assumption to high severity.
	severeConfidence = 0.4
)

// Audit runs the full document pipeline: segmentation, entity and timeline
// extraction, claim extraction, cross-checking, and the derived views.
func (c *Checker) Audit(ctx context.Context, text string) *types.DocumentAudit {
	sections := Segment(text)
	entities := ExtractEntities(text)
	claims := ExtractClaims(text, sections)
	trail := c.CrossCheckAll(ctx, claims)

	return &types.DocumentAudit{
		Sections:     sections,
		Entities:     entities,
		Timeline:     ExtractTimeline(text),
		Claims:       claims,
		Facts:        Facts(claims),
		Assumptions:  Assumptions(claims),
		Trail:        trail,
		EntityClaims: EntityClaims(entities, claims),
	}
}

// Reverify re-runs the claim cross-checks of an existing audit in place and
// recomputes the derived views. Sections, entities, and the timeline are
// kept; only verdicts change.
func (c *Checker) Reverify(ctx context.Context, audit *types.DocumentAudit) {
	for i := range audit.Claims {
		audit.Claims[i].Verdict = nil
	}
	audit.Trail = c.CrossCheckAll(ctx, audit.Claims)
	audit.Facts = Facts(audit.Claims)
	audit.Assumptions = Assumptions(audit.Claims)
	audit.EntityClaims = EntityClaims(audit.Entities, audit.Claims)
}

// Facts lists the verified claims for highlighting.
func Facts(claims []types.DocumentClaim) []types.FactHighlight {
	var facts []types.FactHighlight
	for _, claim := range claims {
		if claim.Verdict == nil || claim.Verdict.Status != types.ClaimVerified {
			continue
		}
		facts = append(facts, types.FactHighlight{
			ClaimID:    claim.ID,
			Text:       claim.Text,
			Confidence: claim.Verdict.Confidence,
		})
	}
	return facts
}

// Assumptions flags claims that are unverified, disputed, or weakly
// supported. Severity escalates when more than one source disputes the
// claim or confidence drops below the severe threshold.
func Assumptions(claims []types.DocumentClaim) []types.AssumptionHighlight {
	var assumptions []types.AssumptionHighlight
	for _, claim := range claims {
		if claim.Verdict == nil {
			continue
		}
		v := claim.Verdict
		if v.Status == types.ClaimVerified && v.Confidence >= weakConfidence {
			continue
		}

		_, disputing := tally(v.Sources)
		severity := "medium"
		if disputing > 1 || v.Confidence < severeConfidence {
			severity = "high"
		}

		assumptions = append(assumptions, types.AssumptionHighlight{
			ClaimID:  claim.ID,
			Text:     claim.Text,
			Severity: severity,
			Reason:   assumptionReason(v, disputing),
		})
	}
	return assumptions
}

func assumptionReason(v *types.ClaimVerdict, disputing int) string {
	switch {
	case v.Status == types.ClaimDisputed:
		return fmt.Sprintf("disputed by %d sources", disputing)
	case v.Status == types.ClaimUnverified && len(v.Sources) == 0:
		return "no sources found"
	case v.Status == types.ClaimUnverified:
		return "insufficient supporting sources"
	default:
		return "weakly supported"
	}
}

// EntityClaims maps each entity to the IDs of claims that mention it.
func EntityClaims(entities []types.DocumentEntity, claims []types.DocumentClaim) map[string][]string {
	graph := make(map[string][]string)
	for _, entity := range entities {
		needle := strings.ToLower(entity.Text)
		for _, claim := range claims {
			if textutil.ContainsTerm(strings.ToLower(claim.Text), needle) {
				graph[entity.Text] = append(graph[entity.Text], claim.ID)
			}
		}
	}
	return graph
}

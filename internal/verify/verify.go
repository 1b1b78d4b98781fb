// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify grades a synthesized summary against its own citations:
// how many factual statements it makes, how many are cited, and how likely
// the uncited remainder is to be ungrounded.
// Implements: prd012-verification (R1-R4);
//
//	docs/ARCHITECTURE § Verification.
package verify

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/claimcheck/internal/textutil"
	"github.com/pdiddy/claimcheck/pkg/types"
)

const (
	// coverageThreshold and riskThreshold gate the verified flag.
	coverageThreshold = 60.0
	riskThreshold     = 0.4

	// Risk blend weights: missing coverage dominates, source
	// disagreement contributes the rest.
	coverageRiskWeight     = 0.7
	disagreementRiskWeight = 0.3

	// Disagreement contribution per contradiction, by severity.
	majorDisagreement = 0.5
	minorDisagreement = 0.2
)

// assertionVerbs mark a sentence as stating a fact rather than framing one.
var assertionVerbs = []string{
	"is", "are", "was", "were", "has", "have", "had",
	"shows", "showed", "shown", "found", "finds",
	"increased", "decreased", "rose", "fell", "grew", "declined",
	"reported", "confirmed", "demonstrated", "revealed", "measured",
	"estimated", "announced", "concluded", "proved", "caused",
}

var (
	citationRe     = regexp.MustCompile(`\[\d+\]`)
	leadingCitesRe = regexp.MustCompile(`^(\s*\[\d+\])+\s*`)
)

// Verify computes the verification scorecard for a research result. It
// never fails: an empty summary verifies trivially with zero density.
func Verify(result *types.ResearchResult) types.VerificationResult {
	sentences := attachCitations(textutil.SplitSentences(result.Summary))
	words := textutil.CountWords(result.Summary)

	var (
		markers    int
		cited      int
		ungrounded []types.UngroundedClaim
	)
	for i, s := range sentences {
		// Classify on the bare sentence: the digits inside a bracket
		// marker must not count as a numeral.
		bare := strings.TrimSpace(citationRe.ReplaceAllString(s, ""))
		if !IsFactualMarker(bare) {
			continue
		}
		markers++
		if citationRe.MatchString(s) {
			cited++
			continue
		}
		ungrounded = append(ungrounded, types.UngroundedClaim{
			Text:     s,
			Position: i,
			Severity: claimSeverity(bare),
		})
	}

	coverage := 100.0
	if markers > 0 {
		coverage = float64(cited) / float64(markers) * 100
	}

	density := 0.0
	if words > 0 {
		density = float64(markers) / float64(words) * 100
	}

	risk := textutil.Clamp01(
		(100-coverage)/100*coverageRiskWeight +
			disagreement(result.Contradictions)*disagreementRiskWeight)

	return types.VerificationResult{
		Verified:          coverage >= coverageThreshold && risk < riskThreshold,
		ClaimDensity:      density,
		CitationCoverage:  coverage,
		UngroundedClaims:  ungrounded,
		HallucinationRisk: risk,
		Suggestions:       suggestions(result, ungrounded),
	}
}

// attachCitations fixes up sentence splitting around bracket markers: the
// summary writes "claim. [1]", so the marker lands at the start of the next
// chunk and must be folded back onto the sentence it cites.
func attachCitations(sentences []string) []string {
	var out []string
	for _, s := range sentences {
		if m := leadingCitesRe.FindString(s); m != "" && len(out) > 0 {
			out[len(out)-1] += " " + strings.TrimSpace(m)
			s = strings.TrimSpace(s[len(m):])
		}
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// IsFactualMarker reports whether a sentence asserts something checkable:
// it carries an assertion verb or a numeral, and is not a question.
func IsFactualMarker(sentence string) bool {
	if strings.HasSuffix(sentence, "?") {
		return false
	}
	if strings.ContainsFunc(sentence, unicode.IsDigit) {
		return true
	}
	lowered := strings.ToLower(sentence)
	for _, verb := range assertionVerbs {
		if textutil.ContainsTerm(lowered, verb) {
			return true
		}
	}
	return false
}

// claimSeverity grades an uncited claim by its specificity. Numbers and
// multiple named entities are the hardest statements to leave unsourced.
func claimSeverity(sentence string) string {
	if strings.ContainsFunc(sentence, unicode.IsDigit) {
		return "high"
	}
	switch n := properNouns(sentence); {
	case n >= 2:
		return "high"
	case n == 1:
		return "medium"
	default:
		return "low"
	}
}

// properNouns counts capitalized words past the sentence start.
func properNouns(sentence string) int {
	fields := strings.Fields(sentence)
	count := 0
	for i, f := range fields {
		if i == 0 {
			continue
		}
		f = strings.Trim(f, ".,;:!?\"'()[]")
		runes := []rune(f)
		if len(runes) > 1 && unicode.IsUpper(runes[0]) && unicode.IsLower(runes[1]) {
			count++
		}
	}
	return count
}

// disagreement folds contradictions into a [0,1] penalty.
func disagreement(contradictions []types.Contradiction) float64 {
	var d float64
	for _, c := range contradictions {
		if c.Severity == types.SeverityMajor {
			d += majorDisagreement
		} else {
			d += minorDisagreement
		}
	}
	return textutil.Clamp01(d)
}

func suggestions(result *types.ResearchResult, ungrounded []types.UngroundedClaim) []string {
	var out []string
	if len(result.Sources) < 2 {
		out = append(out, "add a second independent source")
	}
	if n := len(ungrounded); n > 0 {
		out = append(out, fmt.Sprintf("cite sources for %d unsupported statements", n))
	}
	if len(result.Contradictions) > 0 {
		out = append(out, "resolve contradictions between sources")
	}
	return out
}

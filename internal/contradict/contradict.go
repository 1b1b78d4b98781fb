// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package contradict flags pairs of sources that discuss the same query
// terms with opposing polarity cues (one reports growth where the other
// reports decline, and so on).
// Implements: prd010-research (R6);
//
//	docs/ARCHITECTURE § Counterpoints.
package contradict

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/claimcheck/internal/textutil"
	"github.com/pdiddy/claimcheck/pkg/types"
)

// majorThreshold separates minor from major contradictions.
const majorThreshold = 6

// sharedTermMinLen: query terms this short are too generic to anchor a
// topical disagreement.
const sharedTermMinLen = 3

// PolarityLexicon is one axis of disagreement: a topic plus the positive
// and negative cue words that signal each side of it.
type PolarityLexicon struct {
	Topic    string   `yaml:"topic"`
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// DefaultLexicons returns the compiled-in disagreement axes.
func DefaultLexicons() []PolarityLexicon {
	return []PolarityLexicon{
		{
			Topic:    "growth",
			Positive: []string{"growth", "growing", "grew", "expansion", "expanding", "rising", "rose", "surge", "surged"},
			Negative: []string{"decline", "declining", "declined", "shrinking", "shrank", "falling", "fell", "drop", "dropped"},
		},
		{
			Topic:    "efficacy",
			Positive: []string{"effective", "beneficial", "helpful", "improves", "improved", "improvement"},
			Negative: []string{"harmful", "ineffective", "dangerous", "worsens", "worsened", "detrimental"},
		},
		{
			Topic:    "consensus",
			Positive: []string{"confirmed", "proven", "verified", "established", "demonstrated"},
			Negative: []string{"disputed", "debunked", "refuted", "contested", "unproven", "questioned"},
		},
		{
			Topic:    "trend",
			Positive: []string{"increase", "increased", "increasing", "higher", "more"},
			Negative: []string{"decrease", "decreased", "decreasing", "lower", "fewer", "less"},
		},
		{
			Topic:    "safety",
			Positive: []string{"safe", "safely", "harmless", "secure"},
			Negative: []string{"unsafe", "dangerous", "hazardous", "risky", "toxic"},
		},
		{
			Topic:    "outcome",
			Positive: []string{"success", "successful", "succeeded", "works", "worked"},
			Negative: []string{"failure", "failed", "failing", "unsuccessful", "broken"},
		},
	}
}

// LoadLexicons reads disagreement axes from a YAML file, for deployments
// that tune the cue lists without rebuilding.
func LoadLexicons(path string) ([]PolarityLexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon file: %w", err)
	}
	var lexicons []PolarityLexicon
	if err := yaml.Unmarshal(data, &lexicons); err != nil {
		return nil, fmt.Errorf("parsing lexicon file %s: %w", path, err)
	}
	return lexicons, nil
}

// Detect compares every unordered pair of sources that share at least one
// substantive query term and reports pairs whose polarity cues point in
// opposite directions. A nil lexicon list uses the defaults.
func Detect(sources []types.ResearchSource, query string, lexicons []PolarityLexicon) []types.Contradiction {
	if len(sources) < 2 {
		return nil
	}
	if lexicons == nil {
		lexicons = DefaultLexicons()
	}

	queryTerms := textutil.UniqueTerms(textutil.ContentTerms(query, sharedTermMinLen))
	if len(queryTerms) == 0 {
		return nil
	}

	freqs := make([]map[string]int, len(sources))
	lowered := make([]string, len(sources))
	for i, src := range sources {
		lowered[i] = strings.ToLower(src.FullText)
		freqs[i] = termFrequency(src.FullText)
	}

	var found []types.Contradiction
	for a := 0; a < len(sources); a++ {
		for b := a + 1; b < len(sources); b++ {
			shared := sharedTerms(queryTerms, lowered[a], lowered[b])
			if len(shared) == 0 {
				continue
			}

			severity := 0
			for _, lex := range lexicons {
				polA := polarity(freqs[a], lex)
				polB := polarity(freqs[b], lex)
				if polA == 0 || polB == 0 || sameSign(polA, polB) {
					continue
				}
				severity += minAbs(polA, polB) + 1
			}
			if severity == 0 {
				continue
			}

			c := types.Contradiction{
				SharedTerms:  shared,
				SourceA:      a,
				SourceB:      b,
				Disagreement: severity,
				Severity:     types.SeverityMinor,
				Summary: fmt.Sprintf("%q and %q take opposing positions on %s",
					sources[a].Title, sources[b].Title, strings.Join(shared, ", ")),
			}
			if severity > majorThreshold {
				c.Severity = types.SeverityMajor
			}
			found = append(found, c)
		}
	}
	return found
}

func termFrequency(text string) map[string]int {
	freq := make(map[string]int)
	for _, t := range textutil.Terms(text) {
		freq[t]++
	}
	return freq
}

func sharedTerms(queryTerms []string, bodyA, bodyB string) []string {
	var shared []string
	for _, term := range queryTerms {
		if textutil.ContainsTerm(bodyA, term) && textutil.ContainsTerm(bodyB, term) {
			shared = append(shared, term)
		}
	}
	return shared
}

// polarity is positive cue count minus negative cue count for one source
// on one axis.
func polarity(freq map[string]int, lex PolarityLexicon) int {
	var pol int
	for _, cue := range lex.Positive {
		pol += freq[cue]
	}
	for _, cue := range lex.Negative {
		pol -= freq[cue]
	}
	return pol
}

func sameSign(a, b int) bool {
	return (a > 0) == (b > 0)
}

func minAbs(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a < b {
		return a
	}
	return b
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synthesize turns a ranked source list into a cited summary:
// query-relevant sentences are extracted per source, concatenated with
// bracket numbers, and backed by Citation and Evidence records.
// Implements: prd011-synthesis (R1-R4);
//
//	docs/ARCHITECTURE § Synthesis.
package synthesize

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/pdiddy/claimcheck/internal/textutil"
	"github.com/pdiddy/claimcheck/pkg/types"
)

const (
	// summarySources and summarySentences bound the cited summary.
	summarySources   = 5
	summarySentences = 2

	// evidenceSources and evidenceSentences bound the evidence list.
	evidenceSources   = 6
	evidenceSentences = 3

	// ConfidenceFloor is the minimum confidence reported for any
	// non-empty source set. Chosen so downstream consumers can treat
	// zero as "nothing found" unambiguously.
	ConfidenceFloor = 0.3

	// fragmentChunk is how many characters of the quote go into each
	// side of a text-fragment anchor; quotes up to twice this length
	// are anchored as a single chunk.
	fragmentChunk = 80

	// Importance tiers by overlapping query-term count.
	highOverlap   = 3
	mediumOverlap = 2
)

// Result is the synthesized view of a ranked source list.
type Result struct {
	Summary    string
	Citations  []types.Citation
	Evidence   []types.Evidence
	Confidence float64
}

// Synthesize builds the cited summary, evidence list, and overall
// confidence for a score-sorted source list. An empty list yields a
// placeholder summary with zero confidence, never an error.
func Synthesize(query string, sources []types.ResearchSource) Result {
	if len(sources) == 0 {
		return Result{Summary: "No sources found for query: " + query}
	}

	queryTerms := textutil.UniqueTerms(textutil.Terms(query))

	maxRelevance := sources[0].RelevanceScore
	for _, src := range sources[1:] {
		if src.RelevanceScore > maxRelevance {
			maxRelevance = src.RelevanceScore
		}
	}

	var (
		parts     []string
		citations []types.Citation
	)
	for i, src := range sources {
		if i >= summarySources {
			break
		}
		for _, quote := range topSentences(src.FullText, queryTerms, summarySentences) {
			index := len(citations) + 1
			parts = append(parts, fmt.Sprintf("%s [%d]", quote.text, index))
			citations = append(citations, types.Citation{
				Index:       index,
				SourceIndex: i,
				Quote:       quote.text,
				Confidence:  normalizedRelevance(src.RelevanceScore, maxRelevance),
			})
		}
	}

	return Result{
		Summary:    strings.Join(parts, " "),
		Citations:  citations,
		Evidence:   buildEvidence(sources, queryTerms),
		Confidence: confidence(sources),
	}
}

type scoredSentence struct {
	text    string
	ordinal int
	score   int
	context string
}

// topSentences returns the n highest term-frequency sentences of a body,
// in document order. Sentences with no query-term hits are skipped.
func topSentences(body string, queryTerms []string, n int) []scoredSentence {
	sentences := textutil.SplitSentences(body)

	var candidates []scoredSentence
	for i, s := range sentences {
		score := termHits(s, queryTerms)
		if score == 0 {
			continue
		}
		candidates = append(candidates, scoredSentence{
			text:    s,
			ordinal: i,
			score:   score,
			context: neighborhood(sentences, i),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ordinal < candidates[j].ordinal
	})
	return candidates
}

// termHits counts query-term occurrences in one sentence.
func termHits(sentence string, queryTerms []string) int {
	hits := 0
	for _, t := range textutil.Terms(sentence) {
		for _, q := range queryTerms {
			if t == q {
				hits++
			}
		}
	}
	return hits
}

// distinctHits counts how many distinct query terms the sentence covers.
func distinctHits(sentence string, queryTerms []string) int {
	lowered := strings.ToLower(sentence)
	n := 0
	for _, q := range queryTerms {
		if textutil.ContainsTerm(lowered, q) {
			n++
		}
	}
	return n
}

func neighborhood(sentences []string, i int) string {
	lo, hi := i-1, i+2
	if lo < 0 {
		lo = 0
	}
	if hi > len(sentences) {
		hi = len(sentences)
	}
	return strings.Join(sentences[lo:hi], " ")
}

func buildEvidence(sources []types.ResearchSource, queryTerms []string) []types.Evidence {
	var evidence []types.Evidence
	for i, src := range sources {
		if i >= evidenceSources {
			break
		}
		for _, quote := range topSentences(src.FullText, queryTerms, evidenceSentences) {
			evidence = append(evidence, types.Evidence{
				ID:          fmt.Sprintf("ev-%d", len(evidence)+1),
				SourceIndex: i,
				Quote:       quote.text,
				Context:     quote.context,
				Importance:  importance(distinctHits(quote.text, queryTerms)),
				FragmentURL: FragmentURL(src.URL, quote.text),
			})
		}
	}
	return evidence
}

func importance(overlap int) types.EvidenceImportance {
	switch {
	case overlap >= highOverlap:
		return types.ImportanceHigh
	case overlap == mediumOverlap:
		return types.ImportanceMedium
	default:
		return types.ImportanceLow
	}
}

// FragmentURL builds a text-fragment deep link for a quote: the whole quote
// when short, otherwise its first and last fragmentChunk characters as a
// start,end range.
func FragmentURL(sourceURL, quote string) string {
	runes := []rune(quote)
	if len(runes) <= 2*fragmentChunk {
		return sourceURL + "#:~:text=" + pctEncode(quote)
	}
	first := strings.TrimSpace(string(runes[:fragmentChunk]))
	last := strings.TrimSpace(string(runes[len(runes)-fragmentChunk:]))
	return sourceURL + "#:~:text=" + pctEncode(first) + "," + pctEncode(last)
}

// pctEncode percent-encodes a text-fragment chunk. Commas and ampersands
// are fragment delimiters and must not appear literally.
func pctEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// confidence is the normalized mean relevance of the top summary sources,
// scaled down when fewer than summarySources exist, floored and clamped.
func confidence(sources []types.ResearchSource) float64 {
	n := len(sources)
	if n > summarySources {
		n = summarySources
	}

	var sum, max float64
	for _, src := range sources[:n] {
		sum += src.RelevanceScore
		if src.RelevanceScore > max {
			max = src.RelevanceScore
		}
	}

	var c float64
	if max > 0 {
		c = sum / float64(n) / max
	}
	c *= minF(1, float64(len(sources))/float64(summarySources))
	if c < ConfidenceFloor {
		c = ConfidenceFloor
	}
	return textutil.Clamp01(c)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func normalizedRelevance(score, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return textutil.Clamp01(score / max)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textutil provides lexical helpers shared across pipeline stages:
// sentence splitting, term tokenization, and stop-word filtering.
package textutil

import (
	"strings"
	"unicode"
)

// stopWords are common function words excluded from term matching.
var stopWords = map[string]bool{
	"a": true, "an": true, "as": true, "at": true, "be": true, "by": true,
	"in": true, "is": true, "it": true, "of": true, "on": true, "or": true,
	"to": true, "we": true, "he": true, "she": true,
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "her": true,
	"was": true, "one": true, "our": true, "out": true, "has": true,
	"have": true, "this": true, "that": true, "with": true, "from": true,
	"they": true, "been": true, "were": true, "their": true, "which": true,
	"will": true, "would": true, "there": true, "about": true, "into": true,
	"than": true, "them": true, "these": true, "those": true, "over": true,
	"such": true, "when": true, "what": true, "where": true, "while": true,
}

// Terms lowercases text and returns its word tokens, stripped of
// punctuation, with stop words removed.
func Terms(text string) []string {
	var terms []string
	for _, f := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '%' && r != '.'
	}) {
		f = strings.Trim(f, ".")
		if f == "" || stopWords[f] {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

// ContentTerms returns Terms longer than minLen characters. Claim
// cross-checking and contradiction detection use minLen 3 to skip trivial
// words.
func ContentTerms(text string, minLen int) []string {
	var out []string
	for _, t := range Terms(text) {
		if len(t) > minLen {
			out = append(out, t)
		}
	}
	return out
}

// UniqueTerms deduplicates a term list, preserving first-seen order.
func UniqueTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	var out []string
	for _, t := range terms {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// SplitSentences splits text on sentence-final punctuation followed by
// whitespace. Abbreviation handling is deliberately minimal: sources are
// prose web pages, and a misplit sentence only shortens a candidate quote.
func SplitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		// Decimal point, not a sentence end.
		if runes[i] == '.' && i > 0 && i+1 < len(runes) &&
			unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
			continue
		}
		if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(b.String()); s != "" {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// ContainsTerm reports whether lowered (a pre-lowercased text) contains the
// term as a whole word.
func ContainsTerm(lowered, term string) bool {
	idx := 0
	for {
		i := strings.Index(lowered[idx:], term)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(term)
		beforeOK := start == 0 || !isWordRune(rune(lowered[start-1]))
		afterOK := end == len(lowered) || !isWordRune(rune(lowered[end]))
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// CountWords returns the number of whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Clamp01 bounds v into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

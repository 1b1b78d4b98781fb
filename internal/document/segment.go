// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document ingests a text document and audits it: sections,
// entities, a timeline, and declarative claims cross-checked against the
// research pipeline.
// Implements: prd013-document (R1-R6);
//
//	docs/ARCHITECTURE § Document audit.
package document

import (
	"strings"

	"github.com/pdiddy/claimcheck/pkg/types"
)

// introTitle names the implicit section for text before any heading.
const introTitle = "Introduction"

// headingMarkers are the characters that open a heading line.
const headingMarkers = "#*="

// Segment splits a document into heading-delimited sections with character
// offsets. Text before the first heading becomes an implicit Introduction.
func Segment(text string) []types.DocumentSection {
	var (
		sections []types.DocumentSection
		current  *types.DocumentSection
		body     strings.Builder
	)

	flush := func(end int) {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(body.String())
		current.End = end
		if current.Content != "" || current.Title != introTitle {
			sections = append(sections, *current)
		}
		current = nil
		body.Reset()
	}

	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		if title, ok := headingTitle(line); ok {
			flush(offset)
			current = &types.DocumentSection{Title: title, Start: offset}
		} else {
			if current == nil {
				current = &types.DocumentSection{Title: introTitle, Start: offset}
			}
			body.WriteString(line)
		}
		offset += len(line)
	}
	flush(len(text))

	return sections
}

// headingTitle reports whether a line is a heading (leading marker
// characters followed by text) and returns its title.
func headingTitle(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || !strings.ContainsRune(headingMarkers, rune(trimmed[0])) {
		return "", false
	}
	title := strings.TrimSpace(strings.TrimLeft(trimmed, headingMarkers))
	if title == "" {
		return "", false
	}
	return title, true
}

// sectionFor returns the title of the section containing a character
// offset, or the introduction title when none does.
func sectionFor(sections []types.DocumentSection, offset int) string {
	for _, s := range sections {
		if offset >= s.Start && offset < s.End {
			return s.Title
		}
	}
	return introTitle
}

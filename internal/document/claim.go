// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"strings"

	"github.com/pdiddy/claimcheck/internal/textutil"
	"github.com/pdiddy/claimcheck/internal/verify"
	"github.com/pdiddy/claimcheck/pkg/types"
)

// minClaimWords filters out fragments too short to check against sources.
const minClaimWords = 4

// ExtractClaims finds the declarative, checkable sentences of a document:
// not a question or exclamation, carrying an assertion verb or a numeral.
// Sentences are drawn per section so heading lines never bleed into a
// claim, and each claim records its owning section and document offset.
func ExtractClaims(text string, sections []types.DocumentSection) []types.DocumentClaim {
	if len(sections) == 0 {
		sections = []types.DocumentSection{
			{Title: introTitle, Content: text, Start: 0, End: len(text)},
		}
	}

	var claims []types.DocumentClaim
	for _, section := range sections {
		searchPos := section.Start
		for _, sentence := range textutil.SplitSentences(section.Content) {
			offset := strings.Index(text[searchPos:], sentence)
			if offset < 0 {
				continue
			}
			offset += searchPos
			searchPos = offset + len(sentence)

			if !isClaim(sentence) {
				continue
			}
			claims = append(claims, types.DocumentClaim{
				ID:      fmt.Sprintf("claim-%d", len(claims)+1),
				Text:    sentence,
				Section: section.Title,
				Offset:  offset,
			})
		}
	}
	return claims
}

func isClaim(sentence string) bool {
	if strings.HasSuffix(sentence, "!") {
		return false
	}
	if textutil.CountWords(sentence) < minClaimWords {
		return false
	}
	return verify.IsFactualMarker(sentence)
}

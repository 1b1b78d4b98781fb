// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/claimcheck/internal/textutil"
	"github.com/pdiddy/claimcheck/pkg/types"
)

const (
	// contextWindow is how many characters of surrounding text an entity
	// mention records on each side.
	contextWindow = 60

	// timelineCap bounds the extracted timeline.
	timelineCap = 20

	// timelineConfidence is the fixed confidence for heuristic date
	// extraction.
	timelineConfidence = 0.7
)

const monthNames = `January|February|March|April|May|June|July|August|September|October|November|December`

// datePatterns match ISO dates, written-out dates in both orders, and bare
// years.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b(?:` + monthNames + `) \d{1,2}, \d{4}\b`),
	regexp.MustCompile(`\b\d{1,2} (?:` + monthNames + `) \d{4}\b`),
	regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
}

// capitalizedRe matches runs of capitalized words (candidate named
// entities).
var capitalizedRe = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)*\b`)

// entityStopList drops capitalized tokens that are sentence furniture, not
// names.
var entityStopList = map[string]bool{
	"The": true, "This": true, "That": true, "These": true, "Those": true,
	"A": true, "An": true, "In": true, "On": true, "At": true, "It": true,
	"We": true, "He": true, "She": true, "They": true, "Our": true,
	"If": true, "But": true, "And": true, "As": true, "By": true,
	"However": true, "Therefore": true, "Meanwhile": true, "According": true,
	"Introduction": true,
}

// typeKeywords infer an entity's type from words near its first mention.
var typeKeywords = []struct {
	etype    types.EntityType
	keywords []string
}{
	{types.EntityPerson, []string{
		"mr", "mrs", "ms", "dr", "professor", "ceo", "president",
		"founder", "director", "said", "says", "born", "author",
	}},
	{types.EntityOrganization, []string{
		"inc", "corp", "company", "university", "institute", "agency",
		"organization", "ltd", "foundation", "committee", "firm",
	}},
	{types.EntityLocation, []string{
		"city", "country", "region", "located", "capital", "north",
		"south", "east", "west", "province", "coast",
	}},
}

// ExtractEntities finds date and capitalized-token mentions in a document.
// Each distinct entity records its first offset, a context window, a
// mention count, and a type inferred from nearby keywords.
func ExtractEntities(text string) []types.DocumentEntity {
	byText := make(map[string]*types.DocumentEntity)
	var order []string

	record := func(mention string, offset int, etype types.EntityType) {
		if e, ok := byText[mention]; ok {
			e.Mentions++
			return
		}
		byText[mention] = &types.DocumentEntity{
			Text:     mention,
			Type:     etype,
			Offset:   offset,
			Context:  window(text, offset, len(mention)),
			Mentions: 1,
		}
		order = append(order, mention)
	}

	dateSpans := make([][2]int, 0)
	for _, re := range datePatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if within(dateSpans, loc[0]) {
				continue
			}
			dateSpans = append(dateSpans, [2]int{loc[0], loc[1]})
			record(text[loc[0]:loc[1]], loc[0], types.EntityDate)
		}
	}

	for _, loc := range capitalizedRe.FindAllStringIndex(text, -1) {
		mention := text[loc[0]:loc[1]]
		if entityStopList[mention] || within(dateSpans, loc[0]) {
			continue
		}
		record(mention, loc[0], types.EntityOther)
	}

	entities := make([]types.DocumentEntity, 0, len(order))
	for _, key := range order {
		e := byText[key]
		if e.Type == types.EntityOther {
			e.Type = inferType(e.Context)
		}
		entities = append(entities, *e)
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Offset < entities[j].Offset
	})
	return entities
}

// ExtractTimeline turns dated sentences into timeline events, capped.
func ExtractTimeline(text string) []types.TimelineEvent {
	var events []types.TimelineEvent
	for _, sentence := range textutil.SplitSentences(text) {
		if len(events) >= timelineCap {
			break
		}
		for _, re := range datePatterns {
			if date := re.FindString(sentence); date != "" {
				events = append(events, types.TimelineEvent{
					Date:       date,
					Sentence:   sentence,
					Confidence: timelineConfidence,
				})
				break
			}
		}
	}
	return events
}

func window(text string, offset, length int) string {
	lo := offset - contextWindow
	if lo < 0 {
		lo = 0
	}
	hi := offset + length + contextWindow
	if hi > len(text) {
		hi = len(text)
	}
	return strings.TrimSpace(text[lo:hi])
}

func within(spans [][2]int, pos int) bool {
	for _, s := range spans {
		if pos >= s[0] && pos < s[1] {
			return true
		}
	}
	return false
}

func inferType(context string) types.EntityType {
	lowered := strings.ToLower(context)
	for _, tk := range typeKeywords {
		for _, kw := range tk.keywords {
			if textutil.ContainsTerm(lowered, kw) {
				return tk.etype
			}
		}
	}
	return types.EntityOther
}

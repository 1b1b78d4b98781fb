// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"testing"

	"github.com/pdiddy/claimcheck/pkg/types"
)

const entityDoc = "Dr. Marisol Vega announced the findings about renewable solar production efficiency on 2024-03-15. " +
	"Helios Corp funded the study. The company repeated the claim on March 20, 2024. " +
	"Marisol Vega later spoke in Lisbon, the capital city."

func entityByText(t *testing.T, entities []types.DocumentEntity, text string) types.DocumentEntity {
	t.Helper()
	for _, e := range entities {
		if e.Text == text {
			return e
		}
	}
	t.Fatalf("entity %q not found in %v", text, entities)
	return types.DocumentEntity{}
}

func TestExtractEntitiesDates(t *testing.T) {
	entities := ExtractEntities(entityDoc)

	iso := entityByText(t, entities, "2024-03-15")
	if iso.Type != types.EntityDate {
		t.Errorf("ISO date Type = %q, want date", iso.Type)
	}
	written := entityByText(t, entities, "March 20, 2024")
	if written.Type != types.EntityDate {
		t.Errorf("written date Type = %q, want date", written.Type)
	}
}

func TestExtractEntitiesTypesFromContext(t *testing.T) {
	entities := ExtractEntities(entityDoc)

	person := entityByText(t, entities, "Marisol Vega")
	if person.Type != types.EntityPerson {
		t.Errorf("person Type = %q, want person", person.Type)
	}
	if person.Mentions != 2 {
		t.Errorf("person Mentions = %d, want 2", person.Mentions)
	}

	org := entityByText(t, entities, "Helios Corp")
	if org.Type != types.EntityOrganization {
		t.Errorf("org Type = %q, want organization", org.Type)
	}

	loc := entityByText(t, entities, "Lisbon")
	if loc.Type != types.EntityLocation {
		t.Errorf("location Type = %q, want location", loc.Type)
	}
}

func TestExtractEntitiesStopList(t *testing.T) {
	for _, e := range ExtractEntities(entityDoc) {
		if e.Text == "The" {
			t.Error("stop-listed token extracted as entity")
		}
	}
}

func TestExtractEntitiesContextWindow(t *testing.T) {
	entities := ExtractEntities(entityDoc)

	org := entityByText(t, entities, "Helios Corp")
	if org.Context == "" || len(org.Context) > len("Helios Corp")+2*contextWindow {
		t.Errorf("Context = %q (len %d)", org.Context, len(org.Context))
	}
	if org.Offset <= 0 {
		t.Errorf("Offset = %d, want position of first mention", org.Offset)
	}
}

func TestExtractTimeline(t *testing.T) {
	events := ExtractTimeline(entityDoc)

	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2 dated sentences", len(events))
	}
	if events[0].Date != "2024-03-15" {
		t.Errorf("events[0].Date = %q", events[0].Date)
	}
	for _, ev := range events {
		if ev.Confidence != timelineConfidence {
			t.Errorf("Confidence = %f, want %f", ev.Confidence, timelineConfidence)
		}
	}
}

func TestExtractTimelineCap(t *testing.T) {
	doc := ""
	for i := 0; i < 30; i++ {
		doc += "Something happened in 1999. "
	}
	if events := ExtractTimeline(doc); len(events) != timelineCap {
		t.Errorf("len(events) = %d, want cap %d", len(events), timelineCap)
	}
}

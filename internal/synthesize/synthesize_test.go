// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesize

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/claimcheck/pkg/types"
)

const solarBody = "Solar capacity expanded worldwide. " +
	"Solar panel efficiency reached a new record this year. " +
	"Unrelated filler sentence about gardening. " +
	"Researchers credit solar panel cell design for the efficiency gains."

func solarSource(score float64) types.ResearchSource {
	return types.ResearchSource{
		URL:            "https://example.org/solar",
		Title:          "Solar record",
		FullText:       solarBody,
		RelevanceScore: score,
	}
}

func TestSynthesizeEmptySources(t *testing.T) {
	res := Synthesize("solar panels", nil)

	if res.Summary != "No sources found for query: solar panels" {
		t.Errorf("Summary = %q", res.Summary)
	}
	if res.Confidence != 0 {
		t.Errorf("Confidence = %f, want 0", res.Confidence)
	}
	if res.Citations != nil || res.Evidence != nil {
		t.Error("expected no citations or evidence")
	}
}

func TestSynthesizeCitedSummary(t *testing.T) {
	sources := []types.ResearchSource{solarSource(20), solarSource(10)}

	res := Synthesize("solar panel efficiency", sources)

	if len(res.Citations) != 4 {
		t.Fatalf("len(Citations) = %d, want 2 sentences x 2 sources", len(res.Citations))
	}
	for i, c := range res.Citations {
		if c.Index != i+1 {
			t.Errorf("Citations[%d].Index = %d, want sequential %d", i, c.Index, i+1)
		}
		if c.SourceIndex < 0 || c.SourceIndex >= len(sources) {
			t.Errorf("Citations[%d].SourceIndex = %d out of range", i, c.SourceIndex)
		}
		if !strings.Contains(solarBody, c.Quote) {
			t.Errorf("Citations[%d].Quote = %q not found in body", i, c.Quote)
		}
		if !strings.Contains(res.Summary, fmt.Sprintf("%s [%d]", c.Quote, c.Index)) {
			t.Errorf("summary missing bracketed quote %d", c.Index)
		}
	}

	// Confidence is relevance normalized to the best source.
	if res.Citations[0].Confidence != 1.0 {
		t.Errorf("top source citation confidence = %f, want 1.0", res.Citations[0].Confidence)
	}
	if res.Citations[2].Confidence != 0.5 {
		t.Errorf("second source citation confidence = %f, want 0.5", res.Citations[2].Confidence)
	}
}

func TestSynthesizeSkipsIrrelevantSentences(t *testing.T) {
	res := Synthesize("solar panel efficiency", []types.ResearchSource{solarSource(10)})

	for _, c := range res.Citations {
		if strings.Contains(c.Quote, "gardening") {
			t.Errorf("irrelevant sentence quoted: %q", c.Quote)
		}
	}
}

func TestSynthesizeCapsSummarySources(t *testing.T) {
	var sources []types.ResearchSource
	for i := 0; i < 8; i++ {
		sources = append(sources, solarSource(float64(20-i)))
	}

	res := Synthesize("solar panel efficiency", sources)

	for _, c := range res.Citations {
		if c.SourceIndex >= summarySources {
			t.Errorf("citation drawn from source %d beyond the top %d", c.SourceIndex, summarySources)
		}
	}
	for _, ev := range res.Evidence {
		if ev.SourceIndex >= evidenceSources {
			t.Errorf("evidence drawn from source %d beyond the top %d", ev.SourceIndex, evidenceSources)
		}
	}
}

func TestConfidenceFloorAndRange(t *testing.T) {
	// A single source is scaled down by the count factor, then floored.
	res := Synthesize("solar panel", []types.ResearchSource{solarSource(10)})
	if res.Confidence != ConfidenceFloor {
		t.Errorf("single-source confidence = %f, want floor %f", res.Confidence, ConfidenceFloor)
	}

	// Five equally relevant sources normalize to full confidence.
	var five []types.ResearchSource
	for i := 0; i < 5; i++ {
		five = append(five, solarSource(10))
	}
	res = Synthesize("solar panel", five)
	if res.Confidence != 1.0 {
		t.Errorf("five-source confidence = %f, want 1.0", res.Confidence)
	}

	// Zero-relevance sources still get the floor.
	res = Synthesize("solar panel", []types.ResearchSource{solarSource(0), solarSource(0)})
	if res.Confidence != ConfidenceFloor {
		t.Errorf("zero-relevance confidence = %f, want floor", res.Confidence)
	}
}

func TestEvidenceImportanceTiers(t *testing.T) {
	res := Synthesize("solar panel efficiency", []types.ResearchSource{solarSource(10)})

	if len(res.Evidence) == 0 {
		t.Fatal("no evidence extracted")
	}
	for _, ev := range res.Evidence {
		if !strings.HasPrefix(ev.ID, "ev-") {
			t.Errorf("ID = %q, want ev-N", ev.ID)
		}
		if !strings.HasPrefix(ev.FragmentURL, "https://example.org/solar#:~:text=") {
			t.Errorf("FragmentURL = %q", ev.FragmentURL)
		}
	}
	// "Solar panel efficiency reached a new record this year." covers all
	// three query terms.
	var found bool
	for _, ev := range res.Evidence {
		if strings.HasPrefix(ev.Quote, "Solar panel efficiency reached") {
			found = true
			if ev.Importance != types.ImportanceHigh {
				t.Errorf("Importance = %q, want high", ev.Importance)
			}
		}
	}
	if !found {
		t.Error("expected the three-term sentence in evidence")
	}
}

func TestFragmentURL(t *testing.T) {
	short := FragmentURL("https://x.org/a", "short quote")
	if short != "https://x.org/a#:~:text=short%20quote" {
		t.Errorf("short = %q", short)
	}

	long := FragmentURL("https://x.org/a", strings.Repeat("word ", 40))
	if !strings.Contains(long, ",") {
		t.Error("long quote should anchor as a first,last range")
	}
	if strings.Contains(long, " ") || strings.Contains(long, "+") {
		t.Errorf("unencoded characters in %q", long)
	}
}

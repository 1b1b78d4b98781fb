// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package materialize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// chromeSelectors are page furniture removed before extracting text.
var chromeSelectors = []string{
	"script", "style", "noscript", "iframe", "svg",
	"nav", "header", "footer", "aside", "form",
}

// contentSelectors are tried in order; the first with a substantial amount
// of text wins. Body is the last resort.
var contentSelectors = []string{
	"article", "main", "[role=main]", "#content", ".content", ".post", ".article-body",
}

// minContentChars is the threshold below which a content candidate is
// considered boilerplate and the search continues.
const minContentChars = 200

// ExtractReadable parses HTML and returns the page title and a
// whitespace-collapsed readable text body. Unparseable or empty input
// yields empty strings.
func ExtractReadable(html string) (title, text string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", ""
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())

	for _, sel := range chromeSelectors {
		doc.Find(sel).Remove()
	}

	for _, sel := range contentSelectors {
		candidate := collapse(doc.Find(sel).First().Text())
		if len(candidate) >= minContentChars {
			return title, candidate
		}
	}
	return title, collapse(doc.Find("body").Text())
}

// collapse normalizes all runs of whitespace to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

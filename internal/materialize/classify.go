// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package materialize

import (
	"strings"

	"github.com/pdiddy/claimcheck/pkg/types"
)

// classifyRule maps domain and title patterns to a source type. Rules are
// checked in order; the first match wins. Kept as a data table so the
// heuristics can be tested and extended without touching pipeline flow.
type classifyRule struct {
	Type types.SourceType

	// DomainSuffixes match the end of the domain (".edu", "arxiv.org").
	DomainSuffixes []string

	// DomainContains match anywhere in the domain ("pubmed").
	DomainContains []string

	// TitleContains match the lowercased title ("preprint").
	TitleContains []string
}

// classifyRules is the default rule table.
var classifyRules = []classifyRule{
	{
		Type:           types.SourceAcademic,
		DomainSuffixes: []string{".edu", "arxiv.org", "doi.org", "nature.com", "sciencedirect.com", "springer.com", "ieee.org", "acm.org", "semanticscholar.org", "biorxiv.org", "ssrn.com"},
		DomainContains: []string{"pubmed", "ncbi.nlm.nih.gov"},
		TitleContains:  []string{"preprint", "journal of", "proceedings of"},
	},
	{
		Type:           types.SourceDocumentation,
		DomainSuffixes: []string{"readthedocs.io", "wikipedia.org", "pkg.go.dev", "man7.org", "learn.microsoft.com"},
		DomainContains: []string{"docs.", "developer.", "documentation."},
	},
	{
		Type:           types.SourceNews,
		DomainSuffixes: []string{"reuters.com", "apnews.com", "bbc.com", "bbc.co.uk", "nytimes.com", "theguardian.com", "cnn.com", "washingtonpost.com", "bloomberg.com", "ft.com", "wsj.com", "npr.org", "aljazeera.com", "economist.com", "axios.com"},
	},
	{
		Type:           types.SourceForum,
		DomainSuffixes: []string{"reddit.com", "news.ycombinator.com", "stackoverflow.com", "quora.com", "lobste.rs"},
		DomainContains: []string{"stackexchange", "forum.", "discourse."},
	},
}

// Classify infers the source type from a domain and title. Unmatched
// sources are typed other.
func Classify(domain, title string) types.SourceType {
	domain = strings.ToLower(domain)
	title = strings.ToLower(title)

	for _, rule := range classifyRules {
		for _, suffix := range rule.DomainSuffixes {
			if domainMatches(domain, suffix) {
				return rule.Type
			}
		}
		for _, sub := range rule.DomainContains {
			if strings.Contains(domain, sub) {
				return rule.Type
			}
		}
		for _, sub := range rule.TitleContains {
			if strings.Contains(title, sub) {
				return rule.Type
			}
		}
	}
	return types.SourceOther
}

// domainMatches reports whether domain equals suffix or is a subdomain of
// it. A leading dot ("edu" rules) matches any registrable suffix.
func domainMatches(domain, suffix string) bool {
	if strings.HasPrefix(suffix, ".") {
		return strings.HasSuffix(domain, suffix)
	}
	return domain == suffix || strings.HasSuffix(domain, "."+suffix)
}

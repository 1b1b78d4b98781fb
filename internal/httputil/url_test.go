// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import "testing"

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases host", "https://Example.COM/Page", "https://example.com/Page"},
		{"strips fragment", "https://example.com/page#section", "https://example.com/page"},
		{"strips default https port", "https://example.com:443/page", "https://example.com/page"},
		{"strips default http port", "http://example.com:80/page", "http://example.com/page"},
		{"strips tracking params", "https://example.com/page?utm_source=x&id=7", "https://example.com/page?id=7"},
		{"trims trailing slash", "https://example.com/page/", "https://example.com/page"},
		{"keeps meaningful query", "https://example.com/search?q=go", "https://example.com/search?q=go"},
		{"unparseable returned trimmed", "  not a url  ", "not a url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonicalize(tt.in); got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeIsStable(t *testing.T) {
	once := Canonicalize("https://Example.com:443/a/?utm_campaign=z#frag")
	twice := Canonicalize(once)
	if once != twice {
		t.Errorf("Canonicalize not idempotent: %q then %q", once, twice)
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.example.com/page", "example.com"},
		{"https://docs.python.org/3/", "docs.python.org"},
		{"http://EXAMPLE.org:8080/x", "example.org"},
		{"garbage", ""},
	}
	for _, tt := range tests {
		if got := Domain(tt.in); got != tt.want {
			t.Errorf("Domain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

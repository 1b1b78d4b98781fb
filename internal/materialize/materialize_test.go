// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package materialize

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/claimcheck/internal/cache"
	"github.com/pdiddy/claimcheck/pkg/types"
)

// --- mock fetcher ---

type mockFetcher struct {
	pages map[string]*Page
	err   error
	calls int32
}

func (f *mockFetcher) FetchPage(_ context.Context, url string, _ time.Duration, _ bool) (*Page, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[url], nil
}

func pageHTML(title, body string) string {
	return fmt.Sprintf("<html><head><title>%s</title></head><body><article>%s</article></body></html>", title, body)
}

var longBody = strings.Repeat("The quick brown fox jumps over the lazy dog. ", 10)

func TestMaterializeViaFetcher(t *testing.T) {
	f := &mockFetcher{pages: map[string]*Page{
		"https://example.com/a": {HTML: pageHTML("Page A", longBody), FinalURL: "https://example.com/a"},
	}}
	m := &Materializer{Fetcher: f, Cache: cache.NewMemoryStore()}

	sources := m.Materialize(context.Background(), []string{"https://example.com/a"}, nil)

	if len(sources) != 1 {
		t.Fatalf("len(sources) = %d, want 1", len(sources))
	}
	src := sources[0]
	if src.Title != "Page A" {
		t.Errorf("Title = %q", src.Title)
	}
	if !strings.Contains(src.FullText, "quick brown fox") {
		t.Errorf("FullText = %q", src.FullText)
	}
	if src.Domain != "example.com" {
		t.Errorf("Domain = %q", src.Domain)
	}
}

func TestMaterializeFallsBackToPlainHTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(pageHTML("Fallback Page", longBody)))
	}))
	defer ts.Close()

	// Collaborator always fails; the plain fetch must still materialize.
	m := &Materializer{
		Fetcher: &mockFetcher{err: fmt.Errorf("render sandbox unavailable")},
		Cache:   cache.NewMemoryStore(),
		Client:  ts.Client(),
	}

	sources := m.Materialize(context.Background(), []string{ts.URL + "/page"}, nil)

	if len(sources) != 1 {
		t.Fatalf("len(sources) = %d, want 1", len(sources))
	}
	if sources[0].Title != "Fallback Page" {
		t.Errorf("Title = %q", sources[0].Title)
	}
}

func TestMaterializeFallsBackWhenRenderedPageUnreadable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(pageHTML("Plain Article", longBody)))
	}))
	defer ts.Close()

	// Collaborator succeeds but its page extracts to nothing readable;
	// the plain fetch of the same URL must still materialize the source.
	f := &mockFetcher{pages: map[string]*Page{
		ts.URL + "/page": {HTML: "<html><body><script>x()</script></body></html>", FinalURL: ts.URL + "/page"},
	}}
	m := &Materializer{
		Fetcher: f,
		Cache:   cache.NewMemoryStore(),
		Client:  ts.Client(),
	}

	sources := m.Materialize(context.Background(), []string{ts.URL + "/page"}, nil)

	if len(sources) != 1 {
		t.Fatalf("len(sources) = %d, want 1 via the plain-HTTP fallback", len(sources))
	}
	if sources[0].Title != "Plain Article" {
		t.Errorf("Title = %q", sources[0].Title)
	}
	if !strings.Contains(sources[0].FullText, "quick brown fox") {
		t.Errorf("FullText = %q", sources[0].FullText)
	}
}

func TestMaterializeDropsUnreachableURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/good" {
			w.Write([]byte(pageHTML("Good", longBody)))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	m := &Materializer{Cache: cache.NewMemoryStore(), Client: ts.Client()}

	sources := m.Materialize(context.Background(), []string{ts.URL + "/dead", ts.URL + "/good"}, nil)

	if len(sources) != 1 {
		t.Fatalf("len(sources) = %d, want 1 (dead URL dropped silently)", len(sources))
	}
	if sources[0].Title != "Good" {
		t.Errorf("Title = %q", sources[0].Title)
	}
}

func TestMaterializeUsesCache(t *testing.T) {
	store := cache.NewMemoryStore()
	f := &mockFetcher{pages: map[string]*Page{
		"https://example.com/cached": {HTML: pageHTML("Cached", longBody), FinalURL: "https://example.com/cached"},
	}}
	m := &Materializer{Fetcher: f, Cache: store}

	urls := []string{"https://example.com/cached"}
	m.Materialize(context.Background(), urls, nil)
	m.Materialize(context.Background(), urls, nil)

	if got := atomic.LoadInt32(&f.calls); got != 1 {
		t.Errorf("fetcher calls = %d, want 1 (second run served from cache)", got)
	}
}

func TestMaterializeCacheHitRefreshesHint(t *testing.T) {
	store := cache.NewMemoryStore()
	store.Put("https://example.com/x", &types.ResearchSource{
		URL:      "https://example.com/x",
		Title:    "X",
		FullText: longBody,
		Snippet:  "old snippet",
	})

	m := &Materializer{Cache: store}
	hints := map[string]types.RawHit{
		"https://example.com/x": {Snippet: "fresh snippet", Score: 0.9, Engine: "brave"},
	}

	sources := m.Materialize(context.Background(), []string{"https://example.com/x"}, hints)

	if len(sources) != 1 {
		t.Fatal("expected cached source")
	}
	if sources[0].Snippet != "fresh snippet" || sources[0].EngineScore != 0.9 {
		t.Errorf("hint not merged: %+v", sources[0])
	}
	if sources[0].FullText != longBody {
		t.Error("cached content must survive the refresh")
	}
}

func TestMaterializeCachesUnderBothURLs(t *testing.T) {
	store := cache.NewMemoryStore()
	f := &mockFetcher{pages: map[string]*Page{
		"https://example.com/short": {
			HTML:     pageHTML("Moved", longBody),
			FinalURL: "https://example.com/articles/full-story",
		},
	}}
	m := &Materializer{Fetcher: f, Cache: store}

	m.Materialize(context.Background(), []string{"https://example.com/short"}, nil)

	if _, ok := store.Get("https://example.com/short"); !ok {
		t.Error("requested URL not cached")
	}
	if _, ok := store.Get("https://example.com/articles/full-story"); !ok {
		t.Error("final URL not cached")
	}
}

func TestMaterializePreservesInputOrder(t *testing.T) {
	pages := make(map[string]*Page)
	var urls []string
	for i := 0; i < 12; i++ {
		u := fmt.Sprintf("https://example.com/%d", i)
		urls = append(urls, u)
		pages[u] = &Page{HTML: pageHTML(fmt.Sprintf("Page %d", i), longBody), FinalURL: u}
	}
	m := &Materializer{Fetcher: &mockFetcher{pages: pages}, Cache: cache.NewMemoryStore()}

	sources := m.Materialize(context.Background(), urls, nil)

	if len(sources) != 12 {
		t.Fatalf("len(sources) = %d, want 12", len(sources))
	}
	for i, src := range sources {
		if want := fmt.Sprintf("Page %d", i); src.Title != want {
			t.Errorf("sources[%d].Title = %q, want %q", i, src.Title, want)
		}
	}
}

// --- ExtractReadable ---

func TestExtractReadablePrefersArticle(t *testing.T) {
	html := `<html><head><title>T</title></head><body>
		<nav>Home About Contact</nav>
		<article>` + longBody + `</article>
		<footer>copyright</footer>
	</body></html>`

	title, text := ExtractReadable(html)

	if title != "T" {
		t.Errorf("title = %q", title)
	}
	if strings.Contains(text, "Home About") || strings.Contains(text, "copyright") {
		t.Errorf("page furniture leaked into text: %q", text)
	}
	if !strings.Contains(text, "quick brown fox") {
		t.Errorf("article text missing: %q", text)
	}
}

func TestExtractReadableFallsBackToBody(t *testing.T) {
	html := "<html><body><p>" + longBody + "</p></body></html>"
	_, text := ExtractReadable(html)
	if !strings.Contains(text, "quick brown fox") {
		t.Errorf("body fallback failed: %q", text)
	}
}

func TestExtractReadableCollapsesWhitespace(t *testing.T) {
	_, text := ExtractReadable("<body><p>a\n\n  b\t c</p></body>")
	if text != "a b c" {
		t.Errorf("text = %q, want %q", text, "a b c")
	}
}

// --- Classify ---

func TestClassify(t *testing.T) {
	tests := []struct {
		domain string
		title  string
		want   types.SourceType
	}{
		{"web.mit.edu", "", types.SourceAcademic},
		{"arxiv.org", "", types.SourceAcademic},
		{"pubmed.ncbi.nlm.nih.gov", "", types.SourceAcademic},
		{"example.com", "A preprint on fusion", types.SourceAcademic},
		{"docs.python.org", "", types.SourceDocumentation},
		{"en.wikipedia.org", "", types.SourceDocumentation},
		{"reuters.com", "", types.SourceNews},
		{"bbc.co.uk", "", types.SourceNews},
		{"reddit.com", "", types.SourceForum},
		{"math.stackexchange.com", "", types.SourceForum},
		{"example.com", "Random page", types.SourceOther},
		{"notarxiv.org", "", types.SourceOther},
	}
	for _, tt := range tests {
		if got := Classify(tt.domain, tt.title); got != tt.want {
			t.Errorf("Classify(%q, %q) = %q, want %q", tt.domain, tt.title, got, tt.want)
		}
	}
}

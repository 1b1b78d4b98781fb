package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "claimcheck/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the source aggregation stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the number of unique URLs the aggregator targets
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// EnableBrave controls whether the Brave Search backend is used.
	// It also requires BraveAPIKey to be set.
	EnableBrave bool `json:"enable_brave" yaml:"enable_brave"`

	// BraveAPIKey authenticates against the Brave Search API.
	BraveAPIKey string `json:"brave_api_key,omitempty" yaml:"brave_api_key,omitempty"`

	// EnableSearx controls whether a SearXNG instance is queried.
	EnableSearx bool `json:"enable_searx" yaml:"enable_searx"`

	// SearxURL is the base URL of the SearXNG instance.
	SearxURL string `json:"searx_url,omitempty" yaml:"searx_url,omitempty"`

	// EnableWikipedia controls whether the Wikipedia backend is used.
	EnableWikipedia bool `json:"enable_wikipedia" yaml:"enable_wikipedia"`

	// PreferredEngine receives a small rerank bonus for its hits.
	PreferredEngine string `json:"preferred_engine,omitempty" yaml:"preferred_engine,omitempty"`
}

// FetchConfig holds settings for the content materialization stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// PageTimeout bounds a single page fetch (default 12s).
	PageTimeout time.Duration `json:"page_timeout" yaml:"page_timeout"`
}

// CacheConfig holds settings for the content cache.
type CacheConfig struct {
	// Path is the SQLite database file for the persistent cache. Empty
	// selects the in-memory store.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Search   SearchConfig    `json:"search" yaml:"search"`
	Fetch    FetchConfig     `json:"fetch" yaml:"fetch"`
	Cache    CacheConfig     `json:"cache" yaml:"cache"`
	Research ResearchOptions `json:"research" yaml:"research"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"net/http"

	"github.com/pdiddy/claimcheck/pkg/types"
)

// Enabled builds the primary backend list and the supplementary scrape
// backend from configuration. A backend is included only when its enable
// flag is set and its credentials are present; the scrape backend needs
// neither. Order is priority order for deduplication.
func Enabled(cfg types.SearchConfig, client *http.Client) (primaries []Backend, supplement Backend) {
	if cfg.EnableBrave && cfg.BraveAPIKey != "" {
		primaries = append(primaries, &BraveBackend{
			Client:    client,
			APIKey:    cfg.BraveAPIKey,
			UserAgent: cfg.UserAgent,
		})
	}
	if cfg.EnableSearx && cfg.SearxURL != "" {
		primaries = append(primaries, &SearxBackend{
			Client:    client,
			BaseURL:   cfg.SearxURL,
			UserAgent: cfg.UserAgent,
		})
	}
	if cfg.EnableWikipedia {
		primaries = append(primaries, &WikipediaBackend{
			Client:    client,
			UserAgent: cfg.UserAgent,
		})
	}
	return primaries, &ScrapeBackend{Client: client, UserAgent: cfg.UserAgent}
}

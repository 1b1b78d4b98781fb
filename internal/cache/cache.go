// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores fetched readable sources keyed by canonical URL.
// Entries expire after a fixed TTL; a stale entry is treated as a miss on
// read and left in place. Writes are unconditional overwrites, so
// concurrent materialization of the same URL resolves last-writer-wins.
package cache

import (
	"time"

	"github.com/pdiddy/claimcheck/pkg/types"
)

// TTL is how long a cached source stays fresh.
const TTL = time.Hour

// timeNow is stubbed in tests to exercise expiry without sleeping.
var timeNow = time.Now

// Store is the content cache consulted and populated by the materializer.
// Get canonicalizes the URL before key comparison and reports a miss for
// entries older than TTL. Put overwrites unconditionally.
type Store interface {
	Get(url string) (*types.ResearchSource, bool)
	Put(url string, src *types.ResearchSource)
}

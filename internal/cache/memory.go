// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"sync"
	"time"

	"github.com/pdiddy/claimcheck/internal/httputil"
	"github.com/pdiddy/claimcheck/pkg/types"
)

type entry struct {
	source   types.ResearchSource
	cachedAt time.Time
}

// MemoryStore is the default in-process cache: a map under an RWMutex.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemoryStore returns an empty in-memory cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry)}
}

// Get returns a copy of the cached source for url, or a miss when absent
// or stale.
func (s *MemoryStore) Get(url string) (*types.ResearchSource, bool) {
	key := httputil.Canonicalize(url)

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || timeNow().Sub(e.cachedAt) > TTL {
		return nil, false
	}
	src := e.source
	return &src, true
}

// Put stores a copy of src under the canonical form of url.
func (s *MemoryStore) Put(url string, src *types.ResearchSource) {
	if src == nil {
		return
	}
	key := httputil.Canonicalize(url)

	s.mu.Lock()
	s.entries[key] = entry{source: *src, cachedAt: timeNow()}
	s.mu.Unlock()
}

// Len reports the number of entries, fresh or stale.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear drops all entries.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

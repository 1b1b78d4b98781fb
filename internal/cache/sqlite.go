// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/claimcheck/internal/httputil"
	"github.com/pdiddy/claimcheck/pkg/types"
)

// SQLiteStore persists cached sources across runs. Sources are serialized
// as JSON; freshness is checked on read against the cached_at column.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

// NewSQLiteStore opens or creates the cache database at path, creating the
// parent directory and schema as needed.
func NewSQLiteStore(path string, log *zap.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS sources (
		url TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		cached_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}
	return &SQLiteStore{db: db, log: log}, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get returns the cached source for url, or a miss when absent, stale, or
// unreadable. Stale rows are left in place; Put overwrites them.
func (s *SQLiteStore) Get(url string) (*types.ResearchSource, bool) {
	key := httputil.Canonicalize(url)

	var (
		data     []byte
		cachedAt int64
	)
	err := s.db.QueryRow(
		`SELECT source, cached_at FROM sources WHERE url = ?`, key,
	).Scan(&data, &cachedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			s.log.Warn("cache read failed", zap.String("url", key), zap.Error(err))
		}
		return nil, false
	}

	if timeNow().Unix()-cachedAt > int64(TTL.Seconds()) {
		return nil, false
	}

	var src types.ResearchSource
	if err := json.Unmarshal(data, &src); err != nil {
		s.log.Warn("cache entry corrupt", zap.String("url", key), zap.Error(err))
		return nil, false
	}
	return &src, true
}

// Put stores src under the canonical form of url, replacing any prior row.
// Write failures are logged and swallowed: a cache that cannot write only
// costs a refetch.
func (s *SQLiteStore) Put(url string, src *types.ResearchSource) {
	if src == nil {
		return
	}
	key := httputil.Canonicalize(url)

	data, err := json.Marshal(src)
	if err != nil {
		s.log.Warn("cache entry not serializable", zap.String("url", key), zap.Error(err))
		return
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO sources (url, source, cached_at) VALUES (?, ?, ?)`,
		key, data, timeNow().Unix(),
	)
	if err != nil {
		s.log.Warn("cache write failed", zap.String("url", key), zap.Error(err))
	}
}

// Stats reports the total and fresh entry counts.
func (s *SQLiteStore) Stats() (total, fresh int, err error) {
	if err = s.db.QueryRow(`SELECT COUNT(*) FROM sources`).Scan(&total); err != nil {
		return 0, 0, err
	}
	cutoff := timeNow().Add(-TTL).Unix()
	err = s.db.QueryRow(`SELECT COUNT(*) FROM sources WHERE cached_at > ?`, cutoff).Scan(&fresh)
	return total, fresh, err
}

// Clear drops all entries.
func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM sources`)
	return err
}

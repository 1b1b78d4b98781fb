// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docstore persists ingested documents and their audits so a
// document can be listed, shown, and re-verified later without re-reading
// the original file.
// Implements: prd013-document (R7, reverify);
//
//	docs/ARCHITECTURE § Document store.
package docstore

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/claimcheck/pkg/types"
)

// idBytes of the content hash go into a document ID.
const idBytes = 6

// Document is a stored document with its ingestion metadata.
type Document struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Text       string    `json:"text,omitempty" yaml:"text,omitempty"`
	IngestedAt time.Time `json:"ingested_at" yaml:"ingested_at"`
}

// Store manages the document database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the document database at path, creating the schema
// and any missing parent directories.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating document store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening document store: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		text        TEXT NOT NULL,
		ingested_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS audits (
		document_id TEXT PRIMARY KEY REFERENCES documents(id) ON DELETE CASCADE,
		audit       TEXT NOT NULL,
		updated_at  INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating document store schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DocumentID derives the stable identifier for a document's text.
func DocumentID(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "doc-" + hex.EncodeToString(sum[:idBytes])
}

// SaveDocument stores a document and returns its ID. Re-ingesting the same
// text is idempotent: the row is replaced under the same ID.
func (s *Store) SaveDocument(ctx context.Context, name, text string) (string, error) {
	id := DocumentID(text)
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (id, name, text, ingested_at) VALUES (?, ?, ?, ?)`,
		id, name, text, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("saving document %s: %w", id, err)
	}
	return id, nil
}

// GetDocument loads one document by ID, including its text.
func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, text, ingested_at FROM documents WHERE id = ?`, id)

	var doc Document
	var ingested int64
	if err := row.Scan(&doc.ID, &doc.Name, &doc.Text, &ingested); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("document %s not found", id)
		}
		return nil, fmt.Errorf("loading document %s: %w", id, err)
	}
	doc.IngestedAt = time.Unix(ingested, 0)
	return &doc, nil
}

// ListDocuments returns all stored documents, newest first, without text.
func (s *Store) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, ingested_at FROM documents ORDER BY ingested_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var ingested int64
		if err := rows.Scan(&doc.ID, &doc.Name, &ingested); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		doc.IngestedAt = time.Unix(ingested, 0)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// SaveAudit stores the audit for a document, replacing any previous one.
func (s *Store) SaveAudit(ctx context.Context, id string, audit *types.DocumentAudit) error {
	data, err := json.Marshal(audit)
	if err != nil {
		return fmt.Errorf("marshaling audit for %s: %w", id, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO audits (document_id, audit, updated_at) VALUES (?, ?, ?)`,
		id, string(data), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("saving audit for %s: %w", id, err)
	}
	return nil
}

// GetAudit loads the stored audit for a document.
func (s *Store) GetAudit(ctx context.Context, id string) (*types.DocumentAudit, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT audit FROM audits WHERE document_id = ?`, id)

	var data string
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no audit stored for document %s", id)
		}
		return nil, fmt.Errorf("loading audit for %s: %w", id, err)
	}

	var audit types.DocumentAudit
	if err := json.Unmarshal([]byte(data), &audit); err != nil {
		return nil, fmt.Errorf("parsing stored audit for %s: %w", id, err)
	}
	return &audit, nil
}

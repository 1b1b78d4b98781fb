// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docstore

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/claimcheck/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "documents.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDocumentIDStable(t *testing.T) {
	a := DocumentID("solar output grew in 2024")
	b := DocumentID("solar output grew in 2024")
	c := DocumentID("solar output fell in 2024")

	if a != b {
		t.Errorf("same text produced different IDs: %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("different texts produced the same ID %s", a)
	}
	if !strings.HasPrefix(a, "doc-") || len(a) != len("doc-")+idBytes*2 {
		t.Errorf("unexpected ID shape %q", a)
	}
}

func TestSaveDocumentRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.SaveDocument(ctx, "report.md", "Revenue grew 20% in Q3.")
	if err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	doc, err := store.GetDocument(ctx, id)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if doc.Name != "report.md" {
		t.Errorf("Name = %q, want report.md", doc.Name)
	}
	if doc.Text != "Revenue grew 20% in Q3." {
		t.Errorf("Text = %q", doc.Text)
	}
	if doc.IngestedAt.IsZero() {
		t.Error("IngestedAt not set")
	}
}

func TestSaveDocumentIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.SaveDocument(ctx, "a.md", "same text")
	if err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	second, err := store.SaveDocument(ctx, "renamed.md", "same text")
	if err != nil {
		t.Fatalf("SaveDocument (again): %v", err)
	}
	if first != second {
		t.Fatalf("re-ingest changed ID: %s vs %s", first, second)
	}

	docs, err := store.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	if docs[0].Name != "renamed.md" {
		t.Errorf("Name = %q, want the replacing name", docs[0].Name)
	}
}

func TestListDocumentsOmitsText(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.SaveDocument(ctx, "a.md", "alpha body"); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	if _, err := store.SaveDocument(ctx, "b.md", "beta body"); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	docs, err := store.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	for _, doc := range docs {
		if doc.Text != "" {
			t.Errorf("list included text for %s", doc.ID)
		}
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetDocument(context.Background(), "doc-missing"); err == nil {
		t.Fatal("expected an error for a missing document")
	}
}

func TestAuditRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.SaveDocument(ctx, "audited.md", "Solar capacity doubled in 2024.")
	if err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	audit := &types.DocumentAudit{
		Sections: []types.DocumentSection{{Title: "Introduction", Content: "Solar capacity doubled in 2024.", End: 31}},
		Claims: []types.DocumentClaim{{
			ID:      "claim-1",
			Text:    "Solar capacity doubled in 2024.",
			Section: "Introduction",
			Verdict: &types.ClaimVerdict{Status: types.ClaimVerified, Confidence: 0.8},
		}},
		Trail: []types.AuditTrailEntry{{
			ClaimID:    "claim-1",
			Status:     types.ClaimVerified,
			Supporting: 2,
			Confidence: 0.8,
			CheckedAt:  time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		}},
	}
	if err := store.SaveAudit(ctx, id, audit); err != nil {
		t.Fatalf("SaveAudit: %v", err)
	}

	got, err := store.GetAudit(ctx, id)
	if err != nil {
		t.Fatalf("GetAudit: %v", err)
	}
	if len(got.Claims) != 1 || got.Claims[0].Verdict == nil {
		t.Fatalf("audit did not survive the round trip: %+v", got)
	}
	if got.Claims[0].Verdict.Status != types.ClaimVerified {
		t.Errorf("Status = %s, want verified", got.Claims[0].Verdict.Status)
	}
	if !got.Trail[0].CheckedAt.Equal(audit.Trail[0].CheckedAt) {
		t.Errorf("CheckedAt = %v, want %v", got.Trail[0].CheckedAt, audit.Trail[0].CheckedAt)
	}
}

func TestSaveAuditReplaces(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.SaveDocument(ctx, "a.md", "text under audit")
	if err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	first := &types.DocumentAudit{Claims: []types.DocumentClaim{{ID: "claim-1", Text: "one"}}}
	second := &types.DocumentAudit{Claims: []types.DocumentClaim{
		{ID: "claim-1", Text: "one"},
		{ID: "claim-2", Text: "two"},
	}}
	if err := store.SaveAudit(ctx, id, first); err != nil {
		t.Fatalf("SaveAudit: %v", err)
	}
	if err := store.SaveAudit(ctx, id, second); err != nil {
		t.Fatalf("SaveAudit (replace): %v", err)
	}

	got, err := store.GetAudit(ctx, id)
	if err != nil {
		t.Fatalf("GetAudit: %v", err)
	}
	if len(got.Claims) != 2 {
		t.Errorf("got %d claims, want the replacing audit's 2", len(got.Claims))
	}
}

func TestGetAuditNotFound(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetAudit(context.Background(), "doc-missing"); err == nil {
		t.Fatal("expected an error for a document with no audit")
	}
}

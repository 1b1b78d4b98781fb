// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/claimcheck/internal/docstore"
	"github.com/pdiddy/claimcheck/internal/document"
	"github.com/pdiddy/claimcheck/internal/report"
	"github.com/pdiddy/claimcheck/pkg/types"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Ingest, audit, and re-verify documents",
}

var documentIngestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Audit a document: sections, entities, timeline, cross-checked claims",
	Long: `Ingest reads a text or markdown document, segments it by headings, extracts
entities and a timeline, and cross-checks every declarative claim against the
research pipeline. The audit lists verified facts, flagged assumptions, and a
per-claim trail.

Claims are checked in small concurrent batches; a failed check degrades that
claim to unverified instead of failing the audit. The document and its audit
are stored so they can be shown or re-verified later by ID.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}
		name := filepath.Base(args[0])

		checker, closeEngine, err := buildChecker()
		if err != nil {
			return err
		}
		defer closeEngine()

		audit := checker.Audit(cmd.Context(), string(text))

		store, err := openDocStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.SaveDocument(cmd.Context(), name, string(text))
		if err != nil {
			return err
		}
		if err := store.SaveAudit(cmd.Context(), id, audit); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Stored document %s\n", id)

		if err := maybeWriteReport(cmd, name, audit); err != nil {
			return err
		}
		return renderAudit(cmd, audit)
	},
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openDocStore()
		if err != nil {
			return err
		}
		defer store.Close()

		docs, err := store.ListDocuments(cmd.Context())
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Println("no documents stored")
			return nil
		}
		for _, doc := range docs {
			fmt.Printf("%s  %s  %s\n", doc.ID, doc.IngestedAt.Format("2006-01-02 15:04"), doc.Name)
		}
		return nil
	},
}

var documentShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the stored audit for a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openDocStore()
		if err != nil {
			return err
		}
		defer store.Close()

		audit, err := store.GetAudit(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return renderAudit(cmd, audit)
	},
}

var documentReverifyCmd = &cobra.Command{
	Use:   "reverify <id>",
	Short: "Re-run claim cross-checks for a stored document",
	Long: `Reverify re-runs only the claim cross-checks of a stored audit against the
current state of the web: sections, entities, and the timeline are kept as
ingested, while verdicts, facts, assumptions, and the trail are recomputed
and stored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openDocStore()
		if err != nil {
			return err
		}
		defer store.Close()

		doc, err := store.GetDocument(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		audit, err := store.GetAudit(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		checker, closeEngine, err := buildChecker()
		if err != nil {
			return err
		}
		defer closeEngine()

		checker.Reverify(cmd.Context(), audit)
		if err := store.SaveAudit(cmd.Context(), doc.ID, audit); err != nil {
			return err
		}

		if err := maybeWriteReport(cmd, doc.Name, audit); err != nil {
			return err
		}
		return renderAudit(cmd, audit)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{documentIngestCmd, documentShowCmd, documentReverifyCmd} {
		cmd.Flags().Bool("json", false, "output the full audit as JSON")
		cmd.Flags().Bool("yaml", false, "output the full audit as YAML")
	}
	documentIngestCmd.Flags().String("report", "", "also write a Markdown report to this path")
	documentReverifyCmd.Flags().String("report", "", "also write a Markdown report to this path")

	documentCmd.AddCommand(documentIngestCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentReverifyCmd)
	rootCmd.AddCommand(documentCmd)
}

// buildChecker wires a claim cross-checker on top of the research engine.
func buildChecker() (*document.Checker, func(), error) {
	engine, closeStore, err := buildEngine()
	if err != nil {
		return nil, nil, err
	}
	return &document.Checker{
		Researcher: engine,
		Options:    configResearchOptions(),
		Log:        log,
	}, closeStore, nil
}

func openDocStore() (*docstore.Store, error) {
	return docstore.Open(viper.GetString("store.path"))
}

func maybeWriteReport(cmd *cobra.Command, name string, audit *types.DocumentAudit) error {
	path, _ := cmd.Flags().GetString("report")
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()
	return report.Audit(f, name, audit)
}

func renderAudit(cmd *cobra.Command, audit *types.DocumentAudit) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	switch {
	case asJSON:
		return writeJSON(audit)
	case asYAML:
		return writeYAML(audit)
	}

	fmt.Printf("Sections: %d  Entities: %d  Timeline events: %d  Claims: %d\n\n",
		len(audit.Sections), len(audit.Entities), len(audit.Timeline), len(audit.Claims))

	for _, claim := range audit.Claims {
		status := types.ClaimUnverified
		confidence := 0.0
		if claim.Verdict != nil {
			status = claim.Verdict.Status
			confidence = claim.Verdict.Confidence
		}
		fmt.Printf("[%s] %-10s (%.2f) %s\n", claim.ID, status, confidence, claim.Text)
	}

	if len(audit.Assumptions) > 0 {
		fmt.Println("\nAssumptions:")
		for _, a := range audit.Assumptions {
			fmt.Printf("  %s (%s, %s): %s\n", a.ClaimID, a.Severity, a.Reason, a.Text)
		}
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/claimcheck/internal/report"
	"github.com/pdiddy/claimcheck/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research <query>",
	Short: "Research a query and synthesize a cited summary",
	Long: `Research fans the query out to the enabled search backends, fetches and
extracts readable content from the hits, ranks and diversifies the sources,
and synthesizes a bracket-cited summary with a verification scorecard.

Backend or fetch failures never fail the run; they shrink it. A query with
no reachable sources yields a placeholder result with zero confidence.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, closeStore, err := buildEngine()
		if err != nil {
			return err
		}
		defer closeStore()

		// Defaults, overlaid by config file, overlaid by explicit flags.
		opts := configResearchOptions()
		if cmd.Flags().Changed("max-sources") {
			opts.MaxSources, _ = cmd.Flags().GetInt("max-sources")
		}
		if cmd.Flags().Changed("recency-weight") {
			opts.RecencyWeight, _ = cmd.Flags().GetFloat64("recency-weight")
		}
		if cmd.Flags().Changed("authority-weight") {
			opts.AuthorityWeight, _ = cmd.Flags().GetFloat64("authority-weight")
		}
		opts.Region, _ = cmd.Flags().GetString("region")
		opts.IncludeCounterpoints, _ = cmd.Flags().GetBool("counterpoints")

		result, err := engine.Research(cmd.Context(), strings.Join(args, " "), opts)
		if err != nil {
			return err
		}

		if path, _ := cmd.Flags().GetString("report"); path != "" {
			if err := writeResearchReport(path, result); err != nil {
				return err
			}
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		asYAML, _ := cmd.Flags().GetBool("yaml")
		return writeResult(result, asJSON, asYAML)
	},
}

func init() {
	researchCmd.Flags().Int("max-sources", 12, "maximum sources in the result")
	researchCmd.Flags().String("region", "", "region hint appended to the query (\"global\" for none)")
	researchCmd.Flags().Bool("counterpoints", false, "detect contradictions between sources")
	researchCmd.Flags().Float64("recency-weight", 0.5, "recency scoring weight in [0,1]")
	researchCmd.Flags().Float64("authority-weight", 0.5, "source-type authority weight in [0,1]")
	researchCmd.Flags().Bool("json", false, "output the full result as JSON")
	researchCmd.Flags().Bool("yaml", false, "output the full result as YAML")
	researchCmd.Flags().String("report", "", "also write a Markdown report to this path")

	rootCmd.AddCommand(researchCmd)
}

// writeResult renders a value as JSON, YAML, or the human-readable default.
func writeResult(result *types.ResearchResult, asJSON, asYAML bool) error {
	switch {
	case asJSON:
		return writeJSON(result)
	case asYAML:
		return writeYAML(result)
	}

	fmt.Printf("Query: %s\n", result.Query)
	fmt.Printf("Confidence: %.2f\n\n", result.Confidence)
	fmt.Println(result.Summary)

	if len(result.Sources) > 0 {
		fmt.Println("\nSources:")
		for i, src := range result.Sources {
			fmt.Printf("  [%d] %s (%s, %s)\n      %s\n", i+1, src.Title, src.Domain, src.Type, src.URL)
		}
	}
	for _, c := range result.Contradictions {
		fmt.Printf("\nContradiction (%s): %s\n", c.Severity, c.Summary)
	}
	if v := result.Verification; v != nil {
		fmt.Printf("\nVerified: %v (coverage %.0f%%, risk %.2f)\n",
			v.Verified, v.CitationCoverage, v.HallucinationRisk)
		for _, s := range v.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
	return nil
}

// configResearchOptions overlays the config file onto the documented
// defaults. Weights are only taken from config when the key is present, so
// an absent key keeps the 0.5 default rather than zeroing the component.
func configResearchOptions() types.ResearchOptions {
	opts := types.DefaultOptions()
	cfg := pipelineConfig().Research
	if cfg.MaxSources > 0 {
		opts.MaxSources = cfg.MaxSources
	}
	if viper.IsSet("research.recency_weight") {
		opts.RecencyWeight = cfg.RecencyWeight
	}
	if viper.IsSet("research.authority_weight") {
		opts.AuthorityWeight = cfg.AuthorityWeight
	}
	return opts
}

func writeResearchReport(path string, result *types.ResearchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()
	return report.Research(f, result)
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

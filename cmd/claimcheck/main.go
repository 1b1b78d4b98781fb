// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the claimcheck CLI.
// Implements: prd010-research, prd012-verification,
//
//	prd013-document (CLI surface).
//
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/claimcheck/internal/cache"
	"github.com/pdiddy/claimcheck/internal/logger"
	"github.com/pdiddy/claimcheck/internal/materialize"
	"github.com/pdiddy/claimcheck/internal/render"
	"github.com/pdiddy/claimcheck/internal/research"
	"github.com/pdiddy/claimcheck/internal/secrets"
	"github.com/pdiddy/claimcheck/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// log is built in PersistentPreRunE and shared by all subcommands.
var log *zap.Logger

// secretDefault returns fallback if set, else the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the claimcheck CLI.
var rootCmd = &cobra.Command{
	Use:   "claimcheck",
	Short: "Retrieval-backed research and claim verification",
	Long: `claimcheck researches a query across web search backends, extracts readable
content, and synthesizes a cited, verification-scored summary. It can also
ingest a document, extract its factual claims, and cross-check each claim
against the same research pipeline.

Each pipeline surface is a subcommand: research, document, and cache.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}

		log, err = logger.New(viper.GetString("env"), viper.GetString("log.level"))
		return err
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./claimcheck.yaml or ~/.config/claimcheck/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("claimcheck")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "claimcheck"))
		}
	}

	viper.SetDefault("env", "dev")
	viper.SetDefault("log.level", "")
	viper.SetDefault("search.timeout", 15*time.Second)
	viper.SetDefault("search.user_agent", "claimcheck/"+version)
	viper.SetDefault("search.max_results", 20)
	viper.SetDefault("search.enable_wikipedia", true)
	viper.SetDefault("fetch.timeout", 15*time.Second)
	viper.SetDefault("fetch.user_agent", "claimcheck/"+version)
	viper.SetDefault("fetch.page_timeout", 12*time.Second)
	viper.SetDefault("fetch.render_cmd", "")
	viper.SetDefault("cache.path", "claimcheck.db")
	viper.SetDefault("store.path", "documents.db")

	viper.SetEnvPrefix("CLAIMCHECK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the stage configuration from viper and secrets.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			MaxResults:      viper.GetInt("search.max_results"),
			EnableBrave:     viper.GetBool("search.enable_brave"),
			BraveAPIKey:     secretDefault("brave-api-key", viper.GetString("search.brave_api_key")),
			EnableSearx:     viper.GetBool("search.enable_searx"),
			SearxURL:        secretDefault("searx-url", viper.GetString("search.searx_url")),
			EnableWikipedia: viper.GetBool("search.enable_wikipedia"),
			PreferredEngine: viper.GetString("search.preferred_engine"),
		},
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("fetch.timeout"),
				UserAgent: viper.GetString("fetch.user_agent"),
			},
			PageTimeout: viper.GetDuration("fetch.page_timeout"),
		},
		Cache: types.CacheConfig{
			Path: viper.GetString("cache.path"),
		},
		Research: types.ResearchOptions{
			MaxSources:      viper.GetInt("research.max_sources"),
			RecencyWeight:   viper.GetFloat64("research.recency_weight"),
			AuthorityWeight: viper.GetFloat64("research.authority_weight"),
		},
	}
}

// openStore selects the persistent or in-memory cache per configuration.
// The returned closer is a no-op for the in-memory store.
func openStore(cfg types.CacheConfig) (cache.Store, func(), error) {
	if cfg.Path == "" {
		return cache.NewMemoryStore(), func() {}, nil
	}
	store, err := cache.NewSQLiteStore(cfg.Path, log)
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache at %s: %w", cfg.Path, err)
	}
	return store, func() { store.Close() }, nil
}

// buildEngine wires the research pipeline for a subcommand run.
func buildEngine() (*research.Engine, func(), error) {
	cfg := pipelineConfig()
	store, closeStore, err := openStore(cfg.Cache)
	if err != nil {
		return nil, nil, err
	}

	// Nil unless a renderer command is configured; the materializer then
	// uses plain HTTP only.
	var fetcher materialize.Fetcher
	if cf := render.NewCommandFetcher(viper.GetString("fetch.render_cmd")); cf != nil {
		fetcher = cf
	}

	return research.New(cfg, store, fetcher, log), closeStore, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/claimcheck/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the content cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cached source counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig().Cache
		if cfg.Path == "" {
			fmt.Println("cache: in-memory (no persistent statistics)")
			return nil
		}
		store, err := cache.NewSQLiteStore(cfg.Path, log)
		if err != nil {
			return err
		}
		defer store.Close()

		total, fresh, err := store.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("cache: %s\n", cfg.Path)
		fmt.Printf("sources: %d total, %d fresh (TTL %s)\n", total, fresh, cache.TTL)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig().Cache
		if cfg.Path == "" {
			fmt.Println("cache: in-memory (nothing to clear)")
			return nil
		}
		store, err := cache.NewSQLiteStore(cfg.Path, log)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

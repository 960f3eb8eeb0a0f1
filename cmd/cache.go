package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/errdoctor/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the diagnosis cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry and hit counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		c := cache.New(s.CacheRepo(), cache.DefaultConfig(), logger)
		entries, hits, err := c.Stats(context.Background())
		if err != nil {
			return fmt.Errorf("cache stats: %w", err)
		}
		fmt.Printf("Entries: %d\n", entries)
		fmt.Printf("Hits:    %d\n", hits)
		return nil
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove expired cache entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		c := cache.New(s.CacheRepo(), cache.DefaultConfig(), logger)
		n, err := c.Purge(context.Background())
		if err != nil {
			return fmt.Errorf("cache purge: %w", err)
		}
		fmt.Printf("Removed %d expired entries.\n", n)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cache entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		c := cache.New(s.CacheRepo(), cache.DefaultConfig(), logger)
		n, err := c.Clear(context.Background())
		if err != nil {
			return fmt.Errorf("cache clear: %w", err)
		}
		fmt.Printf("Removed %d entries.\n", n)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

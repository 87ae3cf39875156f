package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brandlift/seo-cli/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Page cache maintenance",
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired entries from the page cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, err := cache.Open(cfg.Cache.Path, time.Duration(cfg.Cache.TTLHours)*time.Hour)
		if err != nil {
			return err
		}
		defer pages.Close()

		removed, err := pages.Prune(cmd.Context())
		if err != nil {
			return err
		}

		zap.L().Info("cache pruned",
			zap.String("path", cfg.Cache.Path),
			zap.Int64("removed", removed),
		)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ghgdash/internal/cache"
	"github.com/rshade/ghgdash/internal/config"
)

type cacheStatsOutput struct {
	Directory  string `json:"directory"`
	Enabled    bool   `json:"enabled"`
	Entries    int    `json:"entries"`
	SizeBytes  int64  `json:"size_bytes"`
	TTLSeconds int    `json:"ttl_seconds"`
	MaxSizeMB  int    `json:"max_size_mb"`
}

// openCacheStore opens the configured cache directory. The store is opened
// even when caching is disabled so stale entries can still be managed.
func openCacheStore() (*cache.FileStore, *config.Config, error) {
	cfg := config.GetGlobalConfig()
	store, err := cache.NewFileStore(cfg.CacheDir(), true, cfg.Cache.TTLSeconds, cfg.Cache.MaxSizeMB)
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache: %w", err)
	}
	return store, cfg, nil
}

// NewCacheClearCmd creates the cache clear command.
func NewCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached API response",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := openCacheStore()
			if err != nil {
				return err
			}
			n, err := store.Clear()
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			cmd.Printf("Removed %d cached responses from %s\n", n, store.Directory())
			return nil
		},
	}
}

// NewCachePruneCmd creates the cache prune command.
func NewCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete expired cached API responses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := openCacheStore()
			if err != nil {
				return err
			}
			n, err := store.CleanupExpired()
			if err != nil {
				return fmt.Errorf("pruning cache: %w", err)
			}
			cmd.Printf("Removed %d expired responses\n", n)
			return nil
		},
	}
}

// NewCacheStatsCmd creates the cache stats command.
func NewCacheStatsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache location, size and TTL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutput(output)
			if err != nil {
				return err
			}
			store, cfg, err := openCacheStore()
			if err != nil {
				return err
			}
			entries, size, err := store.Stats()
			if err != nil {
				return fmt.Errorf("reading cache stats: %w", err)
			}

			out := cacheStatsOutput{
				Directory:  store.Directory(),
				Enabled:    cfg.Cache.Enabled,
				Entries:    entries,
				SizeBytes:  size,
				TTLSeconds: cfg.Cache.TTLSeconds,
				MaxSizeMB:  cfg.Cache.MaxSizeMB,
			}
			if format == outputJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			status := "enabled"
			if !out.Enabled {
				status = "disabled"
			}
			cmd.Printf("Directory: %s (%s)\n", out.Directory, status)
			cmd.Printf("Entries:   %d\n", out.Entries)
			cmd.Printf("Size:      %.1f KB of %d MB\n", float64(out.SizeBytes)/1024, out.MaxSizeMB) //nolint:mnd // bytes per KB
			cmd.Printf("TTL:       %s\n", cache.FormatDuration(store.TTL()))
			return nil
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/ghgdash/internal/cache"
	"github.com/rshade/ghgdash/internal/config"
	"github.com/rshade/ghgdash/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the ghgdash CLI.
// It loads configuration, wires up logging and tracing, and registers every
// subcommand.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "ghgdash",
		Short:         "Greenhouse gas emissions dashboard",
		Long:          "ghgdash: explore per-country greenhouse gas statistics, growth and what-if edits from the terminal",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
			if cacheTTL < 0 {
				return usageErrorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}
			if cacheTTL > 0 {
				if _, err := cache.NewTTLConfig(cacheTTL); err != nil {
					return usageErrorf("cache-ttl: %v", err)
				}
			}

			if err := loadConfig(cmd); err != nil {
				return err
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	pf := cmd.PersistentFlags()
	pf.Bool("debug", false, "enable debug logging")
	pf.String("config", "", "YAML file merged over the global configuration")
	pf.String("project-dir", "", "project directory containing .ghgdash/config.yaml")
	pf.String("api-url", "", "statistics API base URL (overrides config and env)")
	pf.Int("cache-ttl", 0, "cache TTL in seconds (0 = use config default)")
	pf.Bool("no-cache", false, "bypass the response cache")
	pf.String("locale", "", "number formatting locale, e.g. id or en")

	cmd.AddCommand(
		NewStatsCmd(), NewGrowthCmd(), NewCountriesCmd(), NewSimulateCmd(),
		NewCompareCmd(), NewChartCmd(), newConfigCmd(), newCacheCmd(),
	)
	return cmd
}

// loadConfig builds the effective configuration for this invocation:
// global file, project overlay, --config overlay, env, then flags.
func loadConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()
	projectFlag, _ := cmd.Flags().GetString("project-dir")
	cwd, _ := os.Getwd()

	cfg := config.NewWithProjectDir(ctx, config.ResolveProjectDir(ctx, projectFlag, cwd))

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := config.ShallowMergeYAML(cfg, path); err != nil {
			return fmt.Errorf("loading --config: %w", err)
		}
		cfg.ApplyDefaults()
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("api-url"); v != "" {
		cfg.API.BaseURL = v
	}
	if v, _ := flags.GetInt("cache-ttl"); v > 0 {
		cfg.Cache.TTLSeconds = v
	}
	if v, _ := flags.GetBool("no-cache"); v {
		cfg.Cache.Enabled = false
	}
	if v, _ := flags.GetString("locale"); v != "" {
		cfg.Display.Locale = v
	}

	config.SetGlobalConfig(cfg)
	return nil
}

const rootCmdExample = `  # Show the dashboard for the world, 2013-2023
  ghgdash stats

  # Indonesia over a custom range, as JSON
  ghgdash stats --country Indonesia --start 2000 --end 2020 --output json

  # Growth per gas, next to the server's own figures
  ghgdash growth --country Indonesia --server

  # Try a what-if edit interactively
  ghgdash simulate --country Indonesia

  # ...or non-interactively
  ghgdash simulate --gas co2 --year 2020 --value 20

  # Compare growth across countries
  ghgdash compare --country Indonesia --country India --country Germany

  # Export a PNG chart
  ghgdash chart --country Indonesia --out indonesia.png

  # Point at another API
  ghgdash config set api.base_url http://stats.example.com`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Response cache commands"}
	cmd.AddCommand(NewCacheClearCmd(), NewCachePruneCmd(), NewCacheStatsCmd())
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ghgdash/internal/config"
	"github.com/rshade/ghgdash/internal/format"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Long: `Validates the configuration after every layer has been applied: the global
file, the project overlay, --config, environment variables and flags.

This includes:
- API base URL and timeout
- Cache TTL bounds
- Default year range, which must lie within the selectable years
- Output format`,
		Example: `  # Validate current configuration
  ghgdash config validate

  # Validate and show detailed information
  ghgdash config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := validateSelectableRange(cfg.Display.YearRange()); err != nil {
		return fmt.Errorf("configuration validation failed: display year range: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints the effective settings that matter most.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Printf("Config file:  %s\n", cfg.Path())
	cmd.Printf("API:          %s (timeout %ds)\n", cfg.API.BaseURL, cfg.API.TimeoutSeconds)
	if cfg.Cache.Enabled {
		cmd.Printf("Cache:        %s (TTL %ds, max %d MB)\n", cfg.CacheDir(), cfg.Cache.TTLSeconds, cfg.Cache.MaxSizeMB)
	} else {
		cmd.Printf("Cache:        disabled\n")
	}
	cmd.Printf("Display:      %s, %s, locale %s (sample %s)\n",
		cfg.Display.DefaultCountry, cfg.Display.YearRange(), cfg.Display.Locale,
		format.New(cfg.Display.Locale).Number(1234567.891))
}

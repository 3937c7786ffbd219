package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/ghgdash/internal/config"
)

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a configuration key",
		Example: `  ghgdash config get api.base_url
  ghgdash config get display.start_year`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(value)
			return nil
		},
	}
}

// NewConfigSetCmd creates the config set command. It edits the global
// config file only; overlays and environment variables are not persisted.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration key in the global config file",
		Example: `  ghgdash config set api.base_url http://stats.example.com
  ghgdash config set display.default_country Indonesia
  ghgdash config set cache.enabled false`,
		Args: cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Defaults()
			if err := cfg.Load(); err != nil {
				return err
			}
			cfg.ApplyDefaults()

			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			logger.Debug().Ctx(cmd.Context()).
				Str("key", args[0]).
				Str("path", cfg.Path()).
				Msg("configuration updated")
			cmd.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every configuration key with its effective value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutput(output)
			if err != nil {
				return err
			}
			cfg := config.GetGlobalConfig()

			if format == outputJSON {
				values := make(map[string]string, len(config.Keys()))
				for _, key := range config.Keys() {
					values[key], _ = cfg.Get(key)
				}
				return writeJSON(cmd.OutOrStdout(), values)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tVALUE")
			for _, key := range config.Keys() {
				value, _ := cfg.Get(key)
				fmt.Fprintf(w, "%s\t%s\n", key, value)
			}
			return w.Flush()
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

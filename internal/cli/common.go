package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rshade/ghgdash/internal/apiclient"
	"github.com/rshade/ghgdash/internal/cache"
	"github.com/rshade/ghgdash/internal/config"
	"github.com/rshade/ghgdash/internal/emissions"
	"github.com/rshade/ghgdash/internal/format"
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// dashboardFlags selects a country, a year range and an output format.
// Zero values fall back to the configured display defaults.
type dashboardFlags struct {
	country string
	start   int
	end     int
	output  string
}

func addDashboardFlags(cmd *cobra.Command, f *dashboardFlags) {
	cmd.Flags().StringVar(&f.country, "country", "", "country name (default from config, usually World)")
	cmd.Flags().IntVar(&f.start, "start", 0, "first year of the range (default from config)")
	cmd.Flags().IntVar(&f.end, "end", 0, "last year of the range (default from config)")
	addOutputFlag(cmd, &f.output)
}

func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", "", "output format: table or json (default from config)")
}

// resolve fills unset flags from cfg and validates the year range.
func (f dashboardFlags) resolve(cfg *config.Config) (string, emissions.YearRange, error) {
	country := f.country
	if country == "" {
		country = cfg.Display.DefaultCountry
	}
	if country == "" {
		country = config.DefaultCountry
	}

	r := cfg.Display.YearRange()
	if f.start != 0 {
		r.Start = f.start
	}
	if f.end != 0 {
		r.End = f.end
	}
	if err := validateSelectableRange(r); err != nil {
		return "", emissions.YearRange{}, err
	}
	return country, r, nil
}

// validateSelectableRange enforces the dashboard's year bounds.
func validateSelectableRange(r emissions.YearRange) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.Start < emissions.MinSelectableYear || r.End > emissions.MaxSelectableYear {
		return fmt.Errorf("%w: years must be within %d-%d, got %s",
			emissions.ErrInvalidRange, emissions.MinSelectableYear, emissions.MaxSelectableYear, r)
	}
	return nil
}

// resolveOutput returns the requested output format, defaulting to config.
func resolveOutput(flag string) (string, error) {
	out := flag
	if out == "" {
		out = config.GetGlobalConfig().Display.OutputFormat
	}
	switch out {
	case outputTable, outputJSON:
		return out, nil
	case "":
		return outputTable, nil
	default:
		return "", usageErrorf("unsupported output format %q (use table or json)", out)
	}
}

// newFormatter returns a number formatter for the configured locale.
func newFormatter() *format.Formatter {
	return format.New(config.GetGlobalConfig().Display.Locale)
}

// newAPIClient builds an API client from the global configuration, with the
// on-disk cache attached when enabled.
func newAPIClient(cmd *cobra.Command) (*apiclient.Client, error) {
	cfg := config.GetGlobalConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	opts := []apiclient.Option{
		apiclient.WithTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second),
	}

	if cfg.Cache.Enabled {
		store, err := cache.NewFileStore(cfg.CacheDir(), true, cfg.Cache.TTLSeconds, cfg.Cache.MaxSizeMB)
		if err != nil {
			logger.Warn().Ctx(cmd.Context()).
				Err(err).
				Str("cache_dir", cfg.CacheDir()).
				Msg("response cache unavailable, continuing without it")
		} else {
			opts = append(opts, apiclient.WithCache(store))
		}
	}

	return apiclient.New(cfg.API.BaseURL, opts...), nil
}

// loadDataset resolves flags and fetches the dataset they describe.
func loadDataset(cmd *cobra.Command, f dashboardFlags) (*apiclient.Dataset, error) {
	country, r, err := f.resolve(config.GetGlobalConfig())
	if err != nil {
		return nil, err
	}
	client, err := newAPIClient(cmd)
	if err != nil {
		return nil, err
	}

	logger.Debug().Ctx(cmd.Context()).
		Str("country", country).
		Int("start_year", r.Start).
		Int("end_year", r.End).
		Msg("loading dataset")

	return client.Load(cmd.Context(), country, r)
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/ghgdash/internal/apiclient"
	"github.com/rshade/ghgdash/internal/emissions"
	"github.com/rshade/ghgdash/internal/equivalence"
	"github.com/rshade/ghgdash/internal/tui"
)

// dashboardOutput is the JSON shape of the stats and simulate commands.
type dashboardOutput struct {
	Country string              `json:"country"`
	Code    string              `json:"country_code"`
	Range   emissions.YearRange `json:"range"`
	Edits   []emissions.Edit    `json:"edits,omitempty"`
	Cards   []emissions.Card    `json:"cards"`

	// Equivalents describes the latest total reading; absent when there is none.
	Equivalents *equivalence.Output `json:"equivalents,omitempty"`
}

// NewStatsCmd creates the stats command, which renders the dashboard cards
// and descriptive statistics for one country.
func NewStatsCmd() *cobra.Command {
	var (
		flags     dashboardFlags
		recompute bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-gas statistics and growth for a country",
		Long: `Fetches per-gas statistics for a country and year range and renders one
card per gas (latest reading, growth and trend, sparkline) followed by the
descriptive statistics table.

Growth is always computed locally from the raw yearly readings.`,
		Example: `  ghgdash stats
  ghgdash stats --country Indonesia --start 1990 --end 2020
  ghgdash stats --recompute --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, err := resolveOutput(flags.output)
			if err != nil {
				return err
			}
			ds, err := loadDataset(cmd, flags)
			if err != nil {
				return err
			}
			if recompute {
				ds.Stats = recomputeStats(ds.Stats)
			}
			return renderDashboard(cmd, output, ds, nil)
		},
	}

	addDashboardFlags(cmd, &flags)
	cmd.Flags().BoolVar(&recompute, "recompute", false,
		"recompute every statistic locally from the raw readings instead of trusting the API")
	return cmd
}

// recomputeStats rebuilds each gas snapshot from its raw readings.
func recomputeStats(stats emissions.StatsByGas) emissions.StatsByGas {
	out := make(emissions.StatsByGas, len(stats))
	for gas, snap := range stats {
		out[gas] = emissions.ComputeStats(snap.RawValues)
	}
	return out
}

func renderDashboard(cmd *cobra.Command, output string, ds *apiclient.Dataset, edits []emissions.Edit) error {
	cards := emissions.BuildCards(ds.Stats, ds.Range, ds.Country)
	equiv := totalEquivalents(cmd, cards)
	if output == outputJSON {
		return writeJSON(cmd.OutOrStdout(), dashboardOutput{
			Country:     ds.Country,
			Code:        ds.Code,
			Range:       ds.Range,
			Edits:       edits,
			Cards:       cards,
			Equivalents: equiv,
		})
	}
	cmd.Println(tui.RenderDashboard(ds.Country, ds.Range, cards, newFormatter()))
	if equiv != nil {
		cmd.Println()
		cmd.Println(tui.RenderEquivalents(*equiv))
	}
	return nil
}

// totalEquivalents returns the equivalents of the latest total reading,
// or nil when there is nothing to show.
func totalEquivalents(cmd *cobra.Command, cards []emissions.Card) *equivalence.Output {
	out, err := tui.TotalEquivalents(cards)
	if err != nil {
		logger.Debug().Ctx(cmd.Context()).Err(err).Msg("skipping equivalents")
		return nil
	}
	if out.IsEmpty {
		return nil
	}
	return &out
}

package cli

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/ghgdash/internal/emissions"
	"github.com/rshade/ghgdash/internal/tui"
)

// NewSimulateCmd creates the simulate command.
func NewSimulateCmd() *cobra.Command {
	var (
		flags dashboardFlags
		gas   string
		year  int
		value string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Apply what-if edits to a country's readings",
		Long: `Overrides one (gas, year) reading and shows the recomputed dashboard.

When the edited gas is not the total, the total's reading for that year
becomes the sum of the edited value and the other gases' readings, and the
total's mean is set to that sum. The server is never modified.

With --value the edit is applied once and the result printed. Without it an
interactive form opens, where edits accumulate until reset.`,
		Example: `  ghgdash simulate --country Indonesia
  ghgdash simulate --gas co2 --year 2020 --value 20
  ghgdash simulate --gas ch4 --value 1.5 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, err := resolveOutput(flags.output)
			if err != nil {
				return err
			}

			interactive := !cmd.Flags().Changed("value")
			if interactive && (!isTerminal(os.Stdin) || !isTerminal(os.Stdout)) {
				return usageErrorf("simulate needs --value when not attached to a terminal")
			}

			ds, err := loadDataset(cmd, flags)
			if err != nil {
				return err
			}

			if interactive {
				model := tui.NewSimulateModel(ds.Country, ds.Range, ds.Stats, newFormatter())
				if _, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
					return fmt.Errorf("running simulation: %w", err)
				}
				logger.Debug().Ctx(cmd.Context()).
					Int("edits", len(model.Edits())).
					Msg("simulation closed")
				return nil
			}

			if year == 0 {
				year = ds.Range.End
			}
			edit, err := emissions.ParseEdit(gas, strconv.Itoa(year), value)
			if err != nil {
				return err
			}
			ds.Stats, err = emissions.ApplyEdit(ds.Stats, edit)
			if err != nil {
				return err
			}

			logger.Debug().Ctx(cmd.Context()).
				Str("gas", string(edit.Gas)).
				Int("year", edit.Year).
				Float64("value", edit.Value).
				Msg("applied edit")

			return renderDashboard(cmd, output, ds, []emissions.Edit{edit})
		},
	}

	addDashboardFlags(cmd, &flags)
	f := cmd.Flags()
	f.StringVar(&gas, "gas", string(emissions.GasCO2), "gas to edit: co2, ch4, n2o or total")
	f.IntVar(&year, "year", 0, "year to edit (default: end of the range)")
	f.StringVar(&value, "value", "", "new reading in MtCO2; omit to open the interactive form")
	return cmd
}

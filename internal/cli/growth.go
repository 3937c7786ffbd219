package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/ghgdash/internal/apiclient"
	"github.com/rshade/ghgdash/internal/emissions"
	"github.com/rshade/ghgdash/internal/format"
)

// growthRow is one gas of the growth command output.
type growthRow struct {
	Gas          emissions.GasKey `json:"gas"`
	StartValue   *float64         `json:"start_value"`
	EndValue     *float64         `json:"end_value"`
	Growth       *float64         `json:"growth"`
	Trend        emissions.Trend  `json:"trend"`
	ServerGrowth *float64         `json:"server_growth,omitempty"`
}

type growthOutput struct {
	Country string              `json:"country"`
	Code    string              `json:"country_code"`
	Range   emissions.YearRange `json:"range"`
	Gases   []growthRow         `json:"gases"`
}

// NewGrowthCmd creates the growth command.
func NewGrowthCmd() *cobra.Command {
	var (
		flags  dashboardFlags
		server bool
	)

	cmd := &cobra.Command{
		Use:   "growth",
		Short: "Show growth between the first and last year of a range",
		Long: `Computes the percentage change of each gas between the first reading of the
start year and the first reading of the end year. Growth is not computable
when either reading is missing or the start value is zero.

With --server the API's own /growth figures are fetched and shown alongside.`,
		Example: `  ghgdash growth --country Indonesia
  ghgdash growth --start 1990 --end 2020 --server --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, err := resolveOutput(flags.output)
			if err != nil {
				return err
			}
			ds, err := loadDataset(cmd, flags)
			if err != nil {
				return err
			}

			var serverGrowth apiclient.GrowthByGas
			if server {
				client, clientErr := newAPIClient(cmd)
				if clientErr != nil {
					return clientErr
				}
				serverGrowth, err = client.Growth(cmd.Context(), ds.Code, ds.Range)
				if err != nil {
					return fmt.Errorf("fetching server growth: %w", err)
				}
			}

			out := growthOutput{
				Country: ds.Country,
				Code:    ds.Code,
				Range:   ds.Range,
				Gases:   buildGrowthRows(ds.Stats, ds.Range, serverGrowth),
			}
			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return renderGrowthTable(cmd, out, server)
		},
	}

	addDashboardFlags(cmd, &flags)
	cmd.Flags().BoolVar(&server, "server", false, "also fetch growth computed by the API")
	return cmd
}

func buildGrowthRows(stats emissions.StatsByGas, r emissions.YearRange, server apiclient.GrowthByGas) []growthRow {
	rows := make([]growthRow, 0, len(emissions.DisplayOrder))
	for _, gas := range emissions.DisplayOrder {
		values := stats[gas].RawValues
		row := growthRow{Gas: gas, ServerGrowth: server[gas]}
		if v, ok := values.First(r.Start); ok {
			row.StartValue = &v
		}
		if v, ok := values.First(r.End); ok {
			row.EndValue = &v
		}
		g, ok := emissions.ComputeGrowth(values, r)
		if ok {
			row.Growth = &g
		}
		row.Trend = emissions.ClassifyTrend(g, ok)
		rows = append(rows, row)
	}
	return rows
}

func renderGrowthTable(cmd *cobra.Command, out growthOutput, server bool) error {
	f := newFormatter()

	cmd.Printf("%s (%s), %s\n\n", out.Country, out.Code, out.Range)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	header := fmt.Sprintf("GAS\t%d\t%d\tGROWTH\tTREND\t", out.Range.Start, out.Range.End)
	if server {
		header += "SERVER\t"
	}
	fmt.Fprintln(w, header)
	for _, row := range out.Gases {
		line := fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t",
			row.Gas.Label(), f.Optional(row.StartValue), f.Optional(row.EndValue),
			format.Growth(row.Growth), row.Trend)
		if server {
			line += format.Growth(row.ServerGrowth) + "\t"
		}
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}

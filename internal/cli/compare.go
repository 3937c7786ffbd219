package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/ghgdash/internal/apiclient"
	"github.com/rshade/ghgdash/internal/cli/pagination"
	"github.com/rshade/ghgdash/internal/config"
	"github.com/rshade/ghgdash/internal/emissions"
	"github.com/rshade/ghgdash/internal/format"
)

const (
	defaultCompareConcurrency = 4
	compareSortCountry        = "country"
)

// compareRow is one country of the compare output.
type compareRow struct {
	Country string                        `json:"country"`
	Code    string                        `json:"country_code"`
	Latest  map[emissions.GasKey]*float64 `json:"latest"`
	Growth  map[emissions.GasKey]*float64 `json:"growth"`
}

type compareOutput struct {
	Range     emissions.YearRange `json:"range"`
	Countries []compareRow        `json:"countries"`
}

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	var (
		flags       dashboardFlags
		countries   []string
		concurrency int
		sortBy      string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare latest readings and growth across countries",
		Long: `Fetches statistics for several countries in parallel and shows, per gas,
the latest reading and the growth over the range.

Sort by country or by a gas key (total, co2, n2o, ch4), which orders by that
gas's growth. Countries whose growth is not computable sort last.`,
		Example: `  ghgdash compare --country Indonesia --country India --country Germany
  ghgdash compare --country Indonesia,India --sort co2:desc --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(countries) == 0 {
				return usageErrorf("at least one --country is required")
			}
			if concurrency < 1 {
				return usageErrorf("concurrency must be >= 1, got %d", concurrency)
			}
			field, order, err := pagination.ParseSort(sortBy)
			if err != nil {
				return usageErrorf("%v", err)
			}
			if err = pagination.ValidateField(field, compareSortFields()); err != nil {
				return usageErrorf("%v", err)
			}
			output, err := resolveOutput(flags.output)
			if err != nil {
				return err
			}
			_, r, err := flags.resolve(config.GetGlobalConfig())
			if err != nil {
				return err
			}

			rows, err := fetchComparison(cmd, countries, r, concurrency)
			if err != nil {
				return err
			}
			sortComparison(rows, field, order)

			out := compareOutput{Range: r, Countries: rows}
			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return renderCompareTable(cmd, out)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&countries, "country", nil, "country to compare (repeatable or comma-separated)")
	f.IntVar(&flags.start, "start", 0, "first year of the range (default from config)")
	f.IntVar(&flags.end, "end", 0, "last year of the range (default from config)")
	addOutputFlag(cmd, &flags.output)
	f.IntVar(&concurrency, "concurrency", defaultCompareConcurrency, "maximum parallel requests")
	f.StringVar(&sortBy, "sort", "", "sort by country or a gas key, optionally with :asc or :desc")
	return cmd
}

func compareSortFields() []string {
	fields := []string{compareSortCountry}
	for _, g := range emissions.DisplayOrder {
		fields = append(fields, string(g))
	}
	return fields
}

// fetchComparison resolves every country against one catalogue fetch and
// loads their statistics with at most limit requests in flight. Rows keep
// the order of names.
func fetchComparison(
	cmd *cobra.Command,
	names []string,
	r emissions.YearRange,
	limit int,
) ([]compareRow, error) {
	client, err := newAPIClient(cmd)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()

	catalogue, err := client.Countries(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading countries: %w", err)
	}

	rows := make([]compareRow, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, name := range names {
		name = strings.TrimSpace(name)
		code := apiclient.ResolveCountryCode(catalogue, name)
		if code == apiclient.FallbackCountryCode && name != config.DefaultCountry {
			logger.Warn().Ctx(ctx).
				Str("country", name).
				Str("fallback_code", code).
				Msg("unknown country, using fallback code")
		}
		g.Go(func() error {
			stats, statsErr := client.Statistics(gctx, code, r)
			if statsErr != nil {
				return fmt.Errorf("loading statistics for %s: %w", name, statsErr)
			}
			rows[i] = buildCompareRow(name, code, stats, r)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func buildCompareRow(name, code string, stats emissions.StatsByGas, r emissions.YearRange) compareRow {
	row := compareRow{
		Country: name,
		Code:    code,
		Latest:  make(map[emissions.GasKey]*float64, len(emissions.DisplayOrder)),
		Growth:  make(map[emissions.GasKey]*float64, len(emissions.DisplayOrder)),
	}
	for _, card := range emissions.BuildCards(stats, r, name) {
		row.Latest[card.Gas] = card.Latest
		row.Growth[card.Gas] = card.Growth
	}
	return row
}

// sortComparison orders rows by country name or by a gas's growth.
// Rows without a computable growth always sort last.
func sortComparison(rows []compareRow, field, order string) {
	if field == "" {
		return
	}
	desc := order == pagination.SortOrderDesc
	sort.SliceStable(rows, func(i, j int) bool {
		if field == compareSortCountry {
			a, b := strings.ToLower(rows[i].Country), strings.ToLower(rows[j].Country)
			if desc {
				return a > b
			}
			return a < b
		}
		gas := emissions.GasKey(field)
		a, b := rows[i].Growth[gas], rows[j].Growth[gas]
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		case desc:
			return *a > *b
		default:
			return *a < *b
		}
	})
}

func renderCompareTable(cmd *cobra.Command, out compareOutput) error {
	f := newFormatter()

	cmd.Printf("Latest readings (%d) and growth, %s\n\n", out.Range.End, out.Range)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	header := []string{"COUNTRY", "CODE"}
	for _, g := range emissions.DisplayOrder {
		header = append(header, g.Label(), g.Label()+" %")
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, row := range out.Countries {
		cells := []string{row.Country, row.Code}
		for _, g := range emissions.DisplayOrder {
			cells = append(cells, f.Optional(row.Latest[g]), format.Growth(row.Growth[g]))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

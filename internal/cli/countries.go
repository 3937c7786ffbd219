package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/ghgdash/internal/apiclient"
	"github.com/rshade/ghgdash/internal/cli/pagination"
	"github.com/rshade/ghgdash/internal/tui"
)

// Sortable country fields.
const (
	countrySortName = "name"
	countrySortCode = "code"
)

//nolint:gochecknoglobals // Fixed enumeration.
var validCountrySortFields = []string{countrySortName, countrySortCode}

// errPickCancelled is returned when the country picker exits without a choice.
var errPickCancelled = errors.New("no country selected")

type countriesOutput struct {
	Countries  []apiclient.Country `json:"countries"`
	Pagination pagination.Meta     `json:"pagination"`
}

// NewCountriesCmd creates the countries command.
func NewCountriesCmd() *cobra.Command {
	var (
		params pagination.Params
		sortBy string
		filter string
		output string
		pick   bool
	)

	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List the countries known to the API",
		Example: `  ghgdash countries
  ghgdash countries --filter indo
  ghgdash countries --sort code:desc --page 2 --page-size 20
  ghgdash countries --pick`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := params.Validate(); err != nil {
				return usageErrorf("%v", err)
			}
			field, order, err := pagination.ParseSort(sortBy)
			if err != nil {
				return usageErrorf("%v", err)
			}
			if err = pagination.ValidateField(field, validCountrySortFields); err != nil {
				return usageErrorf("%v", err)
			}
			format, err := resolveOutput(output)
			if err != nil {
				return err
			}

			client, err := newAPIClient(cmd)
			if err != nil {
				return err
			}
			countries, err := client.Countries(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing countries: %w", err)
			}

			countries = tui.FilterCountries(countries, filter)
			sortCountries(countries, field, order)

			if pick {
				return pickCountry(cmd, countries)
			}

			page, meta := pagination.Apply(countries, params)
			if format == outputJSON {
				return writeJSON(cmd.OutOrStdout(), countriesOutput{Countries: page, Pagination: meta})
			}
			return renderCountriesTable(cmd, page, meta)
		},
	}

	f := cmd.Flags()
	f.IntVar(&params.Limit, "limit", 0, "maximum number of countries to show (0 = all)")
	f.IntVar(&params.Offset, "offset", 0, "number of countries to skip")
	f.IntVar(&params.Page, "page", 0, "page number, starting at 1 (requires --page-size)")
	f.IntVar(&params.PageSize, "page-size", 0, "countries per page")
	f.StringVar(&sortBy, "sort", "", "sort by name or code, optionally with :asc or :desc")
	f.StringVar(&filter, "filter", "", "keep countries whose name or code contains this text")
	f.BoolVar(&pick, "pick", false, "choose a country interactively and print its code")
	addOutputFlag(cmd, &output)
	return cmd
}

// sortCountries sorts in place. An empty field keeps the API order.
func sortCountries(countries []apiclient.Country, field, order string) {
	if field == "" {
		return
	}
	key := func(c apiclient.Country) string { return strings.ToLower(c.Name) }
	if field == countrySortCode {
		key = func(c apiclient.Country) string { return c.Code }
	}
	sort.SliceStable(countries, func(i, j int) bool {
		if order == pagination.SortOrderDesc {
			return key(countries[i]) > key(countries[j])
		}
		return key(countries[i]) < key(countries[j])
	})
}

func renderCountriesTable(cmd *cobra.Command, countries []apiclient.Country, meta pagination.Meta) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME")
	for _, c := range countries {
		fmt.Fprintf(w, "%s\t%s\n", c.Code, c.Name)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if meta.HasNext || meta.CurrentPage > 1 {
		cmd.Printf("\nPage %d of %d (%d countries)\n", meta.CurrentPage, meta.TotalPages, meta.TotalItems)
	}
	return nil
}

// pickCountry runs the interactive picker and prints the chosen code.
func pickCountry(cmd *cobra.Command, countries []apiclient.Country) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return usageErrorf("--pick requires an interactive terminal")
	}

	model := tui.NewCountryPickerModel(countries)
	if _, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run(); err != nil {
		return fmt.Errorf("running country picker: %w", err)
	}

	chosen := model.Chosen()
	if chosen == nil {
		return errPickCancelled
	}
	cmd.Println(chosen.Code)
	return nil
}

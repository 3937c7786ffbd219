package cli

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/rshade/ghgdash/internal/chart"
)

const defaultChartPath = "emissions.png"

// NewChartCmd creates the chart command, which exports the yearly series of
// every gas as a PNG line chart.
func NewChartCmd() *cobra.Command {
	var (
		flags    dashboardFlags
		outPath  string
		title    string
		widthIn  float64
		heightIn float64
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Export a PNG line chart of yearly readings",
		Example: `  ghgdash chart --country Indonesia
  ghgdash chart --start 1990 --end 2020 --out world.png --title "World emissions"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if widthIn <= 0 || heightIn <= 0 {
				return usageErrorf("width and height must be positive")
			}
			ds, err := loadDataset(cmd, flags)
			if err != nil {
				return err
			}

			opts := chart.Options{
				Title:  title,
				Width:  vg.Length(widthIn) * vg.Inch,
				Height: vg.Length(heightIn) * vg.Inch,
			}
			if err = chart.SavePNG(outPath, ds.Stats, ds.Range, ds.Country, opts); err != nil {
				return err
			}

			logger.Info().Ctx(cmd.Context()).
				Str("path", outPath).
				Str("country_code", ds.Code).
				Msg("chart written")
			cmd.Printf("Chart written to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.country, "country", "", "country name (default from config, usually World)")
	cmd.Flags().IntVar(&flags.start, "start", 0, "first year of the range (default from config)")
	cmd.Flags().IntVar(&flags.end, "end", 0, "last year of the range (default from config)")
	cmd.Flags().StringVar(&outPath, "out", defaultChartPath, "PNG file to write")
	cmd.Flags().StringVar(&title, "title", "", "chart title (default: country and range)")
	cmd.Flags().Float64Var(&widthIn, "width", float64(chart.DefaultWidth/vg.Inch), "image width in inches")
	cmd.Flags().Float64Var(&heightIn, "height", float64(chart.DefaultHeight/vg.Inch), "image height in inches")
	return cmd
}

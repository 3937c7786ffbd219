// Package chart renders emission series as PNG line charts.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/rshade/ghgdash/internal/emissions"
)

// Default image size.
const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

// ErrNoYears is returned when the range contains no years to plot.
var ErrNoYears = errors.New("year range contains no years")

// Options controls the rendered image.
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

func (o Options) withDefaults(country string, r emissions.YearRange) Options {
	if o.Title == "" {
		o.Title = fmt.Sprintf("GHG emissions, %s (%s)", country, r)
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	return o
}

// Build assembles a line chart with one line per gas in display order.
// Years without a valid reading are plotted as zero so every line spans
// the whole range.
func Build(stats emissions.StatsByGas, r emissions.YearRange, country string, opts Options) (*plot.Plot, error) {
	if len(r.Years()) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoYears, r)
	}
	opts = opts.withDefaults(country, r)

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "MtCO2"
	p.Legend.Top = true
	p.X.Tick.Marker = yearTicks{}
	p.Add(plotter.NewGrid())

	for i, gas := range emissions.DisplayOrder {
		series := emissions.BuildSeries(stats[gas], r, emissions.FillZero)
		xys := make(plotter.XYs, len(series))
		for j, pt := range series {
			xys[j] = plotter.XY{X: float64(pt.Year), Y: pt.Value}
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("building %s line: %w", gas, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)

		p.Add(line, points)
		p.Legend.Add(emissions.CardTitle(gas), line, points)
	}
	return p, nil
}

// WritePNG renders the chart as PNG to w.
func WritePNG(w io.Writer, stats emissions.StatsByGas, r emissions.YearRange, country string, opts Options) error {
	p, err := Build(stats, r, country, opts)
	if err != nil {
		return err
	}
	opts = opts.withDefaults(country, r)

	wt, err := p.WriterTo(opts.Width, opts.Height, "png")
	if err != nil {
		return fmt.Errorf("preparing PNG canvas: %w", err)
	}
	if _, err = wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing PNG: %w", err)
	}
	return nil
}

// SavePNG renders the chart into the file at path.
func SavePNG(path string, stats emissions.StatsByGas, r emissions.YearRange, country string, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err = WritePNG(f, stats, r, country, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// yearTicks labels every year for short ranges and thins labels out for
// long ones.
type yearTicks struct{}

const maxYearLabels = 12

func (yearTicks) Ticks(lo, hi float64) []plot.Tick {
	first, last := int(lo), int(hi)
	step := max(1, (last-first+maxYearLabels-1)/maxYearLabels)

	ticks := make([]plot.Tick, 0, last-first+1)
	for y := first; y <= last; y++ {
		t := plot.Tick{Value: float64(y)}
		if (y-first)%step == 0 {
			t.Label = fmt.Sprint(y)
		}
		ticks = append(ticks, t)
	}
	return ticks
}

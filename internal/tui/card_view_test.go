package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/rshade/ghgdash/internal/emissions"
	"github.com/rshade/ghgdash/internal/format"
)

func sampleStats() emissions.StatsByGas {
	yv := func(a, b float64) emissions.YearValueMap {
		return emissions.YearValueMap{
			"2013": {emissions.Num(a)},
			"2023": {emissions.Num(b)},
		}
	}
	stats := emissions.StatsByGas{}
	for gas, vals := range map[emissions.GasKey][2]float64{
		emissions.GasTotal: {30, 27},
		emissions.GasCO2:   {20, 25},
		emissions.GasCH4:   {4, 2},
	} {
		stats[gas] = emissions.ComputeStats(yv(vals[0], vals[1]))
	}
	return stats
}

func TestRenderGrowth(t *testing.T) {
	up, down := 12.5, -3.1
	assert.Contains(t, RenderGrowth(&up, emissions.TrendUp), "+12.50% "+IconArrowUp)
	assert.Contains(t, RenderGrowth(&down, emissions.TrendDown), "-3.10% "+IconArrowDown)
	assert.Contains(t, RenderGrowth(nil, emissions.TrendNeutral), format.Placeholder+" "+IconArrowRight)
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
		want   string
	}{
		{"empty", nil, 10, ""},
		{"flat", []float64{5, 5, 5}, 10, "▁▁▁"},
		{"ramp", []float64{0, 7}, 10, "▁█"},
		{"resampled", []float64{0, 1, 2, 3, 4, 5, 6, 7}, 2, "▁█"},
		{"single column", []float64{1, 2, 3}, 1, "▁"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sparkline(tt.values, tt.width))
		})
	}
}

func TestRenderCards(t *testing.T) {
	r := emissions.DefaultYearRange()
	cards := emissions.BuildCards(sampleStats(), r, "World")
	f := format.New("en")

	out := RenderDashboard("World", r, cards, f)
	for _, want := range []string{
		"Greenhouse Gas Emissions",
		"Total GHG (MtCO2)",
		"N2O (MtCO2)",
		"2013 - 2023",
		"(2023): 27",
		"+25.00%",
		"-10.00%",
		"no data",
		"Std Dev",
	} {
		assert.Contains(t, out, want)
	}

	grid := RenderCards(cards, f)
	assert.Equal(t, 2*lipgloss.Width(RenderCard(cards[0], f)), lipgloss.Width(strings.Split(grid, "\n")[0]))
}

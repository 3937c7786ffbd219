package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/ghgdash/internal/emissions"
	"github.com/rshade/ghgdash/internal/format"
)

// Layout constants.
const (
	cardWidth      = 34
	cardsPerRow    = 2
	sparkWidth     = 24
	detailKeyWidth = 10
)

//nolint:gochecknoglobals // Sparkline glyphs from lowest to highest.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// RenderGrowth renders a growth percentage with its trend arrow, coloured
// by direction.
func RenderGrowth(growth *float64, trend emissions.Trend) string {
	label := format.Growth(growth)
	switch trend {
	case emissions.TrendUp:
		return upStyle.Render(label + " " + IconArrowUp)
	case emissions.TrendDown:
		return downStyle.Render(label + " " + IconArrowDown)
	default:
		return neutralStyle.Render(label + " " + IconArrowRight)
	}
}

// RenderHeader renders the dashboard title for a country and range.
func RenderHeader(country string, r emissions.YearRange) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Greenhouse Gas Emissions"))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Country: "))
	sb.WriteString(valueStyle.Render(country))
	sb.WriteString(labelStyle.Render("   Years: "))
	sb.WriteString(valueStyle.Render(r.String()))
	return sb.String()
}

// Sparkline draws values as a single line of block glyphs scaled between
// their min and max, resampled to at most width glyphs.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		values = resample(values, width)
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	top := len(sparkRunes) - 1
	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if hi > lo {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(top)))
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}

// resample picks width evenly spaced values, always keeping the last.
func resample(values []float64, width int) []float64 {
	if width == 1 {
		return values[len(values)-1:]
	}
	out := make([]float64, width)
	step := float64(len(values)-1) / float64(width-1)
	for i := range out {
		out[i] = values[int(math.Round(float64(i)*step))]
	}
	return out
}

// RenderCard renders one stat card.
func RenderCard(card emissions.Card, f *format.Formatter) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(card.Title))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(card.Interval))
	sb.WriteString("\n\n")
	sb.WriteString(valueStyle.Render(f.Latest(card.Year, card.Latest)))
	sb.WriteString("\n")
	sb.WriteString(RenderGrowth(card.Growth, card.Trend))
	sb.WriteString("\n")

	spark := Sparkline(emissions.Values(card.Series), sparkWidth)
	if spark == "" {
		spark = mutedStyle.Render("no data")
	} else {
		spark = sparkStyle.Render(spark)
	}
	sb.WriteString(spark)

	return cardStyle.Width(cardWidth).Render(sb.String())
}

// RenderCards lays cards out in a grid, two per row.
func RenderCards(cards []emissions.Card, f *format.Formatter) string {
	rows := make([]string, 0, (len(cards)+cardsPerRow-1)/cardsPerRow)
	for i := 0; i < len(cards); i += cardsPerRow {
		end := min(i+cardsPerRow, len(cards))
		rendered := make([]string, 0, cardsPerRow)
		for _, c := range cards[i:end] {
			rendered = append(rendered, RenderCard(c, f))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderDetails renders the descriptive statistics of every card as a
// table with one column per gas.
func RenderDetails(cards []emissions.Card, f *format.Formatter) string {
	type row struct {
		label string
		pick  func(emissions.StatSnapshot) *float64
	}
	rows := []row{
		{"Mean", func(s emissions.StatSnapshot) *float64 { return s.Mean }},
		{"Median", func(s emissions.StatSnapshot) *float64 { return s.Median }},
		{"Min", func(s emissions.StatSnapshot) *float64 { return s.Min }},
		{"Max", func(s emissions.StatSnapshot) *float64 { return s.Max }},
		{"Range", func(s emissions.StatSnapshot) *float64 { return s.Range }},
		{"Variance", func(s emissions.StatSnapshot) *float64 { return s.Variance }},
		{"Std Dev", func(s emissions.StatSnapshot) *float64 { return s.StdDev }},
	}

	colWidth := 0
	for _, c := range cards {
		colWidth = max(colWidth, len(c.Gas.Label()))
		for _, r := range rows {
			colWidth = max(colWidth, len(f.Optional(r.pick(c.Details))))
		}
	}
	colWidth += 2

	var sb strings.Builder
	sb.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", detailKeyWidth, "")))
	for _, c := range cards {
		sb.WriteString(titleStyle.Render(fmt.Sprintf("%*s", colWidth, c.Gas.Label())))
	}
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(strings.Repeat("─", detailKeyWidth+colWidth*len(cards))))
	for _, r := range rows {
		sb.WriteString("\n")
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", detailKeyWidth, r.label)))
		for _, c := range cards {
			sb.WriteString(valueStyle.Render(fmt.Sprintf("%*s", colWidth, f.Optional(r.pick(c.Details)))))
		}
	}
	return sb.String()
}

// RenderDashboard renders the header, card grid and statistics table.
func RenderDashboard(country string, r emissions.YearRange, cards []emissions.Card, f *format.Formatter) string {
	return strings.Join([]string{
		RenderHeader(country, r),
		RenderCards(cards, f),
		RenderDetails(cards, f),
	}, "\n\n")
}

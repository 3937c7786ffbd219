package tui

import (
	"strings"

	"github.com/rshade/ghgdash/internal/emissions"
	"github.com/rshade/ghgdash/internal/equivalence"
)

// RenderEquivalents renders the prose summary followed by one line per
// equivalent. An empty output renders as "".
func RenderEquivalents(out equivalence.Output) string {
	if out.IsEmpty || len(out.Results) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(out.DisplayText))
	for _, r := range out.Results {
		sb.WriteString("\n")
		sb.WriteString(labelStyle.Render("  ≈ "))
		sb.WriteString(valueStyle.Render(r.Formatted))
		sb.WriteString(" ")
		sb.WriteString(mutedStyle.Render(r.Label))
	}
	return sb.String()
}

// TotalEquivalents returns the equivalents of the total card's latest
// reading, taken to be in MtCO2e. Without such a reading the output is
// empty.
func TotalEquivalents(cards []emissions.Card) (equivalence.Output, error) {
	for _, c := range cards {
		if c.Gas == emissions.GasTotal && c.Latest != nil {
			return equivalence.Calculate(*c.Latest, equivalence.DefaultUnit)
		}
	}
	return equivalence.Output{IsEmpty: true}, nil
}

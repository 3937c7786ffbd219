package equivalence

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Kind is a category of equivalent.
type Kind string

const (
	// KindMilesDriven is miles driven by an average passenger vehicle.
	KindMilesDriven Kind = "miles_driven"

	// KindHomeYears is years of average US home electricity use.
	KindHomeYears Kind = "home_years"

	// KindTreeSeedlings is tree seedlings grown for 10 years.
	KindTreeSeedlings Kind = "tree_seedlings"

	// KindSmartphonesCharged is full smartphone charges.
	KindSmartphonesCharged Kind = "smartphones_charged"
)

// Result is one calculated equivalent.
type Result struct {
	Kind      Kind    `json:"kind"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
	Label     string  `json:"label"`
}

// Output holds every equivalent for one emission amount.
type Output struct {
	InputKg     float64  `json:"input_kg"`
	Results     []Result `json:"results,omitempty"`
	DisplayText string   `json:"display_text,omitempty"`
	IsEmpty     bool     `json:"-"`
}

type kindSpec struct {
	kind   Kind
	factor float64
	label  string
}

//nolint:gochecknoglobals // Fixed table, in display order.
var kinds = []kindSpec{
	{KindMilesDriven, MilesDrivenFactor, "miles driven"},
	{KindHomeYears, HomeDayFactor * daysPerYear, "homes powered for a year"},
	{KindTreeSeedlings, TreeSeedlingFactor, "tree seedlings grown for 10 years"},
	{KindSmartphonesCharged, SmartphoneChargeFactor, "smartphones charged"},
}

// Calculate converts value in unit to kilograms and computes every
// equivalent. Amounts below MinThresholdKg yield an empty output without
// error.
func Calculate(value float64, unit string) (Output, error) {
	kg, err := NormalizeToKg(value, unit)
	if err != nil {
		return Output{IsEmpty: true}, err
	}
	if kg < MinThresholdKg {
		return Output{InputKg: kg, IsEmpty: true}, nil
	}

	results := make([]Result, 0, len(kinds))
	for _, k := range kinds {
		v := kg / k.factor
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return Output{IsEmpty: true}, ErrOverflow
		}
		results = append(results, Result{
			Kind:      k.kind,
			Value:     v,
			Formatted: FormatScaled(v),
			Label:     k.label,
		})
	}

	return Output{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving %s miles or powering %s homes for a year",
			results[0].Formatted, results[1].Formatted),
	}, nil
}

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatScaled renders v with thousands separators below one million and
// as "~1.5 million", "~2.3 billion" or "~4.1 trillion" above.
func FormatScaled(v float64) string {
	switch {
	case v >= trillion:
		return fmt.Sprintf("~%.1f trillion", v/trillion)
	case v >= billion:
		return fmt.Sprintf("~%.1f billion", v/billion)
	case v >= million:
		return fmt.Sprintf("~%.1f million", v/million)
	default:
		return printer.Sprintf("%d", int64(math.Round(v)))
	}
}

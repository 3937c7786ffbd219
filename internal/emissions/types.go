// Package emissions provides the descriptive-statistics and growth engine
// behind the greenhouse-gas dashboard.
//
// It aggregates per-gas yearly readings into summary statistics, computes
// year-over-year growth between two selected years, and applies simulated
// "what-if" edits to a statistics snapshot. Every operation is pure: inputs
// are never mutated and results are freshly constructed values.
package emissions

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GasKey identifies one of the tracked emission categories.
type GasKey string

const (
	// GasTotal is the aggregate of all tracked gases for a year.
	GasTotal GasKey = "total"

	// GasCO2 is carbon dioxide.
	GasCO2 GasKey = "co2"

	// GasCH4 is methane.
	GasCH4 GasKey = "ch4"

	// GasN2O is nitrous oxide.
	GasN2O GasKey = "n2o"
)

// ComponentGases lists the non-total gases whose yearly readings sum to total.
//
//nolint:gochecknoglobals // Fixed enumeration.
var ComponentGases = []GasKey{GasCO2, GasCH4, GasN2O}

// DisplayOrder is the order in which gases are shown on the dashboard.
//
//nolint:gochecknoglobals // Fixed enumeration.
var DisplayOrder = []GasKey{GasTotal, GasCO2, GasN2O, GasCH4}

// Valid reports whether g is one of the known gas keys.
func (g GasKey) Valid() bool {
	switch g {
	case GasTotal, GasCO2, GasCH4, GasN2O:
		return true
	default:
		return false
	}
}

// Label returns the short display label for the gas (e.g. "CO2").
func (g GasKey) Label() string {
	switch g {
	case GasTotal:
		return "Total"
	case GasCO2:
		return "CO2"
	case GasCH4:
		return "CH4"
	case GasN2O:
		return "N2O"
	default:
		return string(g)
	}
}

// ParseGasKey converts user input such as "CO2" or " total " into a GasKey.
// Matching is case-insensitive. Returns ErrUnknownGas for anything else.
func ParseGasKey(s string) (GasKey, error) {
	g := GasKey(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownGas, s)
	}
	return g, nil
}

// Reading is a single raw observation for a year.
//
// The statistics API normally sends numbers, but strings, nulls and garbage
// have been observed. Valid is true only when the reading parsed to a finite
// float64; invalid readings are carried along but ignored by every
// computation.
type Reading struct {
	Value float64
	Valid bool
}

// Num returns a Reading for v. Non-finite values produce an invalid reading.
func Num(v float64) Reading {
	return Reading{Value: v, Valid: isFinite(v)}
}

// ParseReading parses a textual reading. Surrounding whitespace is ignored.
// Unparseable or non-finite input yields an invalid reading, never an error.
func ParseReading(s string) Reading {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Reading{}
	}
	return Num(v)
}

// YearValueMap maps a year (decimal string key) to its ordered readings.
type YearValueMap map[string][]Reading

// Clone returns a deep copy of m. A nil map clones to nil.
func (m YearValueMap) Clone() YearValueMap {
	if m == nil {
		return nil
	}
	out := make(YearValueMap, len(m))
	for year, readings := range m {
		out[year] = append([]Reading(nil), readings...)
	}
	return out
}

// Numbers flattens every valid reading into a single slice.
// Iteration order over years is unspecified; callers that need order sort.
func (m YearValueMap) Numbers() []float64 {
	nums := make([]float64, 0, len(m))
	for _, readings := range m {
		for _, r := range readings {
			if r.Valid {
				nums = append(nums, r.Value)
			}
		}
	}
	return nums
}

// First returns the reading at index 0 for year. Only that position is
// consulted: later readings for the same year are ignored even when the
// first one is invalid.
func (m YearValueMap) First(year int) (float64, bool) {
	readings := m[strconv.Itoa(year)]
	if len(readings) == 0 || !readings[0].Valid {
		return 0, false
	}
	return readings[0].Value, true
}

// With returns a copy of m where year holds exactly one reading, v.
// Prior readings for that year are discarded. m is not modified.
func (m YearValueMap) With(year string, v float64) YearValueMap {
	out := m.Clone()
	if out == nil {
		out = make(YearValueMap, 1)
	}
	out[year] = []Reading{Num(v)}
	return out
}

// StatSnapshot is the summary of one gas over a year range.
//
// Every summary field is optional: nil means "not computable" (for example,
// no valid readings in the range). Fields are never defaulted to zero.
type StatSnapshot struct {
	Mean      *float64     `json:"mean,omitempty"`
	Median    *float64     `json:"median,omitempty"`
	Min       *float64     `json:"min,omitempty"`
	Max       *float64     `json:"max,omitempty"`
	Range     *float64     `json:"range,omitempty"`
	Variance  *float64     `json:"variance,omitempty"`
	StdDev    *float64     `json:"std_dev,omitempty"`
	RawValues YearValueMap `json:"raw_values,omitempty"`
}

// Computable reports whether the snapshot carries a mean.
func (s StatSnapshot) Computable() bool {
	return s.Mean != nil
}

// StatsByGas maps each gas to its statistics snapshot.
type StatsByGas map[GasKey]StatSnapshot

// YearRange is an inclusive [Start, End] pair of calendar years.
type YearRange struct {
	Start int `json:"start_year"`
	End   int `json:"end_year"`
}

// Dashboard defaults for the selectable year range.
const (
	DefaultStartYear  = 2013
	DefaultEndYear    = 2023
	MinSelectableYear = 1970
	MaxSelectableYear = 2025
)

// DefaultYearRange returns the range shown when the dashboard first loads.
func DefaultYearRange() YearRange {
	return YearRange{Start: DefaultStartYear, End: DefaultEndYear}
}

// Validate returns ErrInvalidRange when Start is after End.
func (r YearRange) Validate() error {
	if r.Start > r.End {
		return fmt.Errorf("%w: start %d is after end %d", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

// Years lists every year in the range in ascending order.
// An invalid range yields nil.
func (r YearRange) Years() []int {
	if r.Validate() != nil {
		return nil
	}
	years := make([]int, 0, r.End-r.Start+1)
	for y := r.Start; y <= r.End; y++ {
		years = append(years, y)
	}
	return years
}

// String formats the range as "2013 - 2023".
func (r YearRange) String() string {
	return fmt.Sprintf("%d - %d", r.Start, r.End)
}

// Edit is a single simulated override of one (gas, year) reading.
type Edit struct {
	Gas   GasKey  `json:"gas"`
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// ParseEdit builds an Edit from raw form input.
// It returns ErrUnknownGas for an unrecognised gas and ErrInvalidEdit when
// the year is not a positive integer or the value is not a finite number.
// Nothing is coerced: an empty value is rejected rather than treated as 0.
func ParseEdit(gas, year, value string) (Edit, error) {
	g, err := ParseGasKey(gas)
	if err != nil {
		return Edit{}, err
	}

	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y <= 0 {
		return Edit{}, fmt.Errorf("%w: year %q is not a positive integer", ErrInvalidEdit, year)
	}

	r := ParseReading(value)
	if !r.Valid {
		return Edit{}, fmt.Errorf("%w: value %q is not a finite number", ErrInvalidEdit, value)
	}

	return Edit{Gas: g, Year: y, Value: r.Value}, nil
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ptr returns a pointer to a copy of v.
func ptr(v float64) *float64 {
	return &v
}

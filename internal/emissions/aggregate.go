package emissions

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds the descriptive statistics of a non-empty sample.
type Summary struct {
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Range    float64 `json:"range"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
}

// Summarize computes descriptive statistics over nums.
//
// Non-finite values are dropped first. It returns false when nothing is
// left, in which case the Summary is the zero value and must not be used.
// Variance is the population variance (divisor n, not n-1).
func Summarize(nums []float64) (Summary, bool) {
	sorted := make([]float64, 0, len(nums))
	for _, v := range nums {
		if isFinite(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return Summary{}, false
	}
	sort.Float64s(sorted)

	n := len(sorted)
	var median float64
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	} else {
		median = sorted[n/2]
	}

	mean, variance := stat.PopMeanVariance(sorted, nil)
	// Guard against a tiny negative result from the compensation term.
	if variance < 0 {
		variance = 0
	}

	minVal, maxVal := sorted[0], sorted[n-1]
	// Rounding in the running sum can push the mean one ULP past the extremes.
	mean = math.Min(math.Max(mean, minVal), maxVal)

	return Summary{
		Mean:     mean,
		Median:   median,
		Min:      minVal,
		Max:      maxVal,
		Range:    maxVal - minVal,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}, true
}

// ComputeStats aggregates every valid reading in values into a snapshot.
//
// Readings from all years are flattened into one sample. When no valid
// reading exists the summary fields are left nil ("not computable"); this is
// a normal outcome, e.g. a country with no data in the selected range.
// The returned snapshot carries its own copy of values.
func ComputeStats(values YearValueMap) StatSnapshot {
	snap := StatSnapshot{RawValues: values.Clone()}

	s, ok := Summarize(values.Numbers())
	if !ok {
		return snap
	}

	snap.Mean = ptr(s.Mean)
	snap.Median = ptr(s.Median)
	snap.Min = ptr(s.Min)
	snap.Max = ptr(s.Max)
	snap.Range = ptr(s.Range)
	snap.Variance = ptr(s.Variance)
	snap.StdDev = ptr(s.StdDev)
	return snap
}

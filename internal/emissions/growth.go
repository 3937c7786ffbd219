package emissions

// Trend is the direction of change between two years.
type Trend string

const (
	// TrendUp marks an increase.
	TrendUp Trend = "up"

	// TrendDown marks a decrease.
	TrendDown Trend = "down"

	// TrendNeutral marks no change or an unknown change.
	TrendNeutral Trend = "neutral"
)

// percentMultiplier converts a ratio into a percentage.
const percentMultiplier = 100

// ComputeGrowth returns the signed percentage change between the first
// reading of r.Start and the first reading of r.End.
//
// The second return value is false ("not computable") when the range is
// invalid or spans a single year, when either year has no valid first
// reading, or when the start value is exactly zero. Values beyond ±100 are
// legitimate.
func ComputeGrowth(values YearValueMap, r YearRange) (float64, bool) {
	if r.Validate() != nil || r.Start == r.End {
		return 0, false
	}

	start, ok := values.First(r.Start)
	if !ok || start == 0 {
		return 0, false
	}

	end, ok := values.First(r.End)
	if !ok {
		return 0, false
	}

	growth := ((end - start) / start) * percentMultiplier
	if !isFinite(growth) {
		return 0, false
	}
	return growth, true
}

// ClassifyTrend maps a growth result to a Trend. Uncomputable growth and
// exactly zero growth are both neutral.
func ClassifyTrend(growth float64, ok bool) Trend {
	switch {
	case !ok:
		return TrendNeutral
	case growth > 0:
		return TrendUp
	case growth < 0:
		return TrendDown
	default:
		return TrendNeutral
	}
}

package emissions

// FillPolicy decides what a chart series shows for a year without a valid
// reading.
type FillPolicy int

const (
	// FillMean substitutes the snapshot mean and skips the year when the
	// mean is not computable. Used by stat-card sparklines.
	FillMean FillPolicy = iota

	// FillZero plots 0. Used by the multi-gas line chart so every gas has
	// one point per year.
	FillZero
)

// Point is one (year, value) pair of a chart series.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// BuildSeries returns one point per year of r, in ascending year order,
// using the first valid reading of each year and fill for gaps.
// An invalid range yields an empty series.
func BuildSeries(s StatSnapshot, r YearRange, fill FillPolicy) []Point {
	years := r.Years()
	points := make([]Point, 0, len(years))
	for _, year := range years {
		if v, ok := s.RawValues.First(year); ok {
			points = append(points, Point{Year: year, Value: v})
			continue
		}

		switch fill {
		case FillZero:
			points = append(points, Point{Year: year})
		case FillMean:
			if s.Mean != nil {
				points = append(points, Point{Year: year, Value: *s.Mean})
			}
		}
	}
	return points
}

// Values extracts the values of a series, dropping the years.
func Values(points []Point) []float64 {
	vals := make([]float64, len(points))
	for i, p := range points {
		vals[i] = p.Value
	}
	return vals
}

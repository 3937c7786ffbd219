package emissions

// Card is the presentation-ready summary of one gas for the selected country
// and year range.
type Card struct {
	Gas      GasKey       `json:"gas"`
	Title    string       `json:"title"`
	Country  string       `json:"country,omitempty"`
	Interval string       `json:"interval"`
	Year     int          `json:"latest_year"`
	Latest   *float64     `json:"latest,omitempty"`
	Growth   *float64     `json:"growth,omitempty"`
	Trend    Trend        `json:"trend"`
	Series   []Point      `json:"series"`
	Details  StatSnapshot `json:"details"`
}

// CardTitle returns the card heading for a gas, including the unit.
func CardTitle(g GasKey) string {
	switch g {
	case GasTotal:
		return "Total GHG (MtCO2)"
	case GasCO2, GasCH4, GasN2O:
		return g.Label() + " (MtCO2)"
	default:
		return g.Label()
	}
}

// BuildCards builds one card per gas in DisplayOrder.
//
// Gases absent from stats still get a card so the layout stays stable; such
// cards have no latest value, no growth, a neutral trend and an empty
// series. Growth is always computed locally from the raw readings so that
// simulated edits are reflected immediately.
func BuildCards(stats StatsByGas, r YearRange, country string) []Card {
	cards := make([]Card, 0, len(DisplayOrder))
	for _, gas := range DisplayOrder {
		snap, present := stats[gas]

		card := Card{
			Gas:      gas,
			Title:    CardTitle(gas),
			Country:  country,
			Interval: r.String(),
			Year:     r.End,
			Trend:    TrendNeutral,
			Series:   []Point{},
			Details:  snap,
		}

		if !present {
			cards = append(cards, card)
			continue
		}

		if v, ok := snap.RawValues.First(r.End); ok {
			card.Latest = ptr(v)
		}

		growth, ok := ComputeGrowth(snap.RawValues, r)
		if ok {
			card.Growth = ptr(growth)
		}
		card.Trend = ClassifyTrend(growth, ok)

		card.Series = BuildSeries(snap, r, FillMean)
		if len(card.Series) == 0 && snap.Mean != nil && *snap.Mean != 0 {
			card.Series = []Point{{Year: r.Start, Value: *snap.Mean}}
		}

		cards = append(cards, card)
	}
	return cards
}

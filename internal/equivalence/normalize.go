package equivalence

import (
	"math"
	"strings"
)

// unitFactor returns the kilogram factor for unit, matched case-insensitively
// with or without a CO2/CO2e suffix.
func unitFactor(unit string) (float64, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.TrimSuffix(u, "co2e")
	u = strings.TrimSuffix(u, "co2")
	switch u {
	case "g":
		return GramsToKg, true
	case "kg":
		return KgToKg, true
	case "t":
		return TonsToKg, true
	case "kt":
		return KilotonsToKg, true
	case "mt":
		return MegatonsToKg, true
	case "lb":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts value in unit to kilograms.
// Recognised units: g, kg, t, kt, Mt, lb, each optionally suffixed with
// CO2 or CO2e. "Mt" is megatonnes.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}
	factor, ok := unitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}
	kg := value * factor
	if math.IsInf(kg, 0) {
		return 0, ErrOverflow
	}
	return kg, nil
}

package equivalence

// EPA factors, kg CO2e per unit of activity.
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
const (
	// MilesDrivenFactor is kg CO2e per mile for an average passenger vehicle.
	MilesDrivenFactor = 0.192

	// SmartphoneChargeFactor is kg CO2e per full smartphone charge.
	SmartphoneChargeFactor = 0.00822

	// TreeSeedlingFactor is kg CO2e absorbed by one seedling grown for 10 years.
	TreeSeedlingFactor = 60.0

	// HomeDayFactor is kg CO2e per day of average US home electricity use.
	HomeDayFactor = 18.3

	daysPerYear = 365
)

// Unit conversions to kilograms.
const (
	KgToKg       = 1.0
	TonsToKg     = 1e3
	KilotonsToKg = 1e6
	MegatonsToKg = 1e9
	PoundsToKg   = 0.453592
	GramsToKg    = 0.001
	DefaultUnit  = "MtCO2e"
	thousand     = 1e3
	million      = 1e6
	billion      = 1e9
	trillion     = 1e12
)

// MinThresholdKg is the smallest amount for which equivalents are shown.
const MinThresholdKg = 1.0

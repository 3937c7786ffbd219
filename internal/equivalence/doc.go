// Package equivalence turns emission totals into relatable equivalents such
// as "miles driven" or "homes powered for a year".
//
// Factors are the EPA Greenhouse Gas Equivalencies Calculator figures,
// expressed as kg CO2e per unit of activity:
//
//	equivalent = kg_CO2e / factor
package equivalence

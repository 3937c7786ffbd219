// Package format renders emission figures for display.
//
// Numbers are formatted with locale-aware grouping and decimal separators
// (Indonesian by default, matching the dashboard's audience) and at most
// two fraction digits.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is the BCP 47 tag used when none is configured.
const DefaultLocale = "id"

// maxFractionDigits caps decimals shown for emission figures.
const maxFractionDigits = 2

// Placeholder is shown for values that are not computable.
const Placeholder = "-"

// Formatter formats numbers for a single locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Formatter for locale. An empty or unparseable locale falls
// back to DefaultLocale.
func New(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.Indonesian
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}
}

// Locale returns the BCP 47 tag in use.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Number formats v with thousand separators and up to two decimals.
// Example (id): Number(1234.567) returns "1.234,57".
func (f *Formatter) Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	return f.printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(maxFractionDigits)))
}

// Optional formats v, or returns Placeholder when v is nil.
func (f *Formatter) Optional(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return f.Number(*v)
}

// Latest formats the end-year reading of a card, e.g. "(2023): 1.234,5".
func (f *Formatter) Latest(year int, v *float64) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("(%d): %s", year, f.Number(*v))
}

// Growth formats a growth percentage with an explicit plus sign for
// increases and exactly two decimals, e.g. "+12.34%" or "-3.10%".
// A nil growth returns Placeholder.
func Growth(g *float64) string {
	if g == nil || math.IsNaN(*g) || math.IsInf(*g, 0) {
		return Placeholder
	}
	sign := ""
	if *g > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, *g)
}

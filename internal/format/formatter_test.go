package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestFormatter_Number(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		value  float64
		want   string
	}{
		{name: "english grouping and rounding", locale: "en", value: 1234.567, want: "1,234.57"},
		{name: "english integer", locale: "en", value: 37000, want: "37,000"},
		{name: "english drops trailing zeros", locale: "en", value: 12.5, want: "12.5"},
		{name: "english negative", locale: "en", value: -25, want: "-25"},
		{name: "indonesian separators", locale: "id", value: 1234.5, want: "1.234,5"},
		{name: "empty locale defaults to indonesian", locale: "", value: 1234.5, want: "1.234,5"},
		{name: "not a number", locale: "en", value: math.NaN(), want: Placeholder},
		{name: "infinity", locale: "en", value: math.Inf(1), want: Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.locale).Number(tt.value))
		})
	}
}

func TestFormatter_Locale(t *testing.T) {
	assert.Equal(t, "en", New("en").Locale())
	assert.Equal(t, "id", New("not a locale!").Locale())
}

func TestFormatter_OptionalAndLatest(t *testing.T) {
	f := New("en")

	assert.Equal(t, Placeholder, f.Optional(nil))
	assert.Equal(t, "20", f.Optional(f64(20)))

	assert.Equal(t, Placeholder, f.Latest(2023, nil))
	assert.Equal(t, "(2023): 1,500", f.Latest(2023, f64(1500)))
}

func TestGrowth(t *testing.T) {
	assert.Equal(t, "+50.00%", Growth(f64(50)))
	assert.Equal(t, "-3.10%", Growth(f64(-3.1)))
	assert.Equal(t, "0.00%", Growth(f64(0)))
	assert.Equal(t, Placeholder, Growth(nil))
	assert.Equal(t, Placeholder, Growth(f64(math.Inf(1))))
}

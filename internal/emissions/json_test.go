package emissions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReading_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Reading
	}{
		{name: "number", input: `12.5`, want: Reading{Value: 12.5, Valid: true}},
		{name: "integer", input: `37000`, want: Reading{Value: 37000, Valid: true}},
		{name: "numeric string", input: `"41.25"`, want: Reading{Value: 41.25, Valid: true}},
		{name: "padded numeric string", input: `" 7 "`, want: Reading{Value: 7, Valid: true}},
		{name: "null", input: `null`, want: Reading{}},
		{name: "text", input: `"n/a"`, want: Reading{}},
		{name: "empty string", input: `""`, want: Reading{}},
		{name: "NaN string", input: `"NaN"`, want: Reading{}},
		{name: "boolean", input: `true`, want: Reading{}},
		{name: "object", input: `{"v":1}`, want: Reading{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Reading
			require.NoError(t, r.UnmarshalJSON([]byte(tt.input)))
			assert.Equal(t, tt.want, r)
		})
	}
}

func TestStatsByGas_UnmarshalAPIResponse(t *testing.T) {
	payload := `{
		"total": {"mean": 17, "median": 17, "min": 17, "max": 17, "range": 0, "variance": 0, "std_dev": 0,
		          "raw_values": {"2020": [17], "2021": ["18.5"], "2022": ["n/a"], "2023": null}},
		"co2":   {"raw_values": {"2020": 10}},
		"ch4":   {"mean": 5},
		"n2o":   null,
		"hfc":   {"mean": 1},
		"meta":  "generated"
	}`

	var stats StatsByGas
	require.NoError(t, json.Unmarshal([]byte(payload), &stats))

	assert.Len(t, stats, 3)
	assert.NotContains(t, stats, GasN2O)
	assert.NotContains(t, stats, GasKey("hfc"))

	total := stats[GasTotal]
	require.NotNil(t, total.Mean)
	assert.InDelta(t, 17.0, *total.Mean, 0)
	assert.Equal(t, []Reading{Num(17)}, total.RawValues["2020"])
	assert.Equal(t, []Reading{Num(18.5)}, total.RawValues["2021"])
	assert.Equal(t, []Reading{{}}, total.RawValues["2022"])
	assert.Empty(t, total.RawValues["2023"])

	co2 := stats[GasCO2]
	assert.Nil(t, co2.Mean)
	assert.Equal(t, []Reading{Num(10)}, co2.RawValues["2020"])

	ch4 := stats[GasCH4]
	assert.Nil(t, ch4.RawValues)
	assert.InDelta(t, 5.0, *ch4.Mean, 0)

	// Recomputing from the tolerant decode only sees the valid readings.
	recomputed := ComputeStats(total.RawValues)
	assert.InDelta(t, 17.75, *recomputed.Mean, 1e-12)
}

func TestStatsByGas_LooseSummaryFields(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantMean *float64
	}{
		{
			name:     "numeric string mean",
			payload:  `{"co2": {"mean": "12.5", "raw_values": {"2019": [10], "2021": [15]}}}`,
			wantMean: ptr(12.5),
		},
		{
			name:    "NaN string mean",
			payload: `{"co2": {"mean": "NaN", "raw_values": {"2019": [10], "2021": [15]}}}`,
		},
		{
			name:    "object mean",
			payload: `{"co2": {"mean": {"v": 1}, "std_dev": [], "raw_values": {"2019": [10], "2021": [15]}}}`,
		},
		{
			name:     "uppercase key",
			payload:  `{"CO2": {"mean": 12.5, "raw_values": {"2019": [10], "2021": [15]}}}`,
			wantMean: ptr(12.5),
		},
		{
			name:     "padded mixed-case key",
			payload:  `{" Co2 ": {"mean": 12.5, "raw_values": {"2019": [10], "2021": [15]}}}`,
			wantMean: ptr(12.5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stats StatsByGas
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &stats))
			require.Contains(t, stats, GasCO2)

			co2 := stats[GasCO2]
			if tt.wantMean == nil {
				assert.Nil(t, co2.Mean)
			} else {
				require.NotNil(t, co2.Mean)
				assert.InDelta(t, *tt.wantMean, *co2.Mean, 0)
			}
			assert.Nil(t, co2.StdDev)

			growth, ok := ComputeGrowth(co2.RawValues, YearRange{Start: 2019, End: 2021})
			require.True(t, ok)
			assert.InDelta(t, 50.0, growth, 1e-9)
		})
	}
}

func TestStatsByGas_NonObjectEntrySkipped(t *testing.T) {
	var stats StatsByGas
	require.NoError(t, json.Unmarshal([]byte(`{"co2": [1, 2], "ch4": "high", "total": {"raw_values": "none", "mean": 3}}`), &stats))

	assert.NotContains(t, stats, GasCO2)
	assert.NotContains(t, stats, GasCH4)
	require.Contains(t, stats, GasTotal)
	assert.Nil(t, stats[GasTotal].RawValues)
	require.NotNil(t, stats[GasTotal].Mean)
	assert.InDelta(t, 3.0, *stats[GasTotal].Mean, 0)
}

func TestStatsByGas_MalformedTopLevel(t *testing.T) {
	var stats StatsByGas
	assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &stats))
}

func TestStatSnapshot_MarshalOmitsUncomputable(t *testing.T) {
	snap := ComputeStats(YearValueMap{"2020": {ParseReading("n/a")}})

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.JSONEq(t, `{"raw_values": {"2020": [null]}}`, string(data))

	snap = ComputeStats(yv(map[string]float64{"2020": 20}))
	data, err = json.Marshal(snap)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mean":20,"median":20,"min":20,"max":20,"range":0,"variance":0,"std_dev":0,
		"raw_values":{"2020":[20]}}`, string(data))
}

package emissions

import (
	"bytes"
	"encoding/json"
	"strconv"
)

//nolint:gochecknoglobals // Literal used for null comparisons.
var jsonNull = []byte("null")

// UnmarshalJSON accepts a number, a numeric string or anything else.
// Anything that does not parse to a finite number becomes an invalid
// reading; it never returns an error.
func (r *Reading) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		*r = Reading{}
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			*r = Reading{}
			return nil
		}
		*r = ParseReading(s)
		return nil
	}

	v, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		*r = Reading{}
		return nil
	}
	*r = Num(v)
	return nil
}

// MarshalJSON writes valid readings as numbers and invalid ones as null.
func (r Reading) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return jsonNull, nil
	}
	return strconv.AppendFloat(nil, r.Value, 'g', -1, 64), nil
}

// UnmarshalJSON accepts both {"2020": [1.5]} and the scalar form
// {"2020": 1.5}; a scalar becomes a one-element sequence and null becomes
// an empty one.
func (m *YearValueMap) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*m = nil
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(YearValueMap, len(raw))
	for year, value := range raw {
		value = bytes.TrimSpace(value)
		switch {
		case bytes.Equal(value, jsonNull):
			out[year] = nil
		case len(value) > 0 && value[0] == '[':
			var readings []Reading
			if err := json.Unmarshal(value, &readings); err != nil {
				out[year] = nil
				continue
			}
			out[year] = readings
		default:
			var r Reading
			_ = r.UnmarshalJSON(value)
			out[year] = []Reading{r}
		}
	}
	*m = out
	return nil
}

// UnmarshalJSON decodes an API statistics payload.
//
// Gas keys are matched case-insensitively and only the tracked gases are
// kept. Unknown keys, null entries and entries that are not objects are
// skipped so one bad record cannot hide the rest of the response.
func (s *StatsByGas) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(StatsByGas, len(raw))
	for key, value := range raw {
		gas, err := ParseGasKey(key)
		if err != nil || bytes.Equal(bytes.TrimSpace(value), jsonNull) {
			continue
		}
		snap, ok := decodeSnapshot(value)
		if !ok {
			continue
		}
		out[gas] = snap
	}
	*s = out
	return nil
}

// decodeSnapshot reads one gas entry. Summary fields follow the Reading
// rules, so a string or non-finite value clears that field only. A
// malformed raw_values leaves the summary in place.
func decodeSnapshot(value json.RawMessage) (StatSnapshot, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(value, &fields); err != nil {
		return StatSnapshot{}, false
	}

	var snap StatSnapshot
	for name, dst := range map[string]**float64{
		"mean":     &snap.Mean,
		"median":   &snap.Median,
		"min":      &snap.Min,
		"max":      &snap.Max,
		"range":    &snap.Range,
		"variance": &snap.Variance,
		"std_dev":  &snap.StdDev,
	} {
		field, present := fields[name]
		if !present {
			continue
		}
		var r Reading
		_ = r.UnmarshalJSON(field)
		if r.Valid {
			*dst = ptr(r.Value)
		}
	}

	if rv, present := fields["raw_values"]; present {
		var values YearValueMap
		if err := json.Unmarshal(rv, &values); err == nil {
			snap.RawValues = values
		}
	}
	return snap, true
}

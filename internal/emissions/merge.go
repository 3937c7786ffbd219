package emissions

import (
	"fmt"
	"maps"
	"strconv"
)

// ApplyEdit returns a new StatsByGas with edit applied.
//
// The edited gas gets edit.Value as the only reading for edit.Year and its
// snapshot is recomputed from the updated readings. When the edited gas is
// not GasTotal, total's reading for that year becomes the sum of edit.Value
// and the other two component gases' first readings (missing or invalid
// readings contribute 0), and total's Mean is overwritten with that sum.
// Total's other summary fields are left untouched.
//
// A gas missing from current is treated as having no readings.
//
// current is never modified; gases the edit does not touch keep their
// existing snapshots. On error, current itself is returned together with
// ErrUnknownGas or ErrInvalidEdit.
func ApplyEdit(current StatsByGas, edit Edit) (StatsByGas, error) {
	if !edit.Gas.Valid() {
		return current, fmt.Errorf("%w: %q", ErrUnknownGas, edit.Gas)
	}
	if !isFinite(edit.Value) {
		return current, fmt.Errorf("%w: value %v is not a finite number", ErrInvalidEdit, edit.Value)
	}

	year := strconv.Itoa(edit.Year)

	next := make(StatsByGas, len(current)+1)
	maps.Copy(next, current)

	next[edit.Gas] = ComputeStats(current[edit.Gas].RawValues.With(year, edit.Value))

	if edit.Gas == GasTotal {
		return next, nil
	}

	sum := edit.Value
	for _, gas := range ComponentGases {
		if gas == edit.Gas {
			continue
		}
		if v, ok := current[gas].RawValues.First(edit.Year); ok {
			sum += v
		}
	}

	// TODO: recompute total.Mean over the full history once the dashboard no
	// longer displays the overwritten single-year value as the total mean.
	total := current[GasTotal]
	total.RawValues = total.RawValues.With(year, sum)
	total.Mean = ptr(sum)
	next[GasTotal] = total

	return next, nil
}

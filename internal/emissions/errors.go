package emissions

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is.
//
// Malformed data never produces an error: missing years, missing gases and
// unparseable readings degrade to "not computable" results instead. These
// errors are reserved for malformed requests.
var (
	// ErrInvalidEdit indicates a simulated edit whose value (or year) is not
	// a usable number. The edit is rejected and no state changes.
	ErrInvalidEdit = constError("invalid edit")

	// ErrUnknownGas indicates a gas key outside the tracked set.
	ErrUnknownGas = constError("unknown gas")

	// ErrInvalidRange indicates a year range whose start is after its end.
	ErrInvalidRange = constError("invalid year range")
)

package equivalence

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrInvalidUnit indicates an unrecognised emission unit.
	ErrInvalidUnit = constError("invalid emission unit")

	// ErrNegativeValue indicates a negative emission amount.
	ErrNegativeValue = constError("negative emission value")

	// ErrOverflow indicates a non-finite input or result.
	ErrOverflow = constError("calculation overflow")
)

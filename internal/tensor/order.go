package tensor

// Order selects how logical indices are scanned.
type Order int

const (
	// C is row-major order: the last axis varies fastest.
	C Order = iota
	// F is column-major order: the first axis varies fastest.
	F
	// S is storage order: whatever order the layout's strides describe.
	S
)

// String returns "C", "F" or "S".
func (o Order) String() string {
	switch o {
	case C:
		return "C"
	case F:
		return "F"
	case S:
		return "S"
	default:
		return "unknown"
	}
}

// dense reports whether o names a dense order.
func (o Order) dense() bool {
	return o == C || o == F
}

package manifold

import "errors"

// Analysis errors. Only ErrUnknownMode is ever surfaced to API callers;
// the rest degrade to a well-defined default result.
var (
	// ErrUnknownMode is returned for a mode string that is neither
	// "heuristic" nor "exact".
	ErrUnknownMode = errors.New("manifold: unknown analysis mode")

	// ErrComputation is returned when parameter derivation produced a
	// non-finite value. The analyzer converts it into an indeterminate
	// result rather than propagating it.
	ErrComputation = errors.New("manifold: derivation produced non-finite value")

	// ErrBudgetExceeded is returned by the exact path when the tuple budget
	// or deadline would be exceeded. The analyzer falls back to the
	// heuristic delta and marks ExactUsed=false.
	ErrBudgetExceeded = errors.New("manifold: exact computation over budget")
)

// IsBudgetExceeded checks whether the error is an exact-path budget error.
func IsBudgetExceeded(err error) bool {
	return errors.Is(err, ErrBudgetExceeded)
}

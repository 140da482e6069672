package engine

import "errors"

var (
	// ErrSourceUnavailable wraps failures of the embedding source. The
	// HTTP layer maps it to 502.
	ErrSourceUnavailable = errors.New("engine: embedding source unavailable")
)

// IsSourceUnavailable checks if the error stems from the embedding source.
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

package bus

import "errors"

// Publisher errors. Both are observed and logged, never propagated to the
// API caller.
var (
	// ErrQueueFull is recorded when an event is dropped because the
	// bounded queue is at capacity.
	ErrQueueFull = errors.New("bus: event queue full")

	// ErrClosed is returned by transports after shutdown.
	ErrClosed = errors.New("bus: publisher closed")
)

// IsQueueFull checks if the error denotes a dropped event.
func IsQueueFull(err error) bool {
	return errors.Is(err, ErrQueueFull)
}

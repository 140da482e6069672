package bus

import "context"

// TopicManifoldUpdate is the well-known topic visualization consumers
// subscribe to for freshly computed geometry packets.
const TopicManifoldUpdate = "geometry.event.manifold_update"

// Publisher is the transport contract for the event bus. RabbitMQ and
// Kafka implementations live in their own packages; tests use the
// generated mock in this package.
//
//go:generate mockgen -source=interface.go -destination=mock_publisher.go -package=bus
type Publisher interface {
	// Publish delivers one serialized event to the given topic. A returned
	// error means the event was not delivered; the caller decides whether
	// that matters.
	Publish(ctx context.Context, topic string, body []byte) error
}

// Logger defines the interface for logging operations in the bus package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

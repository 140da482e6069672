// Package rabbit provides the RabbitMQ transport for visualization events.
//
// The client keeps a single connection and a confirmed channel to the
// broker, declares the durable topic exchange geometry events are routed
// through, and reconnects automatically when the broker drops the
// connection. Publishing uses the event topic as the AMQP routing key, so
// subscribers can bind queues per topic pattern.
//
// The package is publisher-only. Consumers of
// geometry.event.manifold_update live in downstream dashboard services and
// are out of scope here.
//
// Basic Usage:
//
//	log, _ := logger.NewLoggerClient(logger.NewConfig())
//	client := rabbit.NewClient(rabbit.NewConfig(), log)
//
//	err := client.Publish(ctx, "geometry.event.manifold_update", payload)
//	if err != nil {
//		log.Error("publish failed", err, nil)
//	}
//
// In the service binary the client is wired through FXModule, which owns
// the reconnection goroutine and graceful shutdown.
package rabbit

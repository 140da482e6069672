// Package kafka provides the Kafka transport for visualization events.
//
// It is the alternative to the RabbitMQ transport and is selected with
// BUS_DRIVER=kafka in the service binary. The client wraps a single
// kafka-go writer without a fixed topic; Publish routes each message by
// the topic it is called with, so geometry.event.manifold_update maps
// directly to a Kafka topic of the same name.
//
// TLS and SASL (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512) are supported and
// configured from the environment, see NewConfig.
package kafka

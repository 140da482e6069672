package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/cipheratlas/geometry-engine/pkg/observability"
)

// Logger defines the interface for logging operations in the kafka package.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=kafka
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Client publishes visualization events to Kafka. The writer carries no
// fixed topic; each message is routed by the topic given to Publish, so
// one client serves every geometry event stream.
type Client struct {
	cfg      Config
	writer   *kafka.Writer
	logger   Logger
	observer observability.Observer
}

// NewClient creates a Kafka producer from the provided configuration.
func NewClient(cfg Config, logger Logger) (*Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = DefaultBatchTimeout
	}

	var tlsConfig *tls.Config
	var err error
	if cfg.TLS.Enabled {
		tlsConfig, err = createTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	var mechanism sasl.Mechanism
	if cfg.SASL.Enabled {
		mechanism, err = createSASLMechanism(cfg.SASL)
		if err != nil {
			return nil, fmt.Errorf("failed to create SASL mechanism: %w", err)
		}
	}

	client := &Client{
		cfg:    cfg,
		logger: logger,
		writer: createWriter(cfg, tlsConfig, mechanism, logger),
	}

	logger.Info("Kafka producer initialized", nil, map[string]interface{}{
		"brokers": cfg.Brokers,
	})
	return client, nil
}

// WithObserver attaches an observer for tracking publish operations and
// returns the client for method chaining.
func (c *Client) WithObserver(observer observability.Observer) *Client {
	c.observer = observer
	return c
}

// Publish writes one message to the given topic. Satisfies the
// bus.Publisher contract.
func (c *Client) Publish(ctx context.Context, topic string, body []byte) error {
	start := time.Now()
	err := c.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: body,
	})

	if c.observer != nil {
		c.observer.ObserveOperation(observability.OperationContext{
			Component: "kafka",
			Operation: "publish",
			Resource:  topic,
			Duration:  time.Since(start),
			Err:       err,
			Size:      int64(len(body)),
		})
	}

	if err != nil {
		c.logger.Error("error in publishing msg into kafka", err, map[string]interface{}{
			"topic": topic,
		})
		return err
	}

	c.logger.Debug("message published to kafka", nil, map[string]interface{}{
		"topic": topic,
	})
	return nil
}

// GracefulShutdown flushes and closes the writer.
func (c *Client) GracefulShutdown() error {
	c.logger.Info("closing kafka writer...", nil, nil)
	if err := c.writer.Close(); err != nil {
		c.logger.Error("error in closing kafka writer", err, nil)
		return err
	}
	return nil
}

// createErrorLogger routes kafka-go internal errors through the package
// logger.
func createErrorLogger(logger Logger) kafka.LoggerFunc {
	return func(msg string, args ...interface{}) {
		formattedMsg := msg
		if len(args) > 0 {
			formattedMsg = fmt.Sprintf(msg, args...)
		}
		logger.Error("Kafka internal error", nil, map[string]interface{}{
			"error": formattedMsg,
		})
	}
}

// createWriter creates a Kafka writer with the given configuration
func createWriter(cfg Config, tlsConfig *tls.Config, mechanism sasl.Mechanism, logger Logger) *kafka.Writer {
	writerConfig := kafka.WriterConfig{
		Brokers:      cfg.Brokers,
		Balancer:     &kafka.LeastBytes{},
		MaxAttempts:  cfg.MaxAttempts,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLogger:  createErrorLogger(logger),
	}

	if cfg.Async {
		writerConfig.Async = true
		writerConfig.BatchSize = cfg.BatchSize
		writerConfig.BatchTimeout = cfg.BatchTimeout
	}

	switch cfg.CompressionCodec {
	case "gzip":
		writerConfig.CompressionCodec = &compress.GzipCodec
	case "snappy":
		writerConfig.CompressionCodec = &compress.SnappyCodec
	case "lz4":
		writerConfig.CompressionCodec = &compress.Lz4Codec
	case "zstd":
		writerConfig.CompressionCodec = &compress.ZstdCodec
	}

	writerConfig.Dialer = &kafka.Dialer{
		TLS:           tlsConfig,
		SASLMechanism: mechanism,
	}

	return kafka.NewWriter(writerConfig)
}

// createTLSConfig creates a TLS configuration from the provided config
func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = caCertPool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// createSASLMechanism creates a SASL mechanism from the provided config
func createSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case "PLAIN":
		return plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", cfg.Mechanism)
	}
}

package rabbit

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger defines the interface for logging operations in the rabbit package.
// This interface allows the package to use any logging implementation that
// conforms to these methods.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=rabbit
type Logger interface {
	// Info logs informational messages, optionally with error and contextual fields
	Info(msg string, err error, fields ...map[string]interface{})

	// Debug logs debug-level messages, optionally with error and contextual fields
	Debug(msg string, err error, fields ...map[string]interface{})

	// Warn logs warning messages, optionally with error and contextual fields
	Warn(msg string, err error, fields ...map[string]interface{})

	// Error logs error messages with the associated error and optional contextual fields
	Error(msg string, err error, fields ...map[string]interface{})

	// Fatal logs critical errors that should terminate the application
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Rabbit is a publishing client for the geometry event exchange. It keeps
// one connection and one confirmed channel and reconnects automatically
// when the broker drops either.
type Rabbit struct {
	cfg Config

	// Channel is the AMQP channel used for publishing. Exposed for
	// direct operations when needed.
	Channel *amqp.Channel

	conn   *amqp.Connection
	logger Logger

	// mu protects concurrent access to connection and channel
	mu sync.RWMutex

	// shutdownSignal is closed when the client is being shut down
	shutdownSignal chan struct{}
}

// NewClient creates and initializes a RabbitMQ client with the provided
// configuration. It establishes the connection, opens a confirmed channel
// and declares the event exchange. Connection failure after all retries is
// fatal.
func NewClient(config Config, logger Logger) *Rabbit {
	con, err := newConnection(config, logger)
	if err != nil {
		logger.Fatal("error in connecting to rabbit after all retries", nil, nil)
	}

	ch, err := connectToChannel(con, config, logger)
	if ch == nil || err != nil {
		logger.Fatal("error in declaring channel", nil, nil)
	}

	return &Rabbit{
		cfg:            config,
		conn:           con,
		Channel:        ch,
		logger:         logger,
		shutdownSignal: make(chan struct{}),
	}
}

// connectToChannel opens a channel in confirm mode and declares the
// durable event exchange the publisher writes to.
func connectToChannel(rb *amqp.Connection, cfg Config, logger Logger) (*amqp.Channel, error) {
	ch, err := rb.Channel()
	if err != nil {
		logger.Error("failed to create channel", err, nil)
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if err = ch.Confirm(false); err != nil {
		logger.Error("failed to enable publisher confirms", err, nil)
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Channel.ExchangeName,
		cfg.Channel.ExchangeType,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		logger.Error("failed to declare exchange", err, map[string]interface{}{
			"exchange": cfg.Channel.ExchangeName,
		})
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return ch, nil
}

// RetryConnection monitors the connection and re-establishes it when it
// fails. Runs in a goroutine until the shutdown signal is received.
func (rb *Rabbit) RetryConnection(logger Logger, cfg Config) {
outerLoop:
	for {
		errChan := make(chan *amqp.Error, 1)
		rb.conn.NotifyClose(errChan)

		select {
		case <-rb.shutdownSignal:
			logger.Info("Stopping RetryConnection loop due to shutdown signal", nil, nil)
			return

		case err := <-errChan:
			logger.Warn("RabbitMQ connection closed, retrying...", err, nil)
		reconnectLoop:
			for {
				select {
				case <-rb.shutdownSignal:
					logger.Info("Stopping RetryConnection loop due to shutdown signal inside reconnect", nil, nil)
					return
				default:
					newConn, err := newConnection(cfg, logger)
					if err != nil {
						logger.Error("Reconnection failed", err, nil)
						time.Sleep(time.Duration(cfg.Channel.DelayToReconnect) * time.Second)
						continue reconnectLoop
					}

					rb.mu.Lock()
					rb.conn = newConn
					if rb.Channel != nil {
						_ = rb.Channel.Close()
					}
					rb.Channel, err = connectToChannel(newConn, cfg, logger)
					rb.mu.Unlock()

					if err != nil {
						logger.Error("Failed to reopen channel, retrying...", err, nil)
						continue reconnectLoop
					}

					logger.Info("Reconnected to RabbitMQ", nil, nil)
					continue outerLoop
				}
			}
		}
	}
}

// newConnection dials the broker with retry-friendly settings. Supports
// TLS with client certificates, TLS with server authentication only, and
// plain AMQP. A 2-second heartbeat detects disconnections quickly.
func newConnection(cfg Config, logger Logger) (*amqp.Connection, error) {

	logger.Info("Connecting to Rabbit", nil, nil)

	if cfg.Connection.IsSSLEnabled && cfg.Connection.UseCert {
		hostURL := fmt.Sprintf("amqps://%v:%v@%v:%v", cfg.Connection.User, cfg.Connection.Password, cfg.Connection.Host, cfg.Connection.Port)
		caCert, err := os.ReadFile(cfg.Connection.CACertPath)
		if err != nil {
			logger.Error("failed to read CA certificate", err, nil)
			return nil, err
		}
		caCertPool := x509.NewCertPool()
		caCertPool.AppendCertsFromPEM(caCert)

		cert, err := tls.LoadX509KeyPair(cfg.Connection.ClientCertPath, cfg.Connection.ClientKeyPath)
		if err != nil {
			logger.Error("failed to load client cert/key", err, nil)
			return nil, err
		}

		tlsConfig := &tls.Config{
			RootCAs:      caCertPool,
			Certificates: []tls.Certificate{cert},
			ServerName:   cfg.Connection.ServerName,
		}
		conn, err := amqp.DialConfig(hostURL, amqp.Config{
			Heartbeat:       2 * time.Second,
			TLSClientConfig: tlsConfig,
		})
		if err == nil {
			logger.Info("Connected to Rabbit", nil, map[string]interface{}{
				"rabbit_addr": hostURL,
			})
			return conn, nil
		}
		logger.Error("error in connecting to rabbit", nil, map[string]interface{}{
			"rabbit_addr": hostURL,
			"error":       err,
		})
	} else if !cfg.Connection.IsSSLEnabled {
		hostURL := fmt.Sprintf("amqp://%v:%v@%v:%v", cfg.Connection.User, cfg.Connection.Password, cfg.Connection.Host, cfg.Connection.Port)
		conn, err := amqp.DialConfig(hostURL, amqp.Config{
			Heartbeat: 2 * time.Second,
		})
		if err == nil {
			logger.Info("Connected to Rabbit", nil, map[string]interface{}{
				"rabbit_addr": hostURL,
			})
			return conn, nil
		}
		logger.Error("error in connecting to rabbit", nil, map[string]interface{}{
			"rabbit_addr": hostURL,
			"error":       err,
		})
	} else {
		hostURL := fmt.Sprintf("amqps://%v:%v@%v:%v", cfg.Connection.User, cfg.Connection.Password, cfg.Connection.Host, cfg.Connection.Port)
		conn, err := amqp.DialConfig(hostURL, amqp.Config{
			Heartbeat: 2 * time.Second,
		})
		if err == nil {
			logger.Info("Connected to Rabbit", nil, map[string]interface{}{
				"rabbit_addr": hostURL,
			})
			return conn, nil
		}
		logger.Error("error in connecting to rabbit", nil, map[string]interface{}{
			"rabbit_addr": hostURL,
			"error":       err,
		})
	}
	return nil, fmt.Errorf("failed to connect to Rabbit")
}

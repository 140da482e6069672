package rabbit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/mock/gomock"
)

// TestRabbitPublishRoundTrip verifies that a message published through the
// client reaches a queue bound to the event exchange with the topic as the
// routing key.
//
// Test Scenario:
//  1. Starts a RabbitMQ container instance
//  2. Initializes the client via Uber Fx with a mock logger
//  3. Binds a fresh queue to the declared topic exchange
//  4. Publishes a payload with a manifold-update routing key
//  5. Consumes from the bound queue and compares the body
func TestRabbitPublishRoundTrip(t *testing.T) {
	ctx := context.Background()

	// Initialize RabbitMQ container
	host, port, containerInstance := initializeRabbitMQ(ctx)

	// Wait for the RabbitMQ port to be available
	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), 2*time.Second)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 60*time.Second, 500*time.Millisecond, "RabbitMQ port not ready")

	var client *Rabbit
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockLog := NewMockLogger(ctrl)

	// Set up expected logger calls
	mockLog.EXPECT().Info("Connecting to Rabbit", gomock.Any(), gomock.Any()).Times(1)
	mockLog.EXPECT().Info("Connected to Rabbit", gomock.Any(), gomock.Any()).Times(1)
	mockLog.EXPECT().Debug("message published to rabbit", gomock.Any(), gomock.Any()).Times(1)
	mockLog.EXPECT().Info("Stopping RetryConnection loop due to shutdown signal", gomock.Any(), gomock.Any()).Times(1)
	mockLog.EXPECT().Info("closing rabbit channel...", gomock.Any(), gomock.Any()).Times(1)

	cfg := Config{
		Connection: Connection{
			Host:         host,
			Port:         uint(port),
			User:         "guest",
			Password:     "guest",
			IsSSLEnabled: false,
		},
		Channel: Channel{
			ExchangeName:     "geometry.events",
			ExchangeType:     "topic",
			ContentType:      "application/json",
			DelayToReconnect: 1,
		},
	}

	app := fx.New(
		fx.Provide(
			func() Config { return cfg },
			func() Logger { return mockLog },
			NewClient,
		),
		fx.Invoke(RegisterRabbitLifecycle),
		fx.Populate(&client),
	)

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(startCtx))

	require.Eventually(t, func() bool {
		client.mu.Lock()
		defer client.mu.Unlock()
		return client.conn != nil && !client.conn.IsClosed()
	}, 10*time.Second, 1*time.Second, "Connection should be established")

	// Bind a queue to the exchange so the published message is captured.
	queue, err := client.Channel.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, client.Channel.QueueBind(queue.Name, "geometry.event.manifold_update", cfg.Channel.ExchangeName, false, nil))

	msgs, err := client.Channel.Consume(queue.Name, "", true, false, false, false, nil)
	require.NoError(t, err)

	body := []byte(`{"document_id":"doc-integration"}`)
	publishCtx, publishCancel := context.WithTimeout(ctx, 2*time.Second)
	defer publishCancel()
	require.NoError(t, client.Publish(publishCtx, "geometry.event.manifold_update", body))

	select {
	case msg := <-msgs:
		require.Equal(t, body, msg.Body)
		require.Equal(t, "application/json", msg.ContentType)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for published message")
	}

	require.NoError(t, app.Stop(ctx))

	if err := containerInstance.Terminate(ctx); err != nil {
		t.Logf("failed to terminate rabbit container: %v", err)
	}
	time.Sleep(2 * time.Second)
}

// TestRabbitPublishCancelledContext verifies the publisher honors an
// already-cancelled context without touching the channel.
func TestRabbitPublishCancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockLog := NewMockLogger(ctrl)
	mockLog.EXPECT().Error("context error for publishing msg into rabbit", gomock.Any(), gomock.Any()).Times(1)

	client := &Rabbit{
		cfg:            NewConfig(),
		logger:         mockLog,
		shutdownSignal: make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Publish(ctx, "geometry.event.manifold_update", []byte("{}"))
	require.ErrorIs(t, err, context.Canceled)
}

func initializeRabbitMQ(ctx context.Context) (string, int, testcontainers.Container) {
	hostPort, err := getFreePort()
	if err != nil {
		log.Fatalf("Failed to find free port: %v", err)
	}

	containerInstance, err := createRabbitMQContainer(ctx, hostPort)
	if err != nil {
		log.Fatalf("Failed to create container: %v", err)
	}

	port, err := containerInstance.MappedPort(ctx, "5672")
	if err != nil {
		log.Fatalf("Failed to get mapped port: %v", err)
	}
	host, err := containerInstance.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get host: %v", err)
	}
	return host, port.Int(), containerInstance
}

// createRabbitMQContainer sets up and starts a RabbitMQ Docker container
// using testcontainers-go, binding the AMQP port and waiting until the
// broker reports healthy.
func createRabbitMQContainer(ctx context.Context, hostPort string) (testcontainers.Container, error) {

	var containerInstance testcontainers.Container
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		portBindings := nat.PortMap{
			"5672/tcp": []nat.PortBinding{{HostPort: hostPort}},
		}

		req := testcontainers.ContainerRequest{
			Image: "rabbitmq:4-management",
			ExposedPorts: []string{
				"5672/tcp",
			},
			HostConfigModifier: func(cfg *container.HostConfig) {
				cfg.PortBindings = portBindings
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5672/tcp").WithStartupTimeout(20*time.Second),
				wait.ForExec([]string{"rabbitmq-diagnostics", "status"}).WithExitCodeMatcher(func(exitCode int) bool {
					return exitCode == 0
				}).WithStartupTimeout(10*time.Second),
			),
		}

		containerInstance, lastErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if lastErr == nil {
			return containerInstance, nil
		}

		// Retry only for Docker socket-related issues
		if strings.Contains(lastErr.Error(), "docker.sock") || errors.Is(lastErr, io.EOF) {
			log.Printf("Attempt %d: Docker socket error, retrying in %d seconds: %v", attempt+1, attempt+1, lastErr)
			time.Sleep(time.Duration(attempt+1) * time.Second)
			continue
		}

		break
	}

	return nil, fmt.Errorf("failed to start RabbitMQ container after %d attempts: %w", 3, lastErr)
}

func getFreePort() (string, error) {
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		return "", err
	}
	defer func(l net.Listener) {
		err := l.Close()
		if err != nil {
			panic(err)
		}
	}(l)
	addr := l.Addr().(*net.TCPAddr)
	return strconv.Itoa(addr.Port), nil
}

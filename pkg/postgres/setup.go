package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Logger defines the interface for logging operations within the postgres package.

//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=postgres
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Postgres is a thread-safe wrapper around gorm.DB that provides connection
// monitoring, automatic reconnection, and the operations the metrics
// archive needs. All database access is guarded by a read-write mutex so
// the client can be swapped during reconnection.
type Postgres struct {
	client          *gorm.DB
	cfg             Config
	logger          Logger
	mu              *sync.RWMutex
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeRetryChanOnce sync.Once
}

// NewPostgres creates a new Postgres instance with the provided
// configuration and Logger. If the initial connection fails it logs a
// fatal error and terminates.
func NewPostgres(cfg Config, logger Logger) *Postgres {
	conn, err := connectToPostgres(logger, cfg)
	if err != nil {
		logger.Fatal("error in connecting to postgres after all retries", nil, nil)
	}

	return &Postgres{
		client:          conn,
		cfg:             cfg,
		logger:          logger,
		mu:              &sync.RWMutex{},
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
}

// connectToPostgres opens the GORM connection and configures the pool.
func connectToPostgres(logger Logger, postgresConfig Config) (*gorm.DB, error) {
	pgConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		postgresConfig.Connection.Host,
		postgresConfig.Connection.Port,
		postgresConfig.Connection.User,
		postgresConfig.Connection.Password,
		postgresConfig.Connection.DbName,
		postgresConfig.Connection.SSLMode)

	database, err := gorm.Open(
		postgres.Open(pgConnStr),
		&gorm.Config{
			TranslateError: true,
		})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgresSQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgresSQL database instance: %w", err)
	}

	databaseInstance.SetMaxOpenConns(postgresConfig.ConnectionDetails.MaxOpenConns)
	databaseInstance.SetMaxIdleConns(postgresConfig.ConnectionDetails.MaxIdleConns)
	databaseInstance.SetConnMaxLifetime(postgresConfig.ConnectionDetails.ConnMaxLifetime)

	logger.Info("Successfully connected to PostgresSQL database", nil, nil)

	return database, nil
}

// RetryConnection waits for signals on retryChanSignal and re-establishes
// the connection until successful. Runs as a goroutine under the fx
// lifecycle.
func (p *Postgres) RetryConnection(ctx context.Context, logger Logger) {
outerLoop:
	for {
		select {
		case <-p.shutdownSignal:
			logger.Info("Stopping RetryConnection loop due to shutdown signal", nil, nil)
			return
		case <-ctx.Done():
			return
		case <-p.retryChanSignal:
		innerLoop:
			for {
				select {
				case <-p.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newConn, err := connectToPostgres(logger, p.cfg)
					if err != nil {
						logger.Error("Reconnection failed", err, nil)
						time.Sleep(time.Second)
						continue innerLoop
					}
					p.mu.Lock()
					p.client = newConn
					p.mu.Unlock()
					logger.Info("Reconnected to PostgresSQL database", nil, nil)
					continue outerLoop
				}
			}
		}
	}
}

// MonitorConnection periodically pings the database and signals the retry
// goroutine when a failure is detected.
func (p *Postgres) MonitorConnection(ctx context.Context) {
	defer p.closeRetryChanOnce.Do(func() {
		close(p.retryChanSignal)
	})

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.shutdownSignal:
			p.logger.Info("Stopping MonitorConnection loop due to shutdown signal", nil, nil)
			return
		case <-ticker.C:
			err := p.healthCheck()
			if err != nil {
				select {
				case p.retryChanSignal <- err:
				default:
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// healthCheck pings the database with a 5 second timeout.
func (p *Postgres) healthCheck() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.client == nil {
		return fmt.Errorf("database client is not initialized")
	}

	db, err := p.client.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during health check: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}

	return nil
}

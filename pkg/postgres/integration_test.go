package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"github.com/cipheratlas/geometry-engine/pkg/manifold"
)

// PostgresContainer represents a Postgres container for testing
type PostgresContainer struct {
	testcontainers.Container
	Config Config
}

// setupPostgresContainer sets up a Postgres container for testing
func setupPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	portStr := fmt.Sprintf("%d", port)
	portBindings := nat.PortMap{
		"5432/tcp": []nat.PortBinding{{HostPort: portStr}},
	}

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	mappedPort, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}
	portStr = mappedPort.Port()

	if err := waitForPostgresReady(host, portStr, "testuser", "testpass", "testdb", 30*time.Second); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("postgres container not ready: %w", err)
	}

	config := Config{
		Connection: Connection{
			Host:     host,
			Port:     portStr,
			User:     "testuser",
			Password: "testpass",
			DbName:   "testdb",
			SSLMode:  "disable",
		},
		ConnectionDetails: ConnectionDetails{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Minute,
		},
	}

	return &PostgresContainer{Container: pgContainer, Config: config}, nil
}

// getFreePort gets a free port from the OS
func getFreePort() (int, error) {
	addr, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer func() { _ = addr.Close() }()

	return addr.Addr().(*net.TCPAddr).Port, nil
}

// waitForPostgresReady attempts real connections until postgres accepts
// them or the timeout elapses.
func waitForPostgresReady(host, port, user, password, dbname string, timeout time.Duration) error {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		db, err := sql.Open("postgres", connStr)
		if err == nil {
			err = db.Ping()
			_ = db.Close()
			if err == nil {
				return nil
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("timed out waiting for postgres after %s", timeout)
}

func quietLogger(ctrl *gomock.Controller) *MockLogger {
	logger := NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Debug(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	return logger
}

// TestMetricsArchiveSaveAndListRecent verifies the archive round trip:
// rows written for separate documents come back per document, newest
// first, bounded by the limit.
func TestMetricsArchiveSaveAndListRecent(t *testing.T) {
	ctx := context.Background()

	pc, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := pc.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	}()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := NewPostgres(pc.Config, quietLogger(ctrl))
	archive, err := NewMetricsArchive(db, quietLogger(ctrl))
	require.NoError(t, err)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	older := manifold.Metrics{
		DocumentID:     "doc-a",
		ShapeRatio:     0.61,
		Delta:          0.92,
		CurvatureK:     -2.1,
		Epsilon:        0.3,
		Classification: manifold.Hyperbolic,
		ExactUsed:      true,
		SampleSize:     24,
		CreatedAt:      base,
	}
	newer := older
	newer.ShapeRatio = 0.55
	newer.CreatedAt = base.Add(time.Hour)

	require.NoError(t, archive.Save(ctx, older))
	require.NoError(t, archive.Save(ctx, newer))
	require.NoError(t, archive.Save(ctx, manifold.Metrics{
		DocumentID:     "doc-b",
		Classification: manifold.Euclidean,
		CreatedAt:      base,
	}))

	records, err := archive.ListRecent(ctx, "doc-a", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, 0.55, records[0].ShapeRatio)
	require.Equal(t, 0.61, records[1].ShapeRatio)
	require.Equal(t, "hyperbolic", records[0].Classification)
	require.True(t, records[0].ExactUsed)

	limited, err := archive.ListRecent(ctx, "doc-a", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)

	none, err := archive.ListRecent(ctx, "doc-zzz", 10)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestTranslateError(t *testing.T) {
	require.Nil(t, TranslateError(nil))
	require.ErrorIs(t, TranslateError(gorm.ErrRecordNotFound), ErrRecordNotFound)
	require.ErrorIs(t, TranslateError(gorm.ErrDuplicatedKey), ErrDuplicateKey)

	plain := fmt.Errorf("connection refused")
	require.Equal(t, plain, TranslateError(plain))
}

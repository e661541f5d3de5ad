package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/CreadorsBot_Go/internal/database"
	"github.com/osse101/CreadorsBot_Go/migrations"
)

var (
	testPool          *pgxpool.Pool
	testContainer     *postgres.PostgresContainer
	testSetupErr      error
	testSetupOnce     sync.Once
	migrationsApplied bool
	migrationsMux     sync.Mutex
)

// startTestDatabase starts one postgres container for the package.
// Docker failures surface as testSetupErr so callers can skip.
func startTestDatabase(ctx context.Context) {
	testSetupOnce.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				testSetupErr = fmt.Errorf("panic starting container (likely Docker issue): %v", r)
			}
		}()

		container, err := postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			testSetupErr = fmt.Errorf("failed to start postgres container: %w", err)
			return
		}
		testContainer = container

		connStr, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			testSetupErr = fmt.Errorf("failed to get connection string: %w", err)
			return
		}

		testPool, testSetupErr = database.NewPool(connStr, 5, time.Minute, 5*time.Minute)
	})
}

// ensureMigrations applies migrations once for all tests in the package
func ensureMigrations(t *testing.T) {
	migrationsMux.Lock()
	defer migrationsMux.Unlock()

	if migrationsApplied {
		return
	}

	if err := database.Migrate(context.Background(), testPool, migrations.FS); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	migrationsApplied = true
}

// setupStreamerRepo returns a repository over an empty streamers table.
func setupStreamerRepo(t *testing.T) *StreamerRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	startTestDatabase(ctx)
	if testSetupErr != nil {
		t.Skipf("Skipping integration test: %v", testSetupErr)
	}
	ensureMigrations(t)

	if _, err := testPool.Exec(ctx, "TRUNCATE streamers"); err != nil {
		t.Fatalf("failed to truncate streamers: %v", err)
	}
	return NewStreamerRepository(testPool)
}

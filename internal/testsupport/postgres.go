package testsupport

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"scout/internal/adapters/config"
	"scout/internal/adapters/postgres"
)

// PostgresTestHelper manages a database connection for integration tests.
type PostgresTestHelper struct {
	client *postgres.Client
}

// NewPostgresTestHelper opens a connection that is closed when the test ends.
func NewPostgresTestHelper(t *testing.T, cfg config.PostgresConfig) *PostgresTestHelper {
	t.Helper()

	client, err := postgres.NewClient(cfg)
	if err != nil {
		t.Fatalf("failed to create postgres client: %v", err)
	}

	helper := &PostgresTestHelper{client: client}
	t.Cleanup(func() {
		_ = client.Close()
	})

	return helper
}

// DB returns the underlying database handle.
func (h *PostgresTestHelper) DB() *sqlx.DB {
	return h.client.DB()
}

// NewTestPostgres creates a test postgres helper with config loaded from the
// environment, skipping the test when no database is configured.
func NewTestPostgres(t *testing.T) *PostgresTestHelper {
	t.Helper()

	cfg := LoadPostgresConfigFromEnv(t)

	return NewPostgresTestHelper(t, cfg)
}

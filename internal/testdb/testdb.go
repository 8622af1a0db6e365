// Package testdb provides database helpers for integration tests. Tests
// that need a real PostgreSQL instance call New, which skips the test when
// no test database is configured.
package testdb

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/require"

	"github.com/kauestudy/revise-api/internal/platform/postgres"
)

// Environment variables checked for the test database URL, in order.
const (
	EnvDatabaseURL     = "DATABASE_URL"
	EnvTestDatabaseURL = "REVISE_TEST_DB_URL"
)

// TestTimeout bounds individual setup operations against the test database.
const TestTimeout = 5 * time.Second

// URL returns the configured test database URL, or "" when integration
// tests cannot run.
func URL() string {
	if u := os.Getenv(EnvDatabaseURL); u != "" {
		return u
	}
	return os.Getenv(EnvTestDatabaseURL)
}

// Available reports whether a test database is configured.
func Available() bool {
	return URL() != ""
}

// New opens a connection to the test database and brings the schema up to
// date. It skips the calling test when no test database is configured and
// closes the connection when the test finishes.
func New(t *testing.T) *sql.DB {
	t.Helper()

	url := URL()
	if url == "" {
		t.Skipf("integration test requires %s or %s", EnvDatabaseURL, EnvTestDatabaseURL)
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "open test database")

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "ping test database")

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer migrateCancel()
	quiet := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	require.NoError(t, postgres.RunMigrations(migrateCtx, db, quiet), "migrate test database")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("closing test database: %v", err)
		}
	})

	return db
}

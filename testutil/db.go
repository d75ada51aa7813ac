// Package testutil provides shared helpers for the Postgres integration tests.
// Every helper skips the calling test when TEST_DATABASE_URL is unset, so the
// in-memory suites run on their own.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/dinos/internal/database"
)

// DSNEnv names the variable holding the test database URL.
const DSNEnv = "TEST_DATABASE_URL"

// NewPool connects to the test database through database.Connect, the same
// path the server takes. The pool closes when the test finishes.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := database.Connect(context.Background(), requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// NewTx begins a transaction that is rolled back when the test finishes.
// Pass it to repo.NewDinoRepo for per-test isolation.
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()

	tx, err := NewPool(t).Begin(context.Background())
	if err != nil {
		t.Fatalf("testutil.NewTx: begin: %v", err)
	}
	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// NewSQLDB returns a database/sql handle over a test pool, for driving goose
// directly.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db := stdlib.OpenDBFromPool(NewPool(t))
	t.Cleanup(func() { db.Close() })
	return db
}

// Migrate applies pending migrations to the test database. It is meant for
// TestMain, where no *testing.T exists; without TEST_DATABASE_URL it does
// nothing.
func Migrate(ctx context.Context) error {
	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		return nil
	}

	pool, err := database.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("testutil.Migrate: %w", err)
	}
	defer pool.Close()

	if _, err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("testutil.Migrate: %w", err)
	}
	return nil
}

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skip(DSNEnv + " not set; skipping integration test")
	}
	return dsn
}

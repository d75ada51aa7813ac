// Package database opens the Postgres pool shared by the server and the seed
// command, and applies the embedded migrations to it.
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/dinos/migrations"
)

// Connect creates a pool for url and verifies the database is reachable.
// pgxpool.New does not open connections immediately; the Ping does.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("database.Connect: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database.Connect: ping: %w", err)
	}
	return pool, nil
}

// Migrate applies pending migrations through a database/sql handle borrowed
// from pool, since goose speaks database/sql rather than pgx.
func Migrate(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	n, err := migrations.Up(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("database.Migrate: %w", err)
	}
	return n, nil
}

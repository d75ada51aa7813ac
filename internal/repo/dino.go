// Package repo contains all database access logic for the Dinos API.
// DinoRepo is the store interface; Postgres and in-memory implementations
// live side by side. No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/dinos/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DinoRepo defines the persistence operations for Dinos.
// The service layer depends on this interface, not a concrete implementation.
type DinoRepo interface {
	// Create inserts a new dino and returns the persisted record (with
	// store-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, dino domain.Dino) (domain.Dino, error)

	// GetByID retrieves a single dino by its UUID primary key.
	// Returns domain.ErrNotFound if no dino with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Dino, error)

	// List returns all dinos in insertion order.
	List(ctx context.Context) ([]domain.Dino, error)

	// Update overwrites name, color and breed of an existing dino and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, dino domain.Dino) (domain.Dino, error)

	// Delete removes a dino by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of stored dinos.
	Count(ctx context.Context) (int, error)
}

// pgDinoRepo is the Postgres implementation of DinoRepo.
type pgDinoRepo struct {
	db db
}

// NewDinoRepo constructs a DinoRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewDinoRepo(db db) DinoRepo {
	return &pgDinoRepo{db: db}
}

const dinoColumns = `id, name, color, breed, created_at, updated_at`

// Create inserts a new dino row and returns the full persisted record.
func (r *pgDinoRepo) Create(ctx context.Context, dino domain.Dino) (domain.Dino, error) {
	const q = `
		INSERT INTO dinos (name, color, breed)
		VALUES (@name, @color, @breed)
		RETURNING ` + dinoColumns

	args := pgx.NamedArgs{
		"name":  dino.Name,
		"color": dino.Color,
		"breed": dino.Breed,
	}

	result, err := scanDino(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Dino{}, fmt.Errorf("repo.DinoRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a dino by primary key.
func (r *pgDinoRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Dino, error) {
	const q = `SELECT ` + dinoColumns + ` FROM dinos WHERE id = @id`

	result, err := scanDino(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Dino{}, fmt.Errorf("repo.DinoRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all dinos oldest first. created_at uses clock_timestamp(), so
// rows inserted inside one transaction still sort in insertion order.
func (r *pgDinoRepo) List(ctx context.Context) ([]domain.Dino, error) {
	const q = `SELECT ` + dinoColumns + ` FROM dinos ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DinoRepo.List: %w", err)
	}
	defer rows.Close()

	var dinos []domain.Dino
	for rows.Next() {
		d, err := scanDino(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DinoRepo.List: scan: %w", err)
		}
		dinos = append(dinos, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DinoRepo.List: rows: %w", err)
	}

	return dinos, nil
}

// Update overwrites the mutable fields of a dino and returns the updated record.
func (r *pgDinoRepo) Update(ctx context.Context, dino domain.Dino) (domain.Dino, error) {
	const q = `
		UPDATE dinos
		SET name       = @name,
		    color      = @color,
		    breed      = @breed,
		    updated_at = clock_timestamp()
		WHERE id = @id
		RETURNING ` + dinoColumns

	args := pgx.NamedArgs{
		"id":    dino.ID,
		"name":  dino.Name,
		"color": dino.Color,
		"breed": dino.Breed,
	}

	result, err := scanDino(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Dino{}, fmt.Errorf("repo.DinoRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a dino by primary key.
func (r *pgDinoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM dinos WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DinoRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DinoRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// Count returns the total number of rows in dinos.
func (r *pgDinoRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM dinos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.DinoRepo.Count: %w", err)
	}
	return n, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanDino to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanDino maps a single database row into a domain.Dino.
func scanDino(s scanner) (domain.Dino, error) {
	var (
		d  domain.Dino
		id pgtype.UUID
	)

	err := s.Scan(&id, &d.Name, &d.Color, &d.Breed, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Dino{}, domain.ErrNotFound
		}
		return domain.Dino{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	return d, nil
}

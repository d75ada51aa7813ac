// Package service contains the business logic for the Dinos API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/dinos/internal/domain"
	"github.com/pkordes/dinos/internal/repo"
)

// maxFieldLength caps name, color and breed.
const maxFieldLength = 100

// DinoService implements business logic for Dino operations.
type DinoService struct {
	repo repo.DinoRepo
}

// NewDinoService constructs a DinoService backed by the provided DinoRepo.
func NewDinoService(r repo.DinoRepo) *DinoService {
	return &DinoService{repo: r}
}

// Create builds a dino from attrs, validates it and persists it.
// Returns a *domain.ValidationError (matching domain.ErrValidation) when a rule
// fails; nothing is written in that case.
func (s *DinoService) Create(ctx context.Context, attrs domain.DinoAttrs) (domain.Dino, error) {
	dino := domain.NewDino(attrs)
	if err := validateDino(dino); err != nil {
		return domain.Dino{}, fmt.Errorf("service.DinoService.Create: %w", err)
	}
	result, err := s.repo.Create(ctx, dino)
	if err != nil {
		return domain.Dino{}, fmt.Errorf("service.DinoService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single dino by ID.
// Returns domain.ErrNotFound if no dino with that ID exists.
func (s *DinoService) GetByID(ctx context.Context, id uuid.UUID) (domain.Dino, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Dino{}, fmt.Errorf("service.DinoService.GetByID: %w", err)
	}
	return result, nil
}

// List returns every dino in insertion order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DinoService) List(ctx context.Context) ([]domain.Dino, error) {
	dinos, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DinoService.List: %w", err)
	}
	if dinos == nil {
		return []domain.Dino{}, nil
	}
	return dinos, nil
}

// Update applies attrs to the existing dino, validates the result and persists it.
// The supplied dino is the record fetched by the caller; only fields present
// in attrs change. On validation failure the store is left untouched.
func (s *DinoService) Update(ctx context.Context, dino domain.Dino, attrs domain.DinoAttrs) (domain.Dino, error) {
	dino.Apply(attrs)
	if err := validateDino(dino); err != nil {
		return domain.Dino{}, fmt.Errorf("service.DinoService.Update: %w", err)
	}
	result, err := s.repo.Update(ctx, dino)
	if err != nil {
		return domain.Dino{}, fmt.Errorf("service.DinoService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a dino by ID.
// Returns domain.ErrNotFound if the dino does not exist.
func (s *DinoService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DinoService.Delete: %w", err)
	}
	return nil
}

// Count returns the number of stored dinos.
func (s *DinoService) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("service.DinoService.Count: %w", err)
	}
	return n, nil
}

// validateDino enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Name, color and breed must not exceed maxFieldLength characters.
func validateDino(d domain.Dino) error {
	var verr domain.ValidationError
	if strings.TrimSpace(d.Name) == "" {
		verr.Add("name", "can't be blank")
	}
	for _, f := range []struct{ name, value string }{
		{"name", d.Name},
		{"color", d.Color},
		{"breed", d.Breed},
	} {
		if utf8.RuneCountInString(f.value) > maxFieldLength {
			verr.Add(f.name, fmt.Sprintf("is too long (maximum is %d characters)", maxFieldLength))
		}
	}
	if verr.Empty() {
		return nil
	}
	return &verr
}

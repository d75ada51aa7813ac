package repo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/dinos/internal/domain"
)

// memDinoRepo keeps dinos in process memory. It backs STORE_DRIVER=memory
// and the unit tests of the layers above the store.
type memDinoRepo struct {
	mu    sync.RWMutex
	order []uuid.UUID
	byID  map[uuid.UUID]domain.Dino
	now   func() time.Time
}

// NewMemoryDinoRepo constructs an empty in-memory DinoRepo.
func NewMemoryDinoRepo() DinoRepo {
	return &memDinoRepo{
		byID: make(map[uuid.UUID]domain.Dino),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *memDinoRepo) Create(_ context.Context, dino domain.Dino) (domain.Dino, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	dino.ID = uuid.New()
	dino.CreatedAt = now
	dino.UpdatedAt = now

	r.byID[dino.ID] = dino
	r.order = append(r.order, dino.ID)
	return dino, nil
}

func (r *memDinoRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Dino, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return domain.Dino{}, fmt.Errorf("repo.memDinoRepo.GetByID: %w", domain.ErrNotFound)
	}
	return d, nil
}

func (r *memDinoRepo) List(_ context.Context) ([]domain.Dino, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Dino, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *memDinoRepo) Update(_ context.Context, dino domain.Dino) (domain.Dino, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[dino.ID]
	if !ok {
		return domain.Dino{}, fmt.Errorf("repo.memDinoRepo.Update: %w", domain.ErrNotFound)
	}
	existing.Name = dino.Name
	existing.Color = dino.Color
	existing.Breed = dino.Breed
	existing.UpdatedAt = r.now()

	r.byID[existing.ID] = existing
	return existing, nil
}

func (r *memDinoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("repo.memDinoRepo.Delete: %w", domain.ErrNotFound)
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memDinoRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

// Package seed populates an empty store with the sample dinos.
package seed

import (
	"context"
	"fmt"

	"github.com/pkordes/dinos/internal/domain"
)

// Creator is the one store operation the seed loader needs.
// *service.DinoService satisfies it, so seeds pass the same validation as
// user input.
type Creator interface {
	Create(ctx context.Context, attrs domain.DinoAttrs) (domain.Dino, error)
}

// Sample is one seeded dino.
type Sample struct {
	Name, Color, Breed string
}

// Samples are inserted in this order by Load.
var Samples = []Sample{
	{Name: "Troy", Color: "purple", Breed: "tyrannosaurus"},
	{Name: "Stan", Color: "green", Breed: "stegosaurus"},
	{Name: "Peter", Color: "blue", Breed: "pterodactyl"},
	{Name: "Barry", Color: "pink", Breed: "brontosaurus"},
	{Name: "Alvin", Color: "yellow", Breed: "apatasaurus"},
	{Name: "Terry", Color: "red", Breed: "tricerotops"},
}

// Load creates every sample and returns the persisted records. It stops at
// the first failure.
//
// Load is not idempotent: there is no uniqueness constraint on dinos, so
// running it twice stores every sample twice.
func Load(ctx context.Context, c Creator) ([]domain.Dino, error) {
	out := make([]domain.Dino, 0, len(Samples))
	for _, s := range Samples {
		name, color, breed := s.Name, s.Color, s.Breed
		d, err := c.Create(ctx, domain.DinoAttrs{Name: &name, Color: &color, Breed: &breed})
		if err != nil {
			return out, fmt.Errorf("seed.Load: %s: %w", s.Name, err)
		}
		out = append(out, d)
	}
	return out, nil
}

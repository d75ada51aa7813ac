package params

import "github.com/pkordes/dinos/internal/domain"

// DinoKey is the required top-level key for dino payloads.
const DinoKey = "dino"

// DinoFields are the attributes a client may set.
var DinoFields = []string{"name", "color", "breed"}

// Dino requires p[DinoKey] and returns the permitted name, color and breed.
// Fields missing from the payload stay nil in the result.
func Dino(p Payload) (domain.DinoAttrs, error) {
	nested, err := p.Require(DinoKey)
	if err != nil {
		return domain.DinoAttrs{}, err
	}

	permitted := nested.Permit(DinoFields...)

	var attrs domain.DinoAttrs
	if v, ok := permitted["name"]; ok {
		attrs.Name = &v
	}
	if v, ok := permitted["color"]; ok {
		attrs.Color = &v
	}
	if v, ok := permitted["breed"]; ok {
		attrs.Breed = &v
	}
	return attrs, nil
}

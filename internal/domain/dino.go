// Package domain contains the core data types for the Dinos application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Dino is the single resource managed by the application.
// ID, CreatedAt and UpdatedAt are assigned by the store.
type Dino struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Breed     string    `json:"breed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DinoAttrs holds the permitted, user-supplied attributes of a Dino.
// A nil field was not supplied: Create leaves it empty, Apply leaves the
// existing value untouched.
type DinoAttrs struct {
	Name  *string
	Color *string
	Breed *string
}

// NewDino builds an unpersisted Dino from attrs.
func NewDino(attrs DinoAttrs) Dino {
	var d Dino
	d.Apply(attrs)
	return d
}

// Apply overwrites the fields of d that are present in attrs.
func (d *Dino) Apply(attrs DinoAttrs) {
	if attrs.Name != nil {
		d.Name = *attrs.Name
	}
	if attrs.Color != nil {
		d.Color = *attrs.Color
	}
	if attrs.Breed != nil {
		d.Breed = *attrs.Breed
	}
}

// IsNew reports whether d has not been persisted yet.
func (d Dino) IsNew() bool {
	return d.ID == uuid.Nil
}

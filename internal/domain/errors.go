package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// dino does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. blank name, field too long).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ValidationError collects every failed rule, keyed by field name.
// It matches ErrValidation under errors.Is.
type ValidationError struct {
	Fields map[string][]string
}

// Add records msg against field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Empty reports whether no rule failed.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// FullMessages returns "field message" strings sorted by field, the form
// shown at the top of an HTML form.
func (e *ValidationError) FullMessages() []string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var out []string
	for _, f := range fields {
		for _, msg := range e.Fields[f] {
			out = append(out, f+" "+msg)
		}
	}
	return out
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.FullMessages(), ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

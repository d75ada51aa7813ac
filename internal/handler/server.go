// Package handler implements the HTTP handlers for the Dinos app.
// All handlers are methods on Server. Each dino action decides an outcome
// (dino.go) and one presentation adapter (respond.go) turns that outcome into
// HTML, JSON or CSV.
package handler

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/dinos/internal/domain"
	"github.com/pkordes/dinos/internal/view"
)

// DinoServicer defines the business operations the dino handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the store or service layer.
type DinoServicer interface {
	Create(ctx context.Context, attrs domain.DinoAttrs) (domain.Dino, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Dino, error)
	List(ctx context.Context) ([]domain.Dino, error)
	Update(ctx context.Context, dino domain.Dino, attrs domain.DinoAttrs) (domain.Dino, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Server holds the dependencies shared by every handler.
type Server struct {
	dinos DinoServicer
	views *view.Renderer
	log   *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(dinos DinoServicer, views *view.Renderer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{dinos: dinos, views: views, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil)
}

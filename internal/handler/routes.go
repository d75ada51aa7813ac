package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/dinos/api"
	"github.com/pkordes/dinos/internal/middleware"
)

// NewRouter returns the application's route table. Cross-cutting middleware
// (logging, CORS, metrics, body limits) is applied by the caller in main.go.
//
// Dino routes live in a mounted sub-router so that URLFormat and
// MethodOverride run before its routing: /dinos/{id}.json must match
// /dinos/{id}, and a form POST with _method=delete must match DELETE.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Mount("/", s.dinoRoutes())
	return r
}

func (s *Server) dinoRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.MethodOverride)
	r.Use(chimiddleware.URLFormat)

	r.Get("/", s.action(s.listDinos))
	r.Get("/welcome", s.action(s.listDinos))

	r.Route("/dinos", func(r chi.Router) {
		r.Get("/", s.action(s.listDinos))
		r.Post("/", s.action(s.createDino))
		r.Get("/new", s.action(s.newDino))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.action(s.showDino))
			r.Get("/edit", s.action(s.editDino))
			r.Patch("/", s.action(s.updateDino))
			r.Put("/", s.action(s.updateDino))
			r.Delete("/", s.action(s.destroyDino))
		})
	})
	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(api.OpenAPI)
}

package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/dinos/internal/domain"
	"github.com/pkordes/dinos/internal/params"
	"github.com/pkordes/dinos/internal/view"
)

// Notices shown after a successful HTML write.
const (
	noticeCreated   = "Dino was successfully created."
	noticeUpdated   = "Dino was successfully updated."
	noticeDestroyed = "Dino was successfully destroyed."
)

type outcomeKind int

const (
	listed outcomeKind = iota
	shown
	drafted
	created
	updated
	destroyed
	failed
)

// outcome is what an action decided, independent of how it is presented.
type outcome struct {
	kind  outcomeKind
	dino  domain.Dino
	dinos []domain.Dino

	// page is the HTML page for drafted outcomes and for re-rendering a form
	// after a validation failure.
	page string
	err  error
}

func fail(err error) outcome {
	return outcome{kind: failed, err: err}
}

// action adapts an outcome-producing method to an http.HandlerFunc.
func (s *Server) action(fn func(r *http.Request) outcome) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, r, fn(r))
	}
}

// listDinos handles GET /, /welcome and /dinos.
func (s *Server) listDinos(r *http.Request) outcome {
	dinos, err := s.dinos.List(r.Context())
	if err != nil {
		return fail(err)
	}
	return outcome{kind: listed, dinos: dinos}
}

// showDino handles GET /dinos/{id}.
func (s *Server) showDino(r *http.Request) outcome {
	dino, err := s.fetchDino(r)
	if err != nil {
		return fail(err)
	}
	return outcome{kind: shown, dino: dino}
}

// newDino handles GET /dinos/new: an empty, unsaved dino for the form.
func (s *Server) newDino(_ *http.Request) outcome {
	return outcome{kind: drafted, page: view.NewPage}
}

// createDino handles POST /dinos.
func (s *Server) createDino(r *http.Request) outcome {
	attrs, err := dinoParams(r)
	if err != nil {
		return fail(err)
	}

	dino, err := s.dinos.Create(r.Context(), attrs)
	if err != nil {
		return outcome{kind: failed, err: err, dino: domain.NewDino(attrs), page: view.NewPage}
	}
	return outcome{kind: created, dino: dino}
}

// editDino handles GET /dinos/{id}/edit.
func (s *Server) editDino(r *http.Request) outcome {
	dino, err := s.fetchDino(r)
	if err != nil {
		return fail(err)
	}
	return outcome{kind: drafted, dino: dino, page: view.Edit}
}

// updateDino handles PATCH and PUT /dinos/{id}.
func (s *Server) updateDino(r *http.Request) outcome {
	dino, err := s.fetchDino(r)
	if err != nil {
		return fail(err)
	}

	attrs, err := dinoParams(r)
	if err != nil {
		return fail(err)
	}

	result, err := s.dinos.Update(r.Context(), dino, attrs)
	if err != nil {
		attempted := dino
		attempted.Apply(attrs)
		return outcome{kind: failed, err: err, dino: attempted, page: view.Edit}
	}
	return outcome{kind: updated, dino: result}
}

// destroyDino handles DELETE /dinos/{id}.
func (s *Server) destroyDino(r *http.Request) outcome {
	dino, err := s.fetchDino(r)
	if err != nil {
		return fail(err)
	}
	if err := s.dinos.Delete(r.Context(), dino.ID); err != nil {
		return fail(err)
	}
	return outcome{kind: destroyed, dino: dino}
}

// fetchDino loads the dino named by the {id} path parameter. Every member
// action calls it first. A malformed id is reported as domain.ErrNotFound,
// the same as an unknown one.
func (s *Server) fetchDino(r *http.Request) (domain.Dino, error) {
	id, err := dinoID(r)
	if err != nil {
		return domain.Dino{}, fmt.Errorf("handler.fetchDino: %w", domain.ErrNotFound)
	}
	dino, err := s.dinos.GetByID(r.Context(), id)
	if err != nil {
		return domain.Dino{}, fmt.Errorf("handler.fetchDino: %w", err)
	}
	return dino, nil
}

// dinoID binds the {id} path parameter as a UUID.
func dinoID(r *http.Request) (uuid.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// dinoParams decodes the body and keeps only the permitted dino fields.
func dinoParams(r *http.Request) (domain.DinoAttrs, error) {
	p, err := params.Decode(r)
	if err != nil {
		return domain.DinoAttrs{}, err
	}
	attrs, err := params.Dino(p)
	if err != nil {
		return domain.DinoAttrs{}, err
	}
	return attrs, nil
}

// isValidation reports whether err should re-render a form.
func isValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}

// isBadRequest reports whether err was caused by the request payload itself.
func isBadRequest(err error) bool {
	return errors.Is(err, params.ErrMissingParameter) || errors.Is(err, params.ErrMalformedBody)
}

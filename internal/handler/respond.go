package handler

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pkordes/dinos/internal/domain"
	"github.com/pkordes/dinos/internal/view"
)

// DinoResponse is the JSON representation of a dino.
// ID and URL are null for a dino that has not been saved.
type DinoResponse struct {
	ID        *uuid.UUID `json:"id"`
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	Breed     string     `json:"breed"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	URL       *string    `json:"url"`
}

func dinoToResponse(d domain.Dino) DinoResponse {
	resp := DinoResponse{Name: d.Name, Color: d.Color, Breed: d.Breed}
	if !d.IsNew() {
		id := d.ID
		u := dinoPath(d) + ".json"
		resp.ID = &id
		resp.URL = &u
		resp.CreatedAt = &d.CreatedAt
		resp.UpdatedAt = &d.UpdatedAt
	}
	return resp
}

func dinoPath(d domain.Dino) string {
	return "/dinos/" + d.ID.String()
}

// respond is the presentation adapter: it turns an outcome into HTML, JSON
// or CSV according to the request format.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, out outcome) {
	format := requestFormat(r)
	if out.err != nil {
		s.respondError(w, r, format, out)
		return
	}

	switch format {
	case formatHTML:
		s.respondHTML(w, r, out)
	case formatJSON:
		respondJSON(w, out)
	case formatCSV:
		if out.kind != listed {
			notAcceptable(w)
			return
		}
		writeCSV(w, out.dinos)
	default:
		notAcceptable(w)
	}
}

func (s *Server) respondHTML(w http.ResponseWriter, r *http.Request, out outcome) {
	switch out.kind {
	case listed:
		s.render(w, r, http.StatusOK, view.Index, view.Page{Title: "Dinos", Dinos: out.dinos})
	case shown:
		s.render(w, r, http.StatusOK, view.Show, view.Page{Title: out.dino.Name, Dino: out.dino})
	case drafted:
		s.render(w, r, http.StatusOK, out.page, view.Page{Title: formTitle(out.page), Dino: out.dino})
	case created:
		redirectWithNotice(w, r, dinoPath(out.dino), noticeCreated)
	case updated:
		redirectWithNotice(w, r, dinoPath(out.dino), noticeUpdated)
	case destroyed:
		redirectWithNotice(w, r, "/dinos", noticeDestroyed)
	}
}

func respondJSON(w http.ResponseWriter, out outcome) {
	switch out.kind {
	case listed:
		data := make([]DinoResponse, len(out.dinos))
		for i, d := range out.dinos {
			data[i] = dinoToResponse(d)
		}
		writeJSON(w, http.StatusOK, data)
	case shown, drafted, updated:
		writeJSON(w, http.StatusOK, dinoToResponse(out.dino))
	case created:
		w.Header().Set("Location", dinoPath(out.dino))
		writeJSON(w, http.StatusCreated, dinoToResponse(out.dino))
	case destroyed:
		w.WriteHeader(http.StatusNoContent)
	}
}

// respondError maps a failed outcome to a status and representation.
// NotFound is handled here for every member action alike.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, format string, out outcome) {
	err := out.err
	html := format == formatHTML

	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if html {
			s.renderError(w, r, http.StatusNotFound, "Not Found", "The dino you were looking for doesn't exist.")
			return
		}
		writeJSON(w, http.StatusNotFound, notFoundBody("dino not found"))

	case isValidation(err) && out.page != "":
		if html {
			page := view.Page{Title: formTitle(out.page), Dino: out.dino}
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				page.Errors = verr.FullMessages()
			}
			s.render(w, r, http.StatusUnprocessableEntity, out.page, page)
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))

	case errors.As(err, &maxErr):
		if html {
			s.renderError(w, r, http.StatusRequestEntityTooLarge, "Request Too Large", "The submitted form is too large.")
			return
		}
		writeJSON(w, http.StatusRequestEntityTooLarge,
			ErrorResponse{Error: ErrorDetail{Code: "request_too_large", Message: err.Error()}})

	case isBadRequest(err):
		if html {
			s.renderError(w, r, http.StatusBadRequest, "Bad Request", unwrapMessage(err))
			return
		}
		writeJSON(w, http.StatusBadRequest, requestBody(err))

	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
		if html {
			s.renderError(w, r, http.StatusInternalServerError, "Something went wrong", "Please try again later.")
			return
		}
		writeJSON(w, http.StatusInternalServerError, internalBody())
	}
}

// render writes an HTML page, picking up any pending notice.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, page view.Page) {
	page.Notice = takeNotice(w, r)

	var buf bytes.Buffer
	if err := s.views.Render(&buf, name, page); err != nil {
		s.log.ErrorContext(r.Context(), "render failed", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // the status line is already on the wire.
	buf.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	s.render(w, r, status, view.Error, view.Page{Title: title, Message: message})
}

func formTitle(page string) string {
	if page == view.Edit {
		return "Editing Dino"
	}
	return "New Dino"
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, to, notice string) {
	setNotice(w, notice)
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func notAcceptable(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotAcceptable,
		ErrorResponse{Error: ErrorDetail{Code: "not_acceptable", Message: "unsupported response format"}})
}

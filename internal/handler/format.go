package handler

import (
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Representations a dino action can answer with.
const (
	formatHTML = "html"
	formatJSON = "json"
	formatCSV  = "csv"
)

// requestFormat picks the response representation. In order: the URL
// extension (/dinos/{id}.json, stripped by chi's URLFormat middleware), the
// ?format= query parameter, then the Accept and Content-Type headers.
// Anything else is HTML.
func requestFormat(r *http.Request) string {
	if f, _ := r.Context().Value(chimiddleware.URLFormatCtxKey).(string); f != "" {
		return strings.ToLower(f)
	}
	if f := r.URL.Query().Get("format"); f != "" {
		return strings.ToLower(f)
	}

	accept := r.Header.Get("Accept")
	switch {
	case strings.Contains(accept, "application/json"):
		return formatJSON
	case strings.Contains(accept, "text/csv"):
		return formatCSV
	case strings.Contains(accept, "text/html"):
		return formatHTML
	case strings.HasPrefix(r.Header.Get("Content-Type"), "application/json"):
		return formatJSON
	}
	return formatHTML
}

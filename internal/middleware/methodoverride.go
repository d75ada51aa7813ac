package middleware

import (
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/dinos/internal/params"
)

// overridable lists the methods an HTML form may ask for via _method.
var overridable = map[string]bool{
	http.MethodPatch:  true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// MethodOverride lets browser forms, which can only GET or POST, reach PATCH,
// PUT and DELETE routes. A POST carrying a form field _method (or an
// X-HTTP-Method-Override header) is rerouted as that method.
//
// It must run before routing. When mounted under another chi router it also
// rewrites the route context, which the parent has already filled in.
// A form body that fails to parse (too large, bad encoding) is left POST and
// the failure is handed on through params.WithFormError.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m, err := overrideMethod(r)
			switch {
			case err != nil:
				r = params.WithFormError(r, err)
			case overridable[m]:
				r.Method = m
				if rctx := chi.RouteContext(r.Context()); rctx != nil {
					rctx.RouteMethod = m
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideMethod(r *http.Request) (string, error) {
	if h := r.Header.Get("X-HTTP-Method-Override"); h != "" {
		return strings.ToUpper(h), nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return "", err
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(params.MaxMultipartMemory); err != nil {
			return "", err
		}
	default:
		return "", nil
	}
	return strings.ToUpper(r.PostForm.Get("_method")), nil
}

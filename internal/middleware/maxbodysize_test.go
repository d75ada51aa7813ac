package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/dinos/internal/middleware"
)

// readBody stands in for the form and JSON decoders: a *http.MaxBytesError
// from the body read becomes a 413.
var readBody = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, err := io.ReadAll(r.Body)
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	case err != nil:
		w.WriteHeader(http.StatusBadRequest)
	default:
		w.WriteHeader(http.StatusOK)
	}
})

func TestMaxBodySizeHandler(t *testing.T) {
	const limit = 100

	cases := []struct {
		name          string
		size          int
		contentLength int64
		want          int
	}{
		{"within limit", 50, 50, http.StatusOK},
		{"exactly at limit", limit, limit, http.StatusOK},
		{"declared length over limit", 200, 200, http.StatusRequestEntityTooLarge},
		{"streamed body over limit", 200, -1, http.StatusRequestEntityTooLarge},
		{"streamed body within limit", 10, -1, http.StatusOK},
	}

	h := middleware.NewMaxBodySizeHandler(limit)(readBody)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/dinos", strings.NewReader(strings.Repeat("x", tc.size)))
			req.ContentLength = tc.contentLength
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

// A declared oversize body is refused before the handler runs.
func TestMaxBodySizeHandler_RejectsBeforeHandler(t *testing.T) {
	called := false
	h := middleware.NewMaxBodySizeHandler(10)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/dinos", strings.NewReader(strings.Repeat("x", 20)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, called)
}

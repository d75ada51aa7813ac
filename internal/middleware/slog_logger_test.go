package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/dinos/internal/middleware"
)

// decodeLogLine parses the single JSON line written by the logger.
func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestSlogLogger_logsRequestFields verifies that the middleware writes one
// JSON line with the request fields and the id placed in context by chi's
// RequestID middleware.
func TestSlogLogger_logsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(middleware.NewSlogLogger(logger))
	r.Get("/dinos/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("rawr")) //nolint:errcheck
	})

	req := httptest.NewRequest(http.MethodGet, "/dinos/42", nil)
	req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-req-id"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	entry := decodeLogLine(t, &buf)
	require.Equal(t, "INFO", entry["level"])
	require.Equal(t, "GET", entry["method"])
	require.Equal(t, "/dinos/42", entry["path"])
	require.Equal(t, "/dinos/{id}", entry["route"])
	require.EqualValues(t, http.StatusOK, entry["status"])
	require.EqualValues(t, 4, entry["bytes"])
	require.Equal(t, "test-req-id", entry["request_id"])
	require.NotNil(t, entry["duration_ms"])
}

func TestSlogLogger_levelFollowsStatus(t *testing.T) {
	cases := map[int]string{
		http.StatusSeeOther:            "INFO",
		http.StatusNotFound:            "WARN",
		http.StatusUnprocessableEntity: "WARN",
		http.StatusInternalServerError: "ERROR",
	}

	for status, level := range cases {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			h := middleware.NewSlogLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/dinos", nil))

			entry := decodeLogLine(t, &buf)
			require.Equal(t, level, entry["level"])
			require.EqualValues(t, status, entry["status"])
		})
	}
}

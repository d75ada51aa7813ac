package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/dinos/internal/middleware"
)

const allowedOrigin = "http://localhost:5173"

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORSHandler_AllowedOrigin(t *testing.T) {
	h := middleware.NewCORSHandler([]string{allowedOrigin})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/dinos.json", nil)
	req.Header.Set("Origin", allowedOrigin)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, allowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSHandler_DisallowedOriginGetsNoHeader(t *testing.T) {
	h := middleware.NewCORSHandler([]string{allowedOrigin})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/dinos.json", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

// Preflights for every write the dino API accepts. Request headers are
// lowercase and sorted, as browsers send them and as rs/cors compares them.
func TestCORSHandler_Preflight(t *testing.T) {
	cases := []struct {
		method  string
		headers string
	}{
		{http.MethodPost, "content-type"},
		{http.MethodPatch, "content-type"},
		{http.MethodPut, "accept,content-type"},
		{http.MethodDelete, "accept"},
		{http.MethodPost, "x-http-method-override"},
	}

	h := middleware.NewCORSHandler([]string{allowedOrigin})(okHandler)
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.headers, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/dinos/1", nil)
			req.Header.Set("Origin", allowedOrigin)
			req.Header.Set("Access-Control-Request-Method", tc.method)
			req.Header.Set("Access-Control-Request-Headers", tc.headers)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.True(t, rec.Code == http.StatusNoContent || rec.Code == http.StatusOK,
				"expected 2xx for OPTIONS preflight, got %d", rec.Code)
			assert.Equal(t, allowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tc.method, rec.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

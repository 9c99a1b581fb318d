package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	s := NewServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHealthHandlerWrongMethod(t *testing.T) {
	s := NewServer()

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/health", nil)
		w := httptest.NewRecorder()

		s.mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code, "method %s", method)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := NewServer()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	s.mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRoutesReturn404(t *testing.T) {
	s := NewServer()

	tests := []string{"/", "/nonexistent", "/ready", "/health/", "/metricsx"}

	for _, path := range tests {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		s.mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code, "path: %s", path)
	}
}

func TestNewServer(t *testing.T) {
	s := NewServer()
	assert.NotNil(t, s)
	assert.NotNil(t, s.Handler())
}

func TestHealthServerConcurrency(t *testing.T) {
	s := NewServer()

	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func() {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			s.mux.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

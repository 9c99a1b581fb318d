package api

import (
	"net/http"
	"time"

	"github.com/fieldstone-labs/trace-exporter/pkg/metrics"
)

// Server is the exporter's HTTP exposition server: Prometheus scrape
// endpoint, a liveness probe, and nothing else.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates the exposition HTTP server with its routes registered.
func NewServer() *Server {
	mux := http.NewServeMux()
	s := &Server{mux: mux}

	mux.HandleFunc("/health", s.healthHandler)
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/", s.notFoundHandler)

	return s
}

// ListenAndServe starts the HTTP server on addr in a background goroutine
// and returns at once. The returned channel receives the server's exit
// error once it stops; the returned *http.Server is what Shutdown drains.
func (s *Server) ListenAndServe(addr string) (*http.Server, <-chan error) {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	return httpServer, errCh
}

// healthHandler implements GET /health: a bare liveness probe, 200 with an
// empty body. Any path-matched request that isn't GET falls through to 404
// since this mux registers no other method handling.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet || r.URL.Path != "/health" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// notFoundHandler is the catch-all for every route other than /health and
// /metrics.
func (s *Server) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.NotFound(w, r)
}

// Handler returns the HTTP handler for embedding or testing.
func (s *Server) Handler() http.Handler {
	return s.mux
}

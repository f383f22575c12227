// Package httpserver hosts the streamable MCP endpoint plus health and
// metrics routes when the server runs in HTTP mode.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Server struct{ mux *chi.Mux }

// New builds the router with the standard middleware chain. No timeout
// wrapper: the MCP endpoint streams long-lived responses.
func New(logger zerolog.Logger) *Server {
	m := chi.NewRouter()

	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Metrics)
	m.Use(Logger(logger))

	m.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches an extra handler (e.g. /metrics, /mcp) to the router.
// The trailing wildcard keeps sub-paths routed to the same handler.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
	s.mux.Handle(path+"/*", h)
}

package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/orrery/pkg/layout"
	"github.com/matzehuels/orrery/pkg/store"
)

// Server exposes solving and stored-layout retrieval over HTTP.
type Server struct {
	engine *layout.Engine
	store  store.Store
	logger *log.Logger
}

// NewServer creates a Server around the given engine. A nil st falls back to
// an in-memory store, so solved layouts remain fetchable for the lifetime of
// the process; a nil logger falls back to the default logger.
func NewServer(eng *layout.Engine, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{engine: eng, store: st, logger: logger}
}

// Router assembles the HTTP routes and their middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/layouts/{id}", s.handleLayout)
	})
	return r
}

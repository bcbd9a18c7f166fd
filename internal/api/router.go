// Package api exposes the dashboard over HTTP: the embedded single-page
// UI, the filter/aggregate JSON endpoints, and the analyst chat.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitalstats/natalityd/internal/analyst"
	"github.com/vitalstats/natalityd/internal/dataset"
	"github.com/vitalstats/natalityd/internal/session"
)

// Server bundles the dashboard's dependencies: the loaded dataset, the
// conversation store, and the analyst.
type Server struct {
	table    *dataset.Table
	sessions session.Store
	analyst  *analyst.Analyst
}

// NewServer wires handler dependencies.
func NewServer(table *dataset.Table, sessions session.Store, a *analyst.Analyst) *Server {
	return &Server{table: table, sessions: sessions, analyst: a}
}

// Router returns the chi router for the full HTTP surface.
func (s *Server) Router(requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}

	r.Get("/", s.handleIndex)
	r.Get("/healthz", handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/filters", s.handleFilters)
		r.Post("/dashboard", s.handleDashboard)
		r.Post("/chat", s.handleChat)
		r.Get("/chat/history", s.handleChatHistory)
	})

	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

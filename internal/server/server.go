// Package server exposes the HTTP surface. Handlers stay thin; the pipeline
// and queries live behind internal/service and internal/repository.
package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/courtdata/stats-tracker/internal/common"
	"github.com/courtdata/stats-tracker/internal/export"
	"github.com/courtdata/stats-tracker/internal/repository"
	"github.com/courtdata/stats-tracker/internal/service"
)

// Deps carries everything the handlers need.
type Deps struct {
	Upload   *service.UploadService
	Repo     repository.MatchRepository
	Exporter *export.Service
	DB       *sql.DB
	Cfg      common.ServerConfig
	Logger   *slog.Logger
}

// NewRouter wires middleware and routes.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	h := &handler{Deps: d}

	timeout := d.Cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", h.upload)
		r.Post("/import-json", h.importJSON)
		r.Route("/matches", func(r chi.Router) {
			r.Get("/", h.listMatches)
			r.Get("/latest", h.latestMatch)
			r.Get("/find", h.findMatch)
			r.Get("/{id}", h.getMatch)
			r.Get("/{id}/lineups", h.matchLineups)
			r.Get("/{id}/export", h.exportMatch)
			r.Delete("/{id}", h.deleteMatch)
		})
		r.Get("/players/{name}", h.playerHistory)
	})
	return r
}

// Copyright (c) 2026 Patriarchia. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/copticarchive/patriarchia/internal/export"
	"github.com/copticarchive/patriarchia/internal/insight"
	"github.com/copticarchive/patriarchia/internal/patriarch"
	"github.com/copticarchive/patriarchia/internal/platform/config"
	"github.com/copticarchive/patriarchia/internal/platform/constants"
	"github.com/copticarchive/patriarchia/internal/platform/middleware"
	"github.com/copticarchive/patriarchia/internal/platform/sec"
	"github.com/copticarchive/patriarchia/internal/recommend"
	"github.com/copticarchive/patriarchia/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the admin console session routes.
	Auth *auth.Handler

	// Patriarch handles the public catalogue and its admin management routes.
	Patriarch *patriarch.Handler

	// Recommend handles the interest-matching endpoint.
	Recommend *recommend.Handler

	// Insight handles the generative Q&A routes. Nil when no API key is
	// configured; its routes are then not mounted.
	Insight *insight.Handler

	// Export handles the administrative CSV download.
	Export *export.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/patriarchs", h.Patriarch.Routes())
		api.Mount("/recommendations", h.Recommend.Routes())

		if h.Insight != nil {
			api.Mount("/insight", h.Insight.Routes())
		}

		// Administrative surface: curators may read, admins may mutate.
		api.Route("/admin", func(admin chi.Router) {
			admin.Group(func(protected chi.Router) {
				protected.Use(middleware.RequireRole(sec.RoleCurator))
				protected.Mount("/patriarchs", h.Patriarch.AdminRoutes())
			})
			admin.Group(func(protected chi.Router) {
				protected.Use(middleware.RequireRole(sec.RoleAdmin))
				protected.Mount("/export", h.Export.Routes())
			})
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

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

	"github.com/shelfmark/shelfmark/internal/activity"
	"github.com/shelfmark/shelfmark/internal/catalog"
	"github.com/shelfmark/shelfmark/internal/goal"
	"github.com/shelfmark/shelfmark/internal/library"
	"github.com/shelfmark/shelfmark/internal/metadata"
	"github.com/shelfmark/shelfmark/internal/platform/config"
	"github.com/shelfmark/shelfmark/internal/platform/constants"
	"github.com/shelfmark/shelfmark/internal/platform/middleware"
	"github.com/shelfmark/shelfmark/internal/review"
	"github.com/shelfmark/shelfmark/internal/shelf"
	"github.com/shelfmark/shelfmark/internal/users/auth"
	"github.com/shelfmark/shelfmark/internal/users/profile"
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

	// Auth handles authentication routes (login, register, refresh).
	Auth *auth.Handler

	// Catalog serves canonical books and the resolver.
	Catalog *catalog.Handler

	// Library is the per-user reading tracker.
	Library *library.Handler

	// Activity serves the derived reading activity feed.
	Activity *activity.Handler

	// Review handles public reviews and likes.
	Review *review.Handler

	// Metadata proxies the external book-search provider.
	Metadata *metadata.Handler

	// Shelf manages user-curated bookshelves.
	Shelf *shelf.Handler

	// Goal manages yearly reading goals.
	Goal *goal.Handler

	// Profile serves public and own reader profiles.
	Profile *profile.Handler
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
		api.Mount("/books", h.Catalog.Routes())
		api.Mount("/library", h.Library.Routes())
		api.Mount("/reviews", h.Review.Routes())
		api.Mount("/metadata", h.Metadata.Routes())
		api.Mount("/shelves", h.Shelf.Routes())
		api.Mount("/goals", h.Goal.Routes())
		api.Mount("/profiles", h.Profile.Routes())

		// Cross-entity listings live outside the domain subrouters because
		// their owner comes from the path, not the session.
		api.With(middleware.RequireAuth).Get("/activity", h.Activity.ListOwn)
		api.Get("/users/{userID}/activity", h.Activity.ListForUser)
		api.Get("/users/{userID}/library", h.Library.ListForUser)
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

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains for the
// DevLink API. Routes are split into a public group (registration, login,
// health) and an authenticated group scoped to the bearer token's user.
package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"devlink/internal/handlers"
	"devlink/internal/middleware"
	"devlink/internal/models"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the endpoint handlers mounted under /api.
type Handlers struct {
	Auth       *handlers.Auth
	Categories *handlers.Categories
	Links      *handlers.Links
}

// Options carries the cross-cutting pieces the router wires in.
type Options struct {
	Authenticator *middleware.Authenticator
	DB            Pinger
	CORSOrigins   []string
}

// New creates the configured chi router.
func New(h Handlers, opts Options) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		models.NewNotFoundError("resource").WriteJSON(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		models.NewMethodNotAllowedError().WriteJSON(w)
	})

	r.Get("/", bannerHandler)
	r.Get("/health", healthHandler(opts.DB))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.With(opts.Authenticator.RequireUser).Get("/me", h.Auth.Me)
		})

		r.Group(func(r chi.Router) {
			r.Use(opts.Authenticator.RequireUser)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.Categories.List)
				r.Post("/", h.Categories.Create)
				r.Get("/{id}", h.Categories.Get)
				r.Put("/{id}", h.Categories.Update)
				r.Delete("/{id}", h.Categories.Delete)
			})

			r.Route("/links", func(r chi.Router) {
				r.Get("/", h.Links.List)
				r.Post("/", h.Links.Create)
				r.Get("/{id}", h.Links.Get)
				r.Put("/{id}", h.Links.Update)
				r.Delete("/{id}", h.Links.Delete)
			})
		})
	})

	return r
}

func bannerHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"name":"DevLink API","status":"ok"}`))
}

// healthHandler pings the database with a short deadline.
func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.Ping(ctx); err != nil {
			slog.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable","database":"down"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","database":"up"}`))
	}
}

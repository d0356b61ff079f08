// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the DevLink API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devlink/internal/cache"
	"devlink/internal/config"
	"devlink/internal/credential"
	"devlink/internal/database"
	"devlink/internal/handlers"
	"devlink/internal/middleware"
	"devlink/internal/repository"
	"devlink/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Text logs in development, JSON everywhere else.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"db_driver", cfg.DBDriver,
	)

	db, err := database.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed a demo account in development (no-op if any user exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// The category cache is optional. An unreachable Valkey degrades to
	// uncached reads instead of blocking startup.
	var categoryCache repository.CategoryCache
	if cfg.CacheEnabled() {
		client, err := cache.ConnectValkey(context.Background(), cache.ValkeyOptions{
			Host:     cfg.ValkeyHost,
			Port:     cfg.ValkeyPort,
			Password: cfg.ValkeyPassword,
		})
		if err != nil {
			slog.Warn("valkey unavailable, running without category cache", "error", err)
		} else {
			defer client.Close()
			categoryCache = cache.NewCategoryCache(client, cache.DefaultCategoryTTL)
			slog.Info("valkey connected", "host", cfg.ValkeyHost, "port", cfg.ValkeyPort)
		}
	} else {
		slog.Info("valkey not configured, category cache disabled")
	}

	tokens, err := credential.New(cfg.JWTSecret, cfg.TokenTTL())
	if err != nil {
		slog.Error("failed to initialize credential service", "error", err)
		os.Exit(1)
	}

	repo := repository.New(db, categoryCache)

	r := router.New(router.Handlers{
		Auth:       handlers.NewAuth(repo, tokens),
		Categories: handlers.NewCategories(repo),
		Links:      handlers.NewLinks(repo),
	}, router.Options{
		Authenticator: middleware.NewAuthenticator(tokens, repo),
		DB:            repo,
		CORSOrigins:   cfg.AllowedOrigins(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-serverErr:
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

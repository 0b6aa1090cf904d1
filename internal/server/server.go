// Package server assembles the HTTP server from configuration and an open
// database.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/erazemk/roomboard/internal/api"
	"github.com/erazemk/roomboard/internal/config"
	"github.com/erazemk/roomboard/internal/events"
	"github.com/erazemk/roomboard/internal/filter"
	"github.com/erazemk/roomboard/internal/store"
)

// Server is a configured, not yet listening, HTTP server.
type Server struct {
	HTTP            *http.Server
	Hub             *events.Hub
	shutdownTimeout time.Duration
}

// New prepares the database for serving (default tags, JWT secret) and
// builds the server.
func New(ctx context.Context, cfg *config.Config, db *sql.DB) (*Server, error) {
	ttl, err := cfg.TokenLifetime()
	if err != nil {
		return nil, err
	}
	shutdown, err := cfg.ShutdownWait()
	if err != nil {
		return nil, err
	}

	prefStore := &store.Preferences{DB: db}
	if err := InstallDefaultTagsOnce(ctx, db, prefStore); err != nil {
		return nil, err
	}

	secret, err := store.GetJWTSecret(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("getting JWT secret: %w", err)
	}

	hub := events.NewHub()
	router := api.NewRouter(api.Config{
		DB:             db,
		JWTSecret:      secret,
		TokenTTL:       ttl,
		Prefs:          prefStore,
		Session:        filter.NewSession(ctx, prefStore),
		Hub:            hub,
		MaxUploadBytes: cfg.MaxUploadBytes,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	return &Server{
		HTTP: &http.Server{
			Addr:              cfg.Addr,
			Handler:           api.LoggingMiddleware(router),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		Hub:             hub,
		shutdownTimeout: shutdown,
	}, nil
}

// Run serves on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		slog.Info("server started", "addr", ln.Addr().String())
		errc <- s.HTTP.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.HTTP.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

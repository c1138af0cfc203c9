// Package server exposes the catalog service over HTTP. This is the
// surface the interaction router calls; the handlers own the router-side
// checks (upload filename and size caps) and map service errors to
// statuses, while all catalog semantics stay in the service.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/itemdex/internal/config"
	"github.com/leapstack-labs/itemdex/internal/service"
)

// Server is the itemdex HTTP server.
type Server struct {
	svc    *service.Service
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a server around the given service.
func New(svc *service.Service, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{svc: svc, cfg: cfg, logger: logger}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/tenants/{tenantID}", func(r chi.Router) {
			r.Post("/catalog", s.handleUpload)
			r.Delete("/catalog", s.handleDelete)
			r.Get("/search", s.handleSearch)
			r.Get("/info", s.handleInfo)
			r.Get("/items/{itemID}", s.handleLookup)
		})
		r.Post("/controls", s.handleControl)
	})

	return r
}

// Serve runs the HTTP server (and the file watcher when configured)
// until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting server", "addr", s.cfg.Addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Router(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.WatchFile != "" {
		eg.Go(func() error {
			return s.watchItemFile(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

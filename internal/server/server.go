// Package server wires the router, middleware, handlers and their
// dependencies, and owns startup and graceful shutdown. It is the
// composition root: everything is assembled here, so the rest of the
// codebase stays free of wiring concerns.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/python-sandbox/internal/auth"
	"github.com/sakif/python-sandbox/internal/config"
	"github.com/sakif/python-sandbox/internal/handler"
	"github.com/sakif/python-sandbox/internal/middleware"
	sqliteRepo "github.com/sakif/python-sandbox/internal/repository/sqlite"
	"github.com/sakif/python-sandbox/internal/sandbox"
	"github.com/sakif/python-sandbox/internal/service"
	"github.com/sakif/python-sandbox/internal/store"
)

// artifactURLPrefix is the serving convention for promoted artifacts: the
// store root is mounted here, and SaveArtifact builds references under it.
const artifactURLPrefix = "/api/uploads"

// Server holds the router and the resources it owns. The database
// connection is closed during shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain:
// sqlite DB + file store → sandbox → execution service → handlers → routes.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	fileStore, err := store.NewFileStore(cfg.Storage.UploadsDir, artifactURLPrefix)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening artifact store: %w", err)
	}

	sb := sandbox.New(sandbox.Config{
		PythonBin:      cfg.Sandbox.PythonBin,
		DefaultTimeout: time.Duration(cfg.Sandbox.DefaultTimeoutSeconds) * time.Second,
		MaxTimeout:     time.Duration(cfg.Sandbox.MaxTimeoutSeconds) * time.Second,
		FetchTimeout:   time.Duration(cfg.Sandbox.FetchTimeoutSeconds) * time.Second,
		BaseOrigin:     cfg.Sandbox.BaseOrigin,
	}, fileStore, logger)

	svc := service.NewExecutionService(sb, db, logger)

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(svc, fileStore); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and routes:
//
//	GET  /healthz              → liveness probe
//	GET  /metrics              → Prometheus exposition
//	POST /api/execute          → run a snippet (auth when enabled)
//	GET  /api/executions       → session history (auth when enabled)
//	GET  /api/uploads/*        → promoted artifacts (public, read-only)
func (s *Server) setupRoutes(svc *service.ExecutionService, fileStore *store.FileStore) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	s.router.Handle("/metrics", promhttp.Handler())

	var requireAuth func(http.Handler) http.Handler
	if s.config.Auth.JWTSecret != "" {
		tokens, err := auth.NewTokenService(s.config.Auth.JWTSecret)
		if err != nil {
			return fmt.Errorf("creating token service: %w", err)
		}
		requireAuth = auth.RequireAuth(tokens)
	} else {
		s.logger.Warn("auth.jwt_secret not set — API authentication is disabled")
	}

	executeHandler := handler.NewExecuteHandler(svc, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		// Artifacts are served from the durable store root so the
		// artifactUrl in every result resolves directly.
		artifactServer := http.FileServer(http.Dir(fileStore.Root()))
		r.Handle("/uploads/*", http.StripPrefix(artifactURLPrefix+"/", artifactServer))

		r.Group(func(r chi.Router) {
			if requireAuth != nil {
				r.Use(requireAuth)
			}
			r.Post("/execute", executeHandler.HandleExecute)
			r.Get("/executions", executeHandler.HandleHistory)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds (sandbox runs are bounded by the 60s ceiling, so long runs may
// be cut short), and close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // must outlast the max execution timeout
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Server.Port),
			slog.String("database", s.config.Storage.DBPath),
			slog.String("uploads", s.config.Storage.UploadsDir),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

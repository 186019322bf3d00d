package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/syllaber/syllaber/internal/authoring"
	"github.com/syllaber/syllaber/internal/config"
	"github.com/syllaber/syllaber/internal/courses"
	"github.com/syllaber/syllaber/internal/extract"
	"github.com/syllaber/syllaber/internal/generate"
	"github.com/syllaber/syllaber/internal/lifecycle"
	"github.com/syllaber/syllaber/internal/render"
	"github.com/syllaber/syllaber/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	lc     *lifecycle.Coordinator
	logger *slog.Logger
	store  courses.System
	http   server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	lc := lifecycle.New()

	renderer := render.New()
	store, err := courses.New(&cfg.Storage, renderer, logger)
	if err != nil {
		return nil, err
	}

	generator, err := generate.New(context.Background(), &cfg.Generator, logger)
	if err != nil {
		return nil, err
	}

	author := authoring.New(store, generator,
		extract.NewDocument(logger), extract.NewWeb(logger), logger)

	handler := buildMiddleware(cfg, logger).
		Wrap(buildRoutes(cfg, logger, lc, store, author))

	logger.Info("server initialized",
		"addr", cfg.Server.Addr(),
		"storage", cfg.Storage.BasePath,
		"generator_ready", generator.Ready())

	return &Server{
		lc:     lc,
		logger: logger,
		store:  store,
		http:   server.New(&cfg.Server, cfg.ShutdownTimeoutDuration(), handler, logger),
	}, nil
}

// Start begins all subsystems and returns when they are ready.
func (s *Server) Start() error {
	if err := s.store.Start(s.lc); err != nil {
		return err
	}

	if err := s.http.Start(s.lc); err != nil {
		return err
	}

	go func() {
		s.lc.WaitForStartup()
		s.logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within the timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.lc.Shutdown(timeout)
}

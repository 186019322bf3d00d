package main

import (
	"log/slog"

	"github.com/syllaber/syllaber/internal/config"
	"github.com/syllaber/syllaber/internal/middleware"
)

// buildMiddleware creates and configures the middleware stack with path
// normalization, request logging, and CORS.
func buildMiddleware(cfg *config.Config, logger *slog.Logger) middleware.System {
	sys := middleware.New()
	sys.Use(middleware.TrimSlash())
	sys.Use(middleware.Logger(logger))
	sys.Use(middleware.CORS(&cfg.CORS))
	return sys
}

// Package logger provides structured logging initialization.
package logger

import (
	"log/slog"
	"os"

	"github.com/syllaber/syllaber/internal/config"
)

// New creates a configured slog.Logger based on the logging configuration.
func New(cfg *config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.Level.ToSlogLevel(),
	}

	var handler slog.Handler
	if cfg.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

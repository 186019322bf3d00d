package main

import (
	"log/slog"
	"net/http"

	"github.com/syllaber/syllaber/internal/authoring"
	"github.com/syllaber/syllaber/internal/config"
	"github.com/syllaber/syllaber/internal/courses"
	"github.com/syllaber/syllaber/internal/lifecycle"
	"github.com/syllaber/syllaber/internal/routes"
	pkgroutes "github.com/syllaber/syllaber/pkg/routes"
)

// buildRoutes configures all HTTP routes for the service.
func buildRoutes(cfg *config.Config, logger *slog.Logger, lc *lifecycle.Coordinator,
	store courses.System, author authoring.System) http.Handler {

	r := routes.New(logger)

	courseHandler := courses.NewHandler(store, logger, cfg.Storage.MaxUploadSizeBytes())
	authoringHandler := authoring.NewHandler(author, logger)

	r.RegisterGroup(pkgroutes.Group{
		Prefix: "/api",
		Children: []pkgroutes.Group{
			courseHandler.Routes(),
			authoringHandler.Routes(),
		},
	})

	r.RegisterRoute(pkgroutes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
	})

	r.RegisterRoute(pkgroutes.Route{
		Method:  "GET",
		Pattern: "/readyz",
		Handler: func(w http.ResponseWriter, req *http.Request) {
			handleReadinessCheck(w, lc)
		},
	})

	return r.Build()
}

// handleHealthCheck responds with OK status for health monitoring.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, lc *lifecycle.Coordinator) {
	if !lc.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}

package authoring

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/syllaber/syllaber/internal/courses"
	"github.com/syllaber/syllaber/internal/generate"
	"github.com/syllaber/syllaber/pkg/handlers"
	"github.com/syllaber/syllaber/pkg/routes"
)

// Handler provides the HTTP endpoint for syllabus generation.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates an authoring handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "authoring"),
	}
}

// Routes returns the authoring endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/courses",
		Description: "Syllabus generation",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{course}/generate", Handler: h.Generate},
		},
	}
}

// GenerateRequest carries optional author guidance for generation.
type GenerateRequest struct {
	Instructions string `json:"instructions"`
}

// Generate handles POST /api/courses/{course}/generate. Generation can
// take minutes; the request blocks until the version is saved.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	version, err := h.sys.Generate(r.Context(), r.PathValue("course"), req.Instructions)
	if err != nil {
		handlers.RespondError(w, h.logger, mapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, version)
}

func mapHTTPStatus(err error) int {
	if errors.Is(err, generate.ErrNoCredential) || errors.Is(err, generate.ErrEmptyResponse) {
		return generate.MapHTTPStatus(err)
	}
	return courses.MapHTTPStatus(err)
}

package courses

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/syllaber/syllaber/pkg/handlers"
	"github.com/syllaber/syllaber/pkg/routes"
)

// Handler provides HTTP endpoints for course store operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a course handler with the specified configuration.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "courses"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the course endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/courses",
		Description: "Course management, documents, links, and generated versions",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "GET", Pattern: "/{course}", Handler: h.Content},
			{Method: "DELETE", Pattern: "/{course}", Handler: h.Delete},
			{Method: "POST", Pattern: "/{course}/documents", Handler: h.UploadDocument},
			{Method: "POST", Pattern: "/{course}/links", Handler: h.AddLink},
			{Method: "GET", Pattern: "/{course}/versions", Handler: h.Versions},
			{Method: "GET", Pattern: "/{course}/versions/{version}", Handler: h.VersionContent},
			{Method: "PUT", Pattern: "/{course}/versions/{version}/{artifact}", Handler: h.UpdateVersion},
			{Method: "GET", Pattern: "/{course}/versions/{version}/{artifact}/pdf", Handler: h.DownloadPDF},
		},
	}
}

// List handles GET /api/courses.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, map[string][]string{"courses": names})
}

// Create handles POST /api/courses.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Create(r.Context(), req.Name); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

// Content handles GET /api/courses/{course}.
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	content, err := h.sys.Content(r.Context(), r.PathValue("course"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, content)
}

// Delete handles DELETE /api/courses/{course}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("course")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadDocument handles POST /api/courses/{course}/documents.
// Uploads are multipart; only PDF documents are accepted.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	if http.DetectContentType(data) != "application/pdf" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("%w: only PDF documents are accepted", ErrInvalidFile))
		return
	}

	var pageCount *int
	if pc, err := extractPDFPageCount(data); err != nil {
		h.logger.Warn("failed to extract pdf page count", "filename", header.Filename, "error", err)
	} else {
		pageCount = pc
	}

	stored, err := safeFilename(header.Filename)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	course := r.PathValue("course")
	if err := h.sys.AddDocument(r.Context(), course, header.Filename, data); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	// Respond with the sanitized name the store actually used, so the
	// client sees the same name Content will later list.
	handlers.RespondJSON(w, http.StatusCreated, map[string]any{
		"filename":   stored,
		"size_bytes": len(data),
		"page_count": pageCount,
	})
}

// AddLink handles POST /api/courses/{course}/links.
func (h *Handler) AddLink(w http.ResponseWriter, r *http.Request) {
	var req AddLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.AddLink(r.Context(), r.PathValue("course"), req.URL, req.Description); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, Link{URL: req.URL, Description: req.Description})
}

// Versions handles GET /api/courses/{course}/versions.
func (h *Handler) Versions(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.sys.Versions(r.Context(), r.PathValue("course"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, map[string][]Version{"versions": ledger})
}

// VersionContent handles GET /api/courses/{course}/versions/{version}.
func (h *Handler) VersionContent(w http.ResponseWriter, r *http.Request) {
	version, err := parseVersion(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	content, err := h.sys.VersionContent(r.Context(), r.PathValue("course"), version)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, content)
}

// UpdateVersion handles PUT /api/courses/{course}/versions/{version}/{artifact}.
func (h *Handler) UpdateVersion(w http.ResponseWriter, r *http.Request) {
	version, err := parseVersion(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	artifact, err := ParseArtifact(r.PathValue("artifact"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var req UpdateVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	entry, err := h.sys.UpdateVersionContent(r.Context(), r.PathValue("course"), version, artifact, req.Content)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, entry)
}

// DownloadPDF handles GET /api/courses/{course}/versions/{version}/{artifact}/pdf.
func (h *Handler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	version, err := parseVersion(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	artifact, err := ParseArtifact(r.PathValue("artifact"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	content, err := h.sys.VersionContent(r.Context(), r.PathValue("course"), version)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var pdf *PDFFile
	switch artifact {
	case ArtifactSyllabusEN:
		pdf = content.PDFEnglish
	case ArtifactSyllabusIT:
		pdf = content.PDFItalian
	default:
		pdf = content.PDFTopicMap
	}

	if pdf == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound,
			fmt.Errorf("no rendered pdf for %s in v%d", artifact, version))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf.Data)
}

func parseVersion(r *http.Request) (int, error) {
	version, err := strconv.Atoi(r.PathValue("version"))
	if err != nil || version < 1 {
		return 0, fmt.Errorf("invalid version number: %q", r.PathValue("version"))
	}
	return version, nil
}

func extractPDFPageCount(data []byte) (*int, error) {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}
	return &count, nil
}

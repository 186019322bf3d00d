package courses

import (
	"errors"
	"net/http"
)

// Domain errors for course store operations.
var (
	ErrCourseExists     = errors.New("course already exists")
	ErrCourseNotFound   = errors.New("course not found")
	ErrVersionNotFound  = errors.New("version not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidArtifact  = errors.New("invalid artifact kind")
	ErrInvalidName      = errors.New("invalid course name")
	ErrFileTooLarge     = errors.New("file exceeds maximum upload size")
	ErrInvalidFile      = errors.New("invalid file")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrCourseExists):
		return http.StatusConflict
	case errors.Is(err, ErrCourseNotFound),
		errors.Is(err, ErrVersionNotFound),
		errors.Is(err, ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArtifact),
		errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrInvalidFile):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

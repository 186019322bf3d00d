package generate

import (
	"errors"
	"net/http"
)

var (
	ErrNoCredential  = errors.New("no generator credential configured")
	ErrEmptyResponse = errors.New("model returned an empty response")
)

// MapHTTPStatus maps generator errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoCredential):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrEmptyResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

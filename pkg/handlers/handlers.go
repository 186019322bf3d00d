// Package handlers holds the JSON response helpers shared by every
// HTTP handler in the service.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorBody is the wire shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// RespondJSON writes data as the JSON response body with the given
// status. Encoding failures are unrecoverable at this point (the status
// line is already written) and are ignored.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes the service's error shape,
// {"error": "<message>"}, with the given status.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("request failed", "status", status, "error", err)
	RespondJSON(w, status, errorBody{Error: err.Error()})
}

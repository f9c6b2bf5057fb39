// Package handlers provides JSON response helpers shared by all HTTP handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the wire shape of every error response. Code is a stable
// machine-readable identifier; Message is human-readable detail.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes it as a JSON error body.
// The error message doubles as the code when no explicit code applies.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("request failed", "status", status, "error", err)
	RespondJSON(w, status, ErrorBody{Error: err.Error()})
}

// RespondCode logs the error and writes a JSON error body carrying a stable
// machine-readable code alongside the human-readable message.
func RespondCode(w http.ResponseWriter, logger *slog.Logger, status int, code string, err error) {
	logger.Error("request failed", "status", status, "code", code, "error", err)
	RespondJSON(w, status, ErrorBody{Error: code, Message: err.Error()})
}

package ui

import (
	"encoding/json"
	"net/http"

	"modeladvisor/internal"
	"modeladvisor/internal/errors"
)

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		internal.DefaultLogger.Error("failed to encode response: %v", err)
	}
}

// writeError maps AppError codes onto HTTP statuses. Anything
// unrecognized is an internal error with a generic message.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch code {
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
		message = err.Error()
	case errors.CodeNotFound:
		status = http.StatusNotFound
		message = err.Error()
	}

	writeJSON(w, status, errorResponse{OK: false, Error: message, Code: code})
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskhive/task-service/internal/service"
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{
		"success": false,
		"message": message,
	})
}

// writeError translates a service error into its HTTP shape. Anything
// outside the known taxonomy is logged and hidden behind a 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrConflict):
		writeFailure(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		writeFailure(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeFailure(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeFailure(w, http.StatusNotFound, err.Error())
	default:
		h.log.Errorf("Internal error: %v", err)
		writeFailure(w, http.StatusInternalServerError, "Internal server error")
	}
}

package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	eventsvc "github.com/epochline/epochline/internal/services/events"
	"github.com/epochline/epochline/internal/store"
	"github.com/epochline/epochline/internal/timeline"
)

// Helper functions for common HTTP responses

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes a JSON response with the given data.
func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError maps service-layer errors onto HTTP statuses.
//
// Validation failures carry their field list in the body so the form can
// highlight the offending inputs. Conflict exhaustion and a raw version
// conflict both surface as 409.
func writeServiceError(w http.ResponseWriter, err error) {
	if verr, ok := timeline.AsValidationError(err); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "validation failed", "fields": verr.Fields})
		return
	}
	switch {
	case errors.Is(err, eventsvc.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, timeline.ErrNotFound):
		writeError(w, http.StatusNotFound, "event not found")
	case errors.Is(err, store.ErrRetriesExhausted):
		writeError(w, http.StatusConflict, "conflict retries exhausted")
	case errors.Is(err, store.ErrVersionConflict):
		writeError(w, http.StatusConflict, "version conflict")
	case errors.Is(err, store.ErrStoreUnavailable):
		writeError(w, http.StatusBadGateway, "document store unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseLimit parses a limit string and returns a valid limit value.
//
// Returns 0 for empty strings or invalid values.
func parseLimit(limitStr string) int {
	if limitStr == "" {
		return 0
	}
	if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
		return limit
	}
	return 0
}

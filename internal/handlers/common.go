package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AlexandForests/lolvsfriends/internal/riot"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{
		"postgres": h.store.Ping(ctx) == nil,
		"redis":    h.cache == nil || h.cache.Ping(ctx) == nil,
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// upstreamStatus maps a riot client error to the status the caller gets.
// Rate limiting and transient failures read as 502 rather than 500 so the
// frontend can tell "try again" from "we broke".
func upstreamStatus(err error) int {
	switch {
	case errors.Is(err, riot.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, riot.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, riot.ErrRateLimited), errors.Is(err, riot.ErrTransient):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexandForests/lolvsfriends/internal/models"
	"github.com/AlexandForests/lolvsfriends/internal/riot"
)

// UpdateAllMatches handles POST /api/update-all-matches: bulk ingestion for
// the whole friends list. Entry failures land in their own result slots; an
// upstream auth failure returns 401 with the partial results so the caller
// can see how far the run got.
func (h *Handler) UpdateAllMatches(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.UpdateAllMatchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := ValidateStruct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	runID, results, err := h.ingester.IngestRoster(r.Context(), req.FriendsList)
	resp := models.UpdateAllMatchesResponse{RunID: runID, Results: results}

	if err != nil {
		if errors.Is(err, riot.ErrUnauthorized) {
			h.logger.Errorw("Bulk update aborted, upstream rejected credentials", "runId", runID)
			h.jsonResponse(w, http.StatusUnauthorized, resp)
			return
		}
		h.logger.Errorw("Bulk update failed", "runId", runID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.jsonResponse(w, http.StatusOK, resp)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// defaultHistoryPageSize is the page size for on-demand history pulls. The
// bulk roster update uses its own smaller configured count.
const defaultHistoryPageSize = 20

// GetMatches handles GET /api/matches/{puuid}: pull one page of match
// history into the store and report how many matches made it in.
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	puuid := chi.URLParam(r, "puuid")
	if puuid == "" {
		h.errorResponse(w, http.StatusBadRequest, "Missing puuid")
		return
	}

	start := 0
	count := defaultHistoryPageSize
	if s := r.URL.Query().Get("start"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed >= 0 {
			start = parsed
		}
	}
	if c := r.URL.Query().Get("count"); c != "" {
		if parsed, err := strconv.Atoi(c); err == nil && parsed > 0 && parsed <= 100 {
			count = parsed
		}
	}

	processed, err := h.ingester.IngestOne(r.Context(), puuid, start, count)
	if err != nil {
		h.logger.Errorw("Failed to ingest matches", "puuid", puuid, "error", err)
		h.errorResponse(w, upstreamStatus(err), err.Error())
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"puuid":            puuid,
		"matchesProcessed": processed,
	})
}

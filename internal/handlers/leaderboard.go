package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/AlexandForests/lolvsfriends/internal/logic"
	"github.com/AlexandForests/lolvsfriends/internal/models"
)

// GetLeaderboard handles GET /api/leaderboard: the full per-player
// performance view, recomputed from the stored rows.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key, cached, hit := h.lookupView(ctx, "leaderboard")
	if hit {
		h.writeView(w, cached)
		return
	}

	rows, err := h.store.ParticipantRows(ctx)
	if err != nil {
		h.logger.Errorw("Failed to load participant rows", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	players, _ := logic.Aggregate(rows)
	h.renderView(ctx, w, key, players)
}

// GetMemeLeaderboard handles GET /api/meme-leaderboard: the behavioral
// classifier view plus the seven ranked boards.
func (h *Handler) GetMemeLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key, cached, hit := h.lookupView(ctx, "meme-leaderboard")
	if hit {
		h.writeView(w, cached)
		return
	}

	rows, err := h.store.ParticipantRows(ctx)
	if err != nil {
		h.logger.Errorw("Failed to load participant rows", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	_, memes := logic.Aggregate(rows)
	resp := models.MemeLeaderboardResponse{
		PlayerStats:  memes,
		Leaderboards: logic.Rank(memes),
	}
	h.renderView(ctx, w, key, resp)
}

// lookupView reads the row set version, builds the version-qualified cache
// key and checks the cache. The version MUST be read before the rows: a
// write landing between the two reads then leaves the key stale rather than
// the payload, and a stale key can only miss, it can never serve an
// aggregate computed from older rows as current. Any cache failure degrades
// to recomputation.
func (h *Handler) lookupView(ctx context.Context, view string) (key string, body []byte, hit bool) {
	version, err := h.store.RowSetVersion(ctx)
	if err != nil {
		h.logger.Warnw("Failed to read row set version", "error", err)
		return "", nil, false
	}
	key = view + ":" + version

	if h.cache == nil {
		return key, nil, false
	}
	cached, err := h.cache.Get(ctx, key)
	if err != nil {
		return key, nil, false
	}
	return key, cached, true
}

// renderView marshals the freshly folded view, caches it under the key read
// before the fold, and writes it out.
func (h *Handler) renderView(ctx context.Context, w http.ResponseWriter, key string, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.cache != nil && key != "" {
		if err := h.cache.Set(ctx, key, body, h.cacheTTL); err != nil {
			h.logger.Warnw("Failed to cache derived view", "key", key, "error", err)
		}
	}

	h.writeView(w, body)
}

func (h *Handler) writeView(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

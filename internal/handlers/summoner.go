package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AlexandForests/lolvsfriends/internal/models"
	"github.com/AlexandForests/lolvsfriends/internal/riot"
)

// SummonerResponse pairs the resolved account with its profile, mirroring
// what the frontend shows on the summoner card.
type SummonerResponse struct {
	Account  *riot.Account  `json:"account"`
	Summoner *riot.Summoner `json:"summoner"`
}

// PostSummoner handles POST /api/summoner: resolve a riot id, refresh the
// stored summoner row and return the upstream account and profile.
func (h *Handler) PostSummoner(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.SummonerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := ValidateStruct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	account, summoner, err := h.ingester.ResolveSummoner(r.Context(), req.SummonerName, req.TagLine)
	if err != nil {
		h.logger.Errorw("Failed to resolve summoner", "summoner", req.SummonerName, "error", err)
		h.errorResponse(w, upstreamStatus(err), err.Error())
		return
	}

	h.jsonResponse(w, http.StatusOK, SummonerResponse{Account: account, Summoner: summoner})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"flagarena/internal/service"
	"flagarena/internal/transport/rest/middleware"
)

// ScoreboardHandler handles leaderboard endpoints
type ScoreboardHandler struct {
	leaderboard *service.LeaderboardService
}

// NewScoreboardHandler creates a new scoreboard handler
func NewScoreboardHandler(leaderboard *service.LeaderboardService) *ScoreboardHandler {
	return &ScoreboardHandler{leaderboard: leaderboard}
}

// Get handles GET /v1/contests/{id}/scoreboard. The frozen view is the
// default; ?live=1 bypasses the freeze and is admin-only.
func (h *ScoreboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	contestID := mux.Vars(r)["id"]

	ignoreFreeze := r.URL.Query().Get("live") == "1"
	if ignoreFreeze && !middleware.IsAdmin(r.Context()) {
		writeError(w, http.StatusForbidden, "live scoreboard is admin only")
		return
	}

	standings, err := h.leaderboard.Standings(r.Context(), contestID, ignoreFreeze)
	if err != nil {
		if errors.Is(err, service.ErrContestNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "scoreboard unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contestId": contestID,
		"standings": standings,
	})
}

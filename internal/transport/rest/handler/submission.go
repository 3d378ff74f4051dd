package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"flagarena/internal/service"
	"flagarena/internal/transport/rest/middleware"
)

// SubmissionHandler handles flag submission endpoints
type SubmissionHandler struct {
	judge *service.JudgeService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(judge *service.JudgeService) *SubmissionHandler {
	return &SubmissionHandler{judge: judge}
}

// SubmitRequest is the request body for a flag submission
type SubmitRequest struct {
	Flag string `json:"flag"`
}

// Submit handles POST /v1/contests/{id}/challenges/{slug}/submit
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	contestID := vars["id"]
	slug := vars["slug"]
	accountID := middleware.GetAccountID(r.Context())

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Flag == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.judge.Submit(r.Context(), accountID, contestID, slug, req.Flag)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContestNotFound), errors.Is(err, service.ErrChallengeNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrContestNotRunning), errors.Is(err, service.ErrChallengeClosed), errors.Is(err, service.ErrNoIdentity):
			writeError(w, http.StatusForbidden, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "judging failed, please retry")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"flagarena/internal/model"
	"flagarena/internal/repository"
)

// AuditHandler exposes the submission log to admins for anti-abuse review
type AuditHandler struct {
	submissions repository.SubmissionRepo
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(submissions repository.SubmissionRepo) *AuditHandler {
	return &AuditHandler{submissions: submissions}
}

// List handles GET /v1/admin/submissions
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	filter := repository.SubmissionFilter{
		ContestID:     q.Get("contest_id"),
		ChallengeID:   q.Get("challenge_id"),
		AccountID:     q.Get("account_id"),
		IdentityID:    q.Get("identity_id"),
		Status:        model.SubmissionStatus(q.Get("status")),
		SuspectedOnly: q.Get("suspected") == "1",
		Limit:         limit,
	}

	subs, err := h.submissions.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":       len(subs),
		"submissions": subs,
	})
}

// SuspectRequest is the request body for flagging a submission
type SuspectRequest struct {
	Suspected bool `json:"suspected"`
}

// SetSuspected handles PATCH /v1/admin/submissions/{id}/suspect
func (h *AuditHandler) SetSuspected(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req SuspectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	found, err := h.submissions.SetSuspected(r.Context(), id, req.Suspected)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "submission not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"suspected": req.Suspected})
}

// CompareFlag handles GET /v1/admin/submissions/compare?contest_id=&flag=.
// With per-identity derived flags, the same text showing up from two
// identities means the flag was shared.
func (h *AuditHandler) CompareFlag(w http.ResponseWriter, r *http.Request) {
	contestID := r.URL.Query().Get("contest_id")
	flag := r.URL.Query().Get("flag")
	if contestID == "" || flag == "" {
		writeError(w, http.StatusBadRequest, "missing 'contest_id' or 'flag' query parameter")
		return
	}

	subs, err := h.submissions.ListByFlag(r.Context(), contestID, flag)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"flag":        flag,
		"submissions": subs,
	})
}

package web

import (
	"net/http"
	"strconv"

	"gst-billing/internal/app"
	"gst-billing/internal/logging"
)

// submitFeedback handles POST /api/feedback.
func (h *Handler) submitFeedback(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var req struct {
		Kind    string `json:"kind" validate:"omitempty,max=20"`
		Message string `json:"message" validate:"required,max=2000"`
		Page    string `json:"page" validate:"omitempty,max=200"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !h.validateRequest(w, r, &req) {
		return
	}

	err := h.svc.SubmitFeedback(r.Context(), claims.UserID, app.FeedbackRequest{
		Kind:    req.Kind,
		Message: req.Message,
		Page:    req.Page,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	type response struct {
		Status string `json:"status"`
	}
	writeJSONStatus(w, http.StatusCreated, response{Status: "received"})
}

const (
	defaultLogLimit = 100
	maxLogLimit     = 1000
)

// recentLogs handles GET /api/logs. Serves the in-process ring buffer,
// newest first; ?level=error filters by level, ?limit=N caps the count.
func (h *Handler) recentLogs(w http.ResponseWriter, r *http.Request) {
	limit := defaultLogLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, r, "limit must be a positive integer", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		if n > maxLogLimit {
			n = maxLogLimit
		}
		limit = n
	}

	type response struct {
		Entries []logging.Entry `json:"entries"`
	}
	entries := h.recorder.Recent(r.URL.Query().Get("level"), limit)
	if entries == nil {
		entries = []logging.Entry{}
	}
	writeJSON(w, response{Entries: entries})
}

package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"rubjai/internal/core"
)

// handleListTransactions serves the web history view: the user's
// transactions inside the requested window, newest first.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userIDStr := strings.TrimSpace(q.Get("userId"))
	if userIDStr == "" {
		writeMessage(w, http.StatusBadRequest, "userId is required")
		return
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "userId must be an integer")
		return
	}

	year, month := parseWindowParams(q)
	window := core.DeriveWindow(s.now(), year, month)

	txns, err := s.txns.List(r.Context(), userID, window)
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed",
			"user_id", userID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": txns})
}

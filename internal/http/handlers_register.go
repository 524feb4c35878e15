package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"rubjai/internal/core"
)

type registerRequest struct {
	LineID  string `json:"lineId"`
	Name    string `json:"name"`
	IDToken string `json:"idToken"`
}

type registerResponse struct {
	Success   bool       `json:"success"`
	User      *core.User `json:"user,omitempty"`
	IsNewUser bool       `json:"isNewUser"`
	Error     string     `json:"error,omitempty"`
}

// handleRegister upserts a user from the LIFF login. When the request
// carries an ID token and verification is configured, identity comes
// from the verified claims rather than the caller-supplied fields.
// Failures come back as a structured {success:false, error} body so
// the mini-app can render a recoverable state.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, registerResponse{Error: "Invalid JSON"})
		return
	}

	lineID := strings.TrimSpace(req.LineID)
	name := strings.TrimSpace(req.Name)

	if req.IDToken != "" && s.tokens.Enabled() {
		profile, err := s.tokens.Verify(req.IDToken)
		if err != nil {
			slog.WarnContext(r.Context(), "ID token rejected", "error", err)
			writeJSON(w, http.StatusUnauthorized, registerResponse{Error: "Invalid ID token"})
			return
		}
		lineID = profile.LineID
		if profile.Name != "" {
			name = profile.Name
		}
	}

	result, err := s.registrar.Register(r.Context(), lineID, name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrMissingLineID) {
			status = http.StatusBadRequest
		} else {
			slog.ErrorContext(r.Context(), "Registration failed", "error", err)
		}
		writeJSON(w, status, registerResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, registerResponse{
		Success:   true,
		User:      result.User,
		IsNewUser: result.IsNewUser,
	})
}

// handleGetUser looks a user up by LINE ID for the mini-app profile
// view.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineID")

	user, err := s.users.FindUserByLineID(r.Context(), lineID)
	if err != nil {
		slog.ErrorContext(r.Context(), "User lookup failed", "line_id", lineID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to load user")
		return
	}
	if user == nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": user})
}

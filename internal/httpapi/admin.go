package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"songrank/internal/auth"
)

type loginRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	token, err := s.gate.Login(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid password"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not create session"})
		return
	}

	http.SetCookie(w, s.gate.Cookie(token))
	writeJSON(w, http.StatusOK, struct {
		Authenticated bool `json:"authenticated"`
	}{Authenticated: true})
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, s.gate.ClearCookie())
	writeJSON(w, http.StatusOK, struct {
		Authenticated bool `json:"authenticated"`
	}{Authenticated: false})
}

func (s *Server) handleAdminSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Authenticated bool `json:"authenticated"`
	}{Authenticated: s.gate.Authenticated(r)})
}

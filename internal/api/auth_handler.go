package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"gomitas-be/internal/logger"
	"gomitas-be/internal/utils"

	"go.uber.org/zap"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		respondError(w, http.StatusUnprocessableEntity, "name, email and a password of at least 8 characters are required")
		return
	}

	token, u, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondDomainError(r, w, err)
		return
	}

	setAccessCookie(w, token)
	respondData(w, http.StatusCreated, "registered", map[string]any{
		"token": token,
		"user":  userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role},
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, u, err := h.users.Login(r.Context(), strings.TrimSpace(strings.ToLower(req.Email)), req.Password)
	if err != nil {
		logger.FromCtx(r.Context()).Info("login rejected", zap.String("email", req.Email))
		respondDomainError(r, w, err)
		return
	}

	setAccessCookie(w, token)
	respondData(w, http.StatusOK, "logged in", map[string]any{
		"token": token,
		"user":  userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role},
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	clearAccessCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	id, _ := utils.GetUserIDFromContext(r.Context())
	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(r, w, err)
		return
	}

	respondData(w, http.StatusOK, "ok", userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
}

func setAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   24 * 60 * 60,
	})
}

func clearAccessCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

package handlers

import (
	"net/http"

	"scamshield/internal/domain/models"
	"scamshield/pkg/logger"
)

// AuthHandler proxies account endpoints to the backend. Account calls never
// fall back: there is no offline identity.
type AuthHandler struct {
	backend AuthBackend
	logger  *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(b AuthBackend, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		backend: b,
		logger:  log.WithComponent("auth-handler"),
	}
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.backend.Signup(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(h.logger, w, http.StatusCreated, user)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	token, err := h.backend.Login(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, token)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.backend.Me(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, user)
}

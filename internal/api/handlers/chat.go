package handlers

import (
	"net/http"

	"scamshield/internal/domain/models"
	"scamshield/internal/domain/services"
	"scamshield/pkg/logger"
)

// ChatHandler handles assistant endpoints
type ChatHandler struct {
	service *services.ChatService
	logger  *logger.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(s *services.ChatService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		service: s,
		logger:  log.WithComponent("chat-handler"),
	}
}

// Ask handles POST /api/v1/chat
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Language = requestLang(r, req.Language).String()

	resp, err := h.service.Ask(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, resp)
}

// Tips handles GET /api/v1/chat/tips
func (h *ChatHandler) Tips(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Tips(r.Context(), requestLang(r, ""))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, resp)
}

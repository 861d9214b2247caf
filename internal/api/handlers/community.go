package handlers

import (
	"net/http"
	"strconv"

	"scamshield/internal/domain/models"
	"scamshield/internal/domain/services"
	"scamshield/pkg/logger"
)

// CommunityHandler handles community feed endpoints
type CommunityHandler struct {
	service *services.CommunityService
	logger  *logger.Logger
}

// NewCommunityHandler creates a new community handler
func NewCommunityHandler(s *services.CommunityService, log *logger.Logger) *CommunityHandler {
	return &CommunityHandler{
		service: s,
		logger:  log.WithComponent("community-handler"),
	}
}

// Submit handles POST /api/v1/community/report
func (h *CommunityHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.CommunityReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Language = requestLang(r, req.Language).String()

	report, err := h.service.Submit(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	status := http.StatusCreated
	if report.Local {
		status = http.StatusAccepted
	}
	respondJSON(h.logger, w, status, report)
}

// List handles GET /api/v1/community/reports?language=&limit=
func (h *CommunityHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := models.CommunityDefaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	reports, err := h.service.Feed(r.Context(), requestLang(r, ""), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if reports == nil {
		reports = []models.CommunityReport{}
	}
	respondJSON(h.logger, w, http.StatusOK, reports)
}

// Warning handles GET /api/v1/community/warning
func (h *CommunityHandler) Warning(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, h.service.Warning(requestLang(r, "")))
}

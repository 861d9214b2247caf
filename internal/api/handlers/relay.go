package handlers

import (
	"net/http"
	"strconv"

	"scamshield/internal/domain/models"
	"scamshield/internal/domain/services"
	"scamshield/pkg/logger"
)

// RelayHandler handles scam report and feedback endpoints
type RelayHandler struct {
	service *services.RelayService
	logger  *logger.Logger
}

// NewRelayHandler creates a new relay handler
func NewRelayHandler(s *services.RelayService, log *logger.Logger) *RelayHandler {
	return &RelayHandler{
		service: s,
		logger:  log.WithComponent("relay-handler"),
	}
}

// SubmitReport handles POST /api/v1/report
func (h *RelayHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var req models.ReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	report, err := h.service.SubmitReport(r.Context(), req, requestLang(r, ""))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(h.logger, w, submissionStatus(report.Queued), report)
}

// Reports handles GET /api/v1/reports?status_filter=&limit=
func (h *RelayHandler) Reports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	reports, err := h.service.Reports(r.Context(), q.Get("status_filter"), limit, requestLang(r, ""))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}
	respondJSON(h.logger, w, http.StatusOK, reports)
}

// SubmitFeedback handles POST /api/v1/feedback
func (h *RelayHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req models.FeedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	fb, err := h.service.SubmitFeedback(r.Context(), req, requestLang(r, ""))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(h.logger, w, submissionStatus(fb.Queued), fb)
}

// FeedbackStats handles GET /api/v1/feedback/stats
func (h *RelayHandler) FeedbackStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.FeedbackStats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, stats)
}

func submissionStatus(queued bool) int {
	if queued {
		return http.StatusAccepted
	}
	return http.StatusCreated
}

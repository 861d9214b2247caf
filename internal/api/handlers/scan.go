package handlers

import (
	"errors"
	"io"
	"net/http"

	apimiddleware "scamshield/internal/api/middleware"
	"scamshield/internal/domain/models"
	"scamshield/internal/domain/services"
	"scamshield/pkg/logger"
)

// multipartOverhead is allowed on top of the file size limit for form
// fields and part headers
const multipartOverhead = 1 << 20

// ScanHandler handles scan endpoints
type ScanHandler struct {
	service *services.ScanService
	logger  *logger.Logger
}

// NewScanHandler creates a new scan handler
func NewScanHandler(s *services.ScanService, log *logger.Logger) *ScanHandler {
	return &ScanHandler{
		service: s,
		logger:  log.WithComponent("scan-handler"),
	}
}

// ScanRequest is the body of URL and text scans
type ScanRequest struct {
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

// URL handles POST /api/v1/scan/url
func (h *ScanHandler) URL(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.service.ScanURL(r.Context(), req.Content, requestLang(r, req.Language))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, result)
}

// URLBatch handles POST /api/v1/scan/url/batch
func (h *ScanHandler) URLBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchURLScanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.service.ScanURLBatch(r.Context(), req.URLs, requestLang(r, req.Language))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, result)
}

// Text handles POST /api/v1/scan/text
func (h *ScanHandler) Text(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.service.ScanText(r.Context(), req.Content, requestLang(r, req.Language))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, result)
}

// Screenshot handles POST /api/v1/scan/screenshot (multipart "file", optional "hint")
func (h *ScanHandler) Screenshot(w http.ResponseWriter, r *http.Request) {
	up, ok := h.readUpload(w, r, services.MaxImageSize)
	if !ok {
		return
	}
	result, err := h.service.ScanScreenshot(r.Context(), up, requestLang(r, r.FormValue("language")))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, result)
}

// Audio handles POST /api/v1/scan/audio (multipart "file", optional "hint")
func (h *ScanHandler) Audio(w http.ResponseWriter, r *http.Request) {
	up, ok := h.readUpload(w, r, services.MaxAudioSize)
	if !ok {
		return
	}
	result, err := h.service.ScanAudio(r.Context(), up, requestLang(r, r.FormValue("language")))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, result)
}

func (h *ScanHandler) readUpload(w http.ResponseWriter, r *http.Request, maxSize int64) (models.Upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxSize + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apimiddleware.WriteError(w, http.StatusRequestEntityTooLarge, apimiddleware.ErrorTypeValidation, "file too large")
			return models.Upload{}, false
		}
		apimiddleware.WriteError(w, http.StatusBadRequest, apimiddleware.ErrorTypeValidation, "expected a multipart form with a file field")
		return models.Upload{}, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apimiddleware.WriteError(w, http.StatusBadRequest, apimiddleware.ErrorTypeValidation, "file is required")
		return models.Upload{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Debug().Err(err).Msg("failed to read upload")
		apimiddleware.WriteError(w, http.StatusBadRequest, apimiddleware.ErrorTypeValidation, "failed to read file")
		return models.Upload{}, false
	}

	return models.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
		Hint:        r.FormValue("hint"),
	}, true
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apimiddleware "scamshield/internal/api/middleware"
	"scamshield/internal/domain/services"
	"scamshield/internal/i18n"
	"scamshield/internal/infrastructure/backend"
	"scamshield/pkg/logger"
)

// respondJSON sends a JSON response
func respondJSON(log *logger.Logger, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// respondError maps err onto the error envelope. Validation failures are
// 400s, backend failures keep their kind, anything else is a 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	if errors.Is(err, services.ErrInvalidInput) {
		apimiddleware.WriteError(w, http.StatusBadRequest, apimiddleware.ErrorTypeValidation, err.Error())
		return
	}
	if apiErr, ok := backend.AsAPIError(err); ok {
		status := statusForKind(apiErr)
		if status >= http.StatusInternalServerError {
			log.Warn().Err(err).Msg("backend request failed")
		}
		apimiddleware.WriteError(w, status, string(apiErr.Kind), apiErr.UserMessage())
		return
	}
	log.Error().Err(err).Msg("request failed")
	apimiddleware.WriteError(w, http.StatusInternalServerError, apimiddleware.ErrorTypeInternal, "internal server error")
}

func statusForKind(e *backend.APIError) int {
	switch e.Kind {
	case backend.KindClient:
		if e.StatusCode >= 400 && e.StatusCode < 500 {
			return e.StatusCode
		}
		return http.StatusBadRequest
	case backend.KindRateLimited:
		return http.StatusTooManyRequests
	case backend.KindTimeout:
		return http.StatusGatewayTimeout
	case backend.KindNetwork:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// maxJSONBody bounds JSON request bodies. The largest legitimate body is a
// full URL batch.
const maxJSONBody = 1 << 20

// decodeJSON reads a JSON body, answering 400 itself on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apimiddleware.WriteError(w, http.StatusRequestEntityTooLarge, apimiddleware.ErrorTypeValidation, "request body too large")
			return false
		}
		logger.FromContext(r.Context()).Debug().Err(err).Msg("invalid request body")
		apimiddleware.WriteError(w, http.StatusBadRequest, apimiddleware.ErrorTypeValidation, "invalid request body")
		return false
	}
	return true
}

// requestLang picks the response language from an explicit value, the
// language query parameter or Accept-Language, in that order
func requestLang(r *http.Request, explicit string) i18n.Lang {
	return i18n.Negotiate(explicit, r.URL.Query().Get("language"), r.Header.Get("Accept-Language"))
}

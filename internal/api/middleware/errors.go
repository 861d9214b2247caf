package middleware

import (
	"encoding/json"
	"net/http"
)

// Error types reported by the gateway itself
const (
	ErrorTypeValidation   = "validation_error"
	ErrorTypeUnauthorized = "unauthorized"
	ErrorTypeRateLimited  = "rate_limited"
	ErrorTypeNotFound     = "not_found"
	ErrorTypeInternal     = "internal_error"
)

// ErrorBody is the payload of every error response
type ErrorBody struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail describes what went wrong
type ErrorDetail struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, status int, errType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorBody{
		Error: ErrorDetail{Type: errType, Message: message, StatusCode: status},
	})
}

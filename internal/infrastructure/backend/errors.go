package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed backend call
type ErrorKind string

const (
	KindTimeout     ErrorKind = "timeout"
	KindNetwork     ErrorKind = "network"
	KindRateLimited ErrorKind = "rate_limited"
	KindClient      ErrorKind = "client_error"
	KindServer      ErrorKind = "server_error"
	KindUnknown     ErrorKind = "unknown"
)

var userMessages = map[ErrorKind]string{
	KindTimeout:     "The request timed out. Please try again.",
	KindNetwork:     "Unable to connect to the server. Please check your internet connection.",
	KindRateLimited: "Too many requests. Please wait a moment and try again.",
	KindClient:      "The request was invalid.",
	KindServer:      "Server error. Please try again later.",
	KindUnknown:     "An unexpected error occurred.",
}

// UserMessage returns the fixed user-facing text for a kind
func (k ErrorKind) UserMessage() string {
	if msg, ok := userMessages[k]; ok {
		return msg
	}
	return userMessages[KindUnknown]
}

// APIError is a classified backend failure
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Detail     string
	Endpoint   string

	cause error
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "backend %s", e.Kind)
	if e.Endpoint != "" {
		fmt.Fprintf(&b, " on %s", e.Endpoint)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	} else if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// FallbackEligible reports whether the caller may answer locally or queue
// the submission instead of surfacing the error
func (e *APIError) FallbackEligible() bool {
	switch e.Kind {
	case KindNetwork, KindTimeout, KindServer, KindRateLimited:
		return true
	}
	return false
}

// UserMessage is the message shown to end users. Client errors carry the
// backend's own detail since it describes what was wrong with the input.
func (e *APIError) UserMessage() string {
	if e.Kind == KindClient && e.Detail != "" {
		return e.Detail
	}
	return e.Kind.UserMessage()
}

// IsFallbackEligible reports whether err is an APIError that permits local
// fallback
func IsFallbackEligible(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.FallbackEligible()
}

// AsAPIError extracts the APIError from err
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindForStatus maps an HTTP status code to an error kind
func KindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 500:
		return KindServer
	case status >= 400:
		return KindClient
	default:
		return KindUnknown
	}
}

// classifyTransport turns a transport-level error into an APIError
func classifyTransport(endpoint string, err error) *APIError {
	kind := KindUnknown
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	case errors.Is(err, context.Canceled):
		kind = KindUnknown
	case errors.As(err, &netErr):
		kind = KindNetwork
	}
	return &APIError{
		Kind:     kind,
		Message:  kind.UserMessage(),
		Endpoint: endpoint,
		cause:    err,
	}
}

// errorBody covers both error envelopes the backend emits
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
	Error  *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// classifyStatus builds an APIError from a non-2xx response body
func classifyStatus(endpoint string, status int, body []byte) *APIError {
	kind := KindForStatus(status)
	return &APIError{
		Kind:       kind,
		StatusCode: status,
		Message:    kind.UserMessage(),
		Detail:     parseErrorDetail(body),
		Endpoint:   endpoint,
	}
}

func parseErrorDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Error != nil && eb.Error.Message != "" {
		return eb.Error.Message
	}
	if len(eb.Detail) == 0 {
		return ""
	}
	// detail is a string for HTTPException and a list for validation errors
	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(eb.Detail, &items); err == nil && len(items) > 0 {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

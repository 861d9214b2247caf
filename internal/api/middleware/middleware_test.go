package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"

	"scamshield/internal/config"
	"scamshield/internal/infrastructure/backend"
	"scamshield/internal/infrastructure/cache"
	"scamshield/pkg/logger"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestBearerToken(t *testing.T) {
	var seen string
	h := BearerToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = backend.TokenFromContext(r.Context())
	}))

	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer  xyz ", "xyz"},
		{"Basic dXNlcjpwYXNz", ""},
		{"", ""},
	}
	for _, tt := range tests {
		seen = ""
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
		if seen != tt.want {
			t.Errorf("Authorization %q: token = %q, want %q", tt.header, seen, tt.want)
		}
	}
}

func TestRequireToken(t *testing.T) {
	h := RequireToken(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var body ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Success || body.Error.Type != ErrorTypeUnauthorized || body.Error.StatusCode != http.StatusUnauthorized {
		t.Errorf("body = %+v", body)
	}

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	req.Header.Set("Authorization", "Bearer t")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status with token = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/reports", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	store := cache.NewMemory()
	h := RateLimiter(store, config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2}, logger.NewNop())(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/scan/url", nil)
		req.RemoteAddr = "10.1.1.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Header().Get("X-RateLimit-Limit") != "2" {
			t.Errorf("request %d: limit header = %q", i, rec.Header().Get("X-RateLimit-Limit"))
		}
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	// another client has its own budget
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan/url", nil)
	req.RemoteAddr = "10.2.2.2:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("second client status = %d", rec.Code)
	}
}

func TestLoggerScopesRequest(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.Config{Level: "debug", Format: "json", Output: &buf})

	h := middleware.RequestID(Logger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info().Msg("inside handler")
		w.WriteHeader(http.StatusTeapot)
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scan/url?url=secret", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rec.Code)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("log lines = %q", lines)
	}
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("not JSON: %s", line)
		}
		if entry["request_id"] == nil || entry["request_id"] == "" {
			t.Errorf("missing request_id: %s", line)
		}
		if entry["path"] != "/api/v1/scan/url" {
			t.Errorf("path = %v", entry["path"])
		}
	}
	if strings.Contains(buf.String(), "secret") {
		t.Error("query string leaked into the log")
	}
	if !strings.Contains(lines[1], `"status":418`) {
		t.Errorf("access line = %s", lines[1])
	}
}

func TestLoggerQuietHealth(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.Config{Level: "info", Format: "json", Output: &buf})
	h := Logger(base)(http.HandlerFunc(okHandler))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	if buf.Len() != 0 {
		t.Errorf("health probe logged at info: %s", buf.String())
	}
}

func TestRateLimiterIgnoresRotatingTokens(t *testing.T) {
	store := cache.NewMemory()
	h := RateLimiter(store, config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2}, logger.NewNop())(http.HandlerFunc(okHandler))

	tests := []struct {
		token, addr string
		want        int
	}{
		{"first", "10.3.3.3:1000", http.StatusOK},
		{"second", "10.3.3.3:1001", http.StatusOK},
		{"third", "10.3.3.3:1002", http.StatusTooManyRequests},
		{"", "10.3.3.3:1003", http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/scan/url", nil)
		req.RemoteAddr = tt.addr
		if tt.token != "" {
			req.Header.Set("Authorization", "Bearer "+tt.token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("token %q from %s: status = %d, want %d", tt.token, tt.addr, rec.Code, tt.want)
		}
	}
}

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"scamshield/internal/config"
	"scamshield/internal/domain/models"
	"scamshield/pkg/logger"
)

func newTestClient(t *testing.T, h http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := config.BackendConfig{
		BaseURL:       srv.URL,
		Timeout:       2 * time.Second,
		UploadTimeout: 2 * time.Second,
		HealthTimeout: 200 * time.Millisecond,
	}
	return NewClient(cfg, logger.NewNop(), opts...)
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recordingObserver) ObserveBackendRequest(endpoint, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, endpoint+":"+outcome)
}

func TestClientUsesOtelTransport(t *testing.T) {
	c := NewClient(config.BackendConfig{}, logger.NewNop())
	if _, ok := c.httpClient.Transport.(*otelhttp.Transport); !ok {
		t.Errorf("transport is %T, want *otelhttp.Transport", c.httpClient.Transport)
	}
	if c.BaseURL() != config.LocalBackendURL {
		t.Errorf("base url = %q, want %q", c.BaseURL(), config.LocalBackendURL)
	}
}

func TestScanURL(t *testing.T) {
	obs := &recordingObserver{}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != PathScanURL {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer user-token" {
			t.Errorf("authorization = %q", got)
		}
		var req models.ScanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(models.RemoteScanResponse{
			InputType: "url",
			InputText: req.Content,
			RiskScore: 82,
			Label:     "Phishing",
			Reasons:   []string{"Brand in subdomain"},
		})
	}), WithObserver(obs))

	ctx := WithToken(context.Background(), "user-token")
	resp, err := c.ScanURL(ctx, "http://paypal.secure-login.tk")
	if err != nil {
		t.Fatalf("ScanURL: %v", err)
	}
	if resp.RiskScore != 82 || resp.Label != "Phishing" || resp.InputText != "http://paypal.secure-login.tk" {
		t.Errorf("unexpected response %+v", resp)
	}
	if len(obs.outcomes) != 1 || obs.outcomes[0] != PathScanURL+":ok" {
		t.Errorf("observed %q", obs.outcomes)
	}
}

func TestScanScreenshotMultipart(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if header.Filename != "shot.png" || string(data) != "png-bytes" {
			t.Errorf("got file %q with %q", header.Filename, data)
		}
		if ct := header.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("part content type = %q", ct)
		}
		json.NewEncoder(w).Encode(models.RemoteScanResponse{InputType: "screenshot", ExtractedText: "win a prize"})
	}))

	resp, err := c.ScanScreenshot(context.Background(), models.Upload{
		Filename:    "shot.png",
		ContentType: "image/png",
		Data:        []byte("png-bytes"),
	})
	if err != nil {
		t.Fatalf("ScanScreenshot: %v", err)
	}
	if resp.ExtractedText != "win a prize" {
		t.Errorf("extracted text = %q", resp.ExtractedText)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		kind     ErrorKind
		fallback bool
		detail   string
	}{
		{"detail string", 400, `{"detail":"Invalid URL format"}`, KindClient, false, "Invalid URL format"},
		{"validation list", 422, `{"detail":[{"msg":"field required"},{"msg":"too short"}]}`, KindClient, false, "field required; too short"},
		{"error envelope", 401, `{"success":false,"error":{"message":"Not authenticated","type":"auth"}}`, KindClient, false, "Not authenticated"},
		{"rate limited", 429, `{"detail":"slow down"}`, KindRateLimited, true, "slow down"},
		{"server error", 503, `oops`, KindServer, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))

			_, err := c.ScanText(context.Background(), "hello")
			apiErr, ok := AsAPIError(err)
			if !ok {
				t.Fatalf("error %v is not an APIError", err)
			}
			if apiErr.Kind != tt.kind || apiErr.StatusCode != tt.status {
				t.Errorf("kind = %s status = %d, want %s %d", apiErr.Kind, apiErr.StatusCode, tt.kind, tt.status)
			}
			if apiErr.FallbackEligible() != tt.fallback || IsFallbackEligible(err) != tt.fallback {
				t.Errorf("fallback eligible = %v, want %v", apiErr.FallbackEligible(), tt.fallback)
			}
			if apiErr.Detail != tt.detail {
				t.Errorf("detail = %q, want %q", apiErr.Detail, tt.detail)
			}
		})
	}
}

func TestNetworkErrorIsFallbackEligible(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := NewClient(config.BackendConfig{BaseURL: addr, Timeout: time.Second}, logger.NewNop())
	_, err := c.ScanURL(context.Background(), "example.com")
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("error %v is not an APIError", err)
	}
	if apiErr.Kind != KindNetwork || !apiErr.FallbackEligible() {
		t.Errorf("kind = %s, want network and fallback eligible", apiErr.Kind)
	}
	if apiErr.UserMessage() != KindNetwork.UserMessage() {
		t.Errorf("user message = %q", apiErr.UserMessage())
	}
}

func TestTimeoutIsClassified(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer close(release)

	c.timeout = 50 * time.Millisecond
	_, err := c.ScanText(context.Background(), "hello")
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("error %v is not an APIError", err)
	}
	if apiErr.Kind != KindTimeout {
		t.Errorf("kind = %s, want timeout", apiErr.Kind)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error does not wrap DeadlineExceeded: %v", err)
	}
}

func TestOfflineNeverDials(t *testing.T) {
	var hits int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }))
	c.offline = true

	_, err := c.ScanURL(context.Background(), "example.com")
	if !IsFallbackEligible(err) {
		t.Errorf("offline error %v should be fallback eligible", err)
	}
	if hits != 0 {
		t.Errorf("backend was called %d times", hits)
	}
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"healthy","version":"1.2.0"}`)
	}))
	h := c.Health(context.Background())
	if !h.Reachable || h.Status != "healthy" || h.Version != "1.2.0" {
		t.Errorf("unexpected health %+v", h)
	}

	down := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	h = down.Health(context.Background())
	if h.Reachable || h.Status != "unhealthy" {
		t.Errorf("unexpected health %+v", h)
	}
}

func TestReportsQuery(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathReports {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("status_filter") != "pending" || q.Get("limit") != "10" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		io.WriteString(w, `[{"id":1,"input_type":"text","input_text":"hello there","status":"pending","created_at":"2024-01-02T03:04:05Z"}]`)
	}))
	reports, err := c.Reports(context.Background(), "pending", 10)
	if err != nil {
		t.Fatalf("Reports: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != 1 || !strings.HasPrefix(reports[0].InputText, "hello") {
		t.Errorf("reports = %+v", reports)
	}
}

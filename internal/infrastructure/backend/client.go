package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"scamshield/internal/config"
	"scamshield/pkg/logger"
)

// maxResponseBytes caps how much of a backend response body is read
const maxResponseBytes = 8 << 20

// RequestObserver receives the duration and outcome of every backend call
type RequestObserver interface {
	ObserveBackendRequest(endpoint, outcome string, d time.Duration)
}

type tokenKey struct{}

// WithToken attaches a bearer token to ctx; it overrides the configured
// API token for calls made with that context
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token set by WithToken
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client talks to the remote scan, auth, chat and report API
type Client struct {
	baseURL       string
	token         string
	offline       bool
	timeout       time.Duration
	uploadTimeout time.Duration
	healthTimeout time.Duration

	httpClient *http.Client
	observer   RequestObserver
	logger     *logger.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithObserver records request metrics through o
func WithObserver(o RequestObserver) Option {
	return func(c *Client) { c.observer = o }
}

// WithHTTPClient replaces the instrumented default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a backend client from configuration
func NewClient(cfg config.BackendConfig, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:       cfg.ResolvedURL(),
		token:         cfg.APIToken,
		offline:       cfg.Offline,
		timeout:       cfg.Timeout,
		uploadTimeout: cfg.UploadTimeout,
		healthTimeout: cfg.HealthTimeout,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: log.WithComponent("backend-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved backend URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Offline reports whether the client never dials the backend
func (c *Client) Offline() bool {
	return c.offline
}

type call struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	timeout     time.Duration
}

func (c *Client) do(ctx context.Context, req call, out any) error {
	if c.offline {
		return &APIError{
			Kind:     KindNetwork,
			Message:  KindNetwork.UserMessage(),
			Detail:   "offline mode",
			Endpoint: req.path,
		}
	}

	if req.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.timeout)
		defer cancel()
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, req.body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", req.path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	token := TokenFromContext(ctx)
	if token == "" {
		token = c.token
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		apiErr := classifyTransport(req.path, err)
		c.observe(req.path, string(apiErr.Kind), start)
		c.logger.Debug().Err(err).Str("endpoint", req.path).Str("kind", string(apiErr.Kind)).Msg("backend request failed")
		return apiErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		apiErr := classifyTransport(req.path, err)
		c.observe(req.path, string(apiErr.Kind), start)
		return apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := classifyStatus(req.path, resp.StatusCode, body)
		c.observe(req.path, string(apiErr.Kind), start)
		c.logger.Debug().
			Str("endpoint", req.path).
			Int("status", resp.StatusCode).
			Str("detail", apiErr.Detail).
			Msg("backend returned error")
		return apiErr
	}
	c.observe(req.path, "ok", start)

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{
			Kind:       KindUnknown,
			StatusCode: resp.StatusCode,
			Message:    KindUnknown.UserMessage(),
			Detail:     "malformed response body",
			Endpoint:   req.path,
			cause:      err,
		}
	}
	return nil
}

func (c *Client) observe(endpoint, outcome string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveBackendRequest(endpoint, outcome, time.Since(start))
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, call{method: http.MethodGet, path: path, query: query, timeout: c.timeout}, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", path, err)
	}
	return c.do(ctx, call{
		method:      http.MethodPost,
		path:        path,
		body:        bytes.NewReader(data),
		contentType: "application/json",
		timeout:     c.timeout,
	}, out)
}

func (c *Client) postFile(ctx context.Context, path, filename, contentType string, data []byte, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("failed to write multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to close multipart body: %w", err)
	}

	return c.do(ctx, call{
		method:      http.MethodPost,
		path:        path,
		body:        &buf,
		contentType: mw.FormDataContentType(),
		timeout:     c.uploadTimeout,
	}, out)
}

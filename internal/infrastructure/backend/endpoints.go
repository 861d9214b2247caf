package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"scamshield/internal/domain/models"
)

// Backend paths
const (
	PathScanURL          = "/scan/url"
	PathScanText         = "/scan/text"
	PathScanScreenshot   = "/scan/screenshot"
	PathScanAudio        = "/scan/audio"
	PathSignup           = "/auth/signup"
	PathLogin            = "/auth/login"
	PathMe               = "/auth/me"
	PathChat             = "/chat"
	PathChatTips         = "/chat/tips"
	PathCommunityReport  = "/community/report"
	PathCommunityReports = "/community/reports"
	PathReport           = "/report"
	PathReports          = "/reports"
	PathFeedback         = "/feedback"
	PathFeedbackStats    = "/feedback/stats"
	PathHealth           = "/health"
)

// ScanURL submits a URL for analysis
func (c *Client) ScanURL(ctx context.Context, rawURL string) (*models.RemoteScanResponse, error) {
	var out models.RemoteScanResponse
	if err := c.postJSON(ctx, PathScanURL, models.ScanRequest{Content: rawURL}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScanText submits message text for analysis
func (c *Client) ScanText(ctx context.Context, text string) (*models.RemoteScanResponse, error) {
	var out models.RemoteScanResponse
	if err := c.postJSON(ctx, PathScanText, models.ScanRequest{Content: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScanScreenshot uploads an image for OCR and analysis
func (c *Client) ScanScreenshot(ctx context.Context, up models.Upload) (*models.RemoteScanResponse, error) {
	var out models.RemoteScanResponse
	if err := c.postFile(ctx, PathScanScreenshot, up.Filename, up.ContentType, up.Data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScanAudio uploads a call recording for transcription and analysis
func (c *Client) ScanAudio(ctx context.Context, up models.Upload) (*models.RemoteScanResponse, error) {
	var out models.RemoteScanResponse
	if err := c.postFile(ctx, PathScanAudio, up.Filename, up.ContentType, up.Data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup registers a new account
func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	var out models.User
	if err := c.postJSON(ctx, PathSignup, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.Token, error) {
	var out models.Token
	if err := c.postJSON(ctx, PathLogin, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the user the bearer token belongs to
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.getJSON(ctx, PathMe, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chat sends one user turn to the assistant
func (c *Client) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	var out models.ChatResponse
	if err := c.postJSON(ctx, PathChat, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tips fetches the safety tips list
func (c *Client) Tips(ctx context.Context, language string) (*models.TipsResponse, error) {
	var out models.TipsResponse
	if err := c.getJSON(ctx, PathChatTips, url.Values{"language": {language}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitCommunityReport shares a suspicious URL with the community feed
func (c *Client) SubmitCommunityReport(ctx context.Context, req models.CommunityReportRequest) (*models.CommunityReport, error) {
	var out models.CommunityReport
	if err := c.postJSON(ctx, PathCommunityReport, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CommunityReports lists recent community reports, newest first
func (c *Client) CommunityReports(ctx context.Context, language string, limit int) ([]models.CommunityReport, error) {
	q := url.Values{
		"language": {language},
		"limit":    {strconv.Itoa(limit)},
	}
	var out []models.CommunityReport
	if err := c.getJSON(ctx, PathCommunityReports, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitReport files a scam report
func (c *Client) SubmitReport(ctx context.Context, req models.ReportRequest) (*models.Report, error) {
	var out models.Report
	if err := c.postJSON(ctx, PathReport, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reports lists scam reports, optionally filtered by status
func (c *Client) Reports(ctx context.Context, status string, limit int) ([]models.Report, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if status != "" {
		q.Set("status_filter", status)
	}
	var out []models.Report
	if err := c.getJSON(ctx, PathReports, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitFeedback reports whether a verdict was right
func (c *Client) SubmitFeedback(ctx context.Context, req models.FeedbackRequest) (*models.Feedback, error) {
	var out models.Feedback
	if err := c.postJSON(ctx, PathFeedback, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FeedbackStats returns aggregate feedback counts
func (c *Client) FeedbackStats(ctx context.Context) (*models.FeedbackStats, error) {
	var out models.FeedbackStats
	if err := c.getJSON(ctx, PathFeedbackStats, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health probes the backend with the short health timeout. An unreachable
// backend is reported in the result, not as an error.
func (c *Client) Health(ctx context.Context) *models.BackendHealth {
	start := time.Now()
	var body struct {
		Status   string            `json:"status"`
		Version  string            `json:"version"`
		Services map[string]string `json:"services"`
	}
	err := c.do(ctx, call{method: http.MethodGet, path: PathHealth, timeout: c.healthTimeout}, &body)

	health := &models.BackendHealth{
		Status:    body.Status,
		Version:   body.Version,
		Services:  body.Services,
		Reachable: err == nil,
		LatencyMS: time.Since(start).Milliseconds(),
		CheckedAt: time.Now().UTC(),
	}
	if err != nil {
		health.Status = "unreachable"
		if apiErr, ok := AsAPIError(err); ok && apiErr.StatusCode != 0 {
			health.Status = "unhealthy"
		}
	} else if health.Status == "" {
		health.Status = "healthy"
	}
	return health
}

package services

import (
	"context"
	"net/http"
	"sync"

	"scamshield/internal/domain/models"
	"scamshield/internal/infrastructure/backend"
	"scamshield/pkg/logger"
)

var testLogger = logger.NewNop()

var (
	errNetwork = &backend.APIError{Kind: backend.KindNetwork, Message: backend.KindNetwork.UserMessage()}
	errServer  = &backend.APIError{Kind: backend.KindServer, StatusCode: http.StatusBadGateway}
	errClient  = &backend.APIError{Kind: backend.KindClient, StatusCode: http.StatusBadRequest, Detail: "bad input"}
)

// fakeBackend answers every backend call with the configured response or
// fails all of them with err
type fakeBackend struct {
	mu    sync.Mutex
	err   error
	calls map[string]int

	scan      *models.RemoteScanResponse
	chat      *models.ChatResponse
	tips      *models.TipsResponse
	community []models.CommunityReport
	reports   []models.Report
	stats     *models.FeedbackStats

	submittedCommunity []models.CommunityReportRequest
	submittedReports   []models.ReportRequest
	submittedFeedback  []models.FeedbackRequest
	lastScanURL        string
	lastChat           models.ChatRequest
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		calls: make(map[string]int),
		scan: &models.RemoteScanResponse{
			InputType:    "url",
			RiskScore:    72,
			Label:        "Phishing",
			Reasons:      []string{"Lookalike domain"},
			Suggestions:  []string{"Do not log in"},
			ModelVersion: "v2",
		},
	}
}

func (f *fakeBackend) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeBackend) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.err
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) scanResponse() *models.RemoteScanResponse {
	cp := *f.scan
	return &cp
}

func (f *fakeBackend) ScanURL(_ context.Context, rawURL string) (*models.RemoteScanResponse, error) {
	if err := f.record("scan_url"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.lastScanURL = rawURL
	f.mu.Unlock()
	return f.scanResponse(), nil
}

func (f *fakeBackend) ScanText(context.Context, string) (*models.RemoteScanResponse, error) {
	if err := f.record("scan_text"); err != nil {
		return nil, err
	}
	return f.scanResponse(), nil
}

func (f *fakeBackend) ScanScreenshot(context.Context, models.Upload) (*models.RemoteScanResponse, error) {
	if err := f.record("scan_screenshot"); err != nil {
		return nil, err
	}
	return f.scanResponse(), nil
}

func (f *fakeBackend) ScanAudio(context.Context, models.Upload) (*models.RemoteScanResponse, error) {
	if err := f.record("scan_audio"); err != nil {
		return nil, err
	}
	return f.scanResponse(), nil
}

func (f *fakeBackend) Chat(_ context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if err := f.record("chat"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.lastChat = req
	f.mu.Unlock()
	resp := *f.chat
	return &resp, nil
}

func (f *fakeBackend) Tips(context.Context, string) (*models.TipsResponse, error) {
	if err := f.record("tips"); err != nil {
		return nil, err
	}
	return f.tips, nil
}

func (f *fakeBackend) SubmitCommunityReport(_ context.Context, req models.CommunityReportRequest) (*models.CommunityReport, error) {
	if err := f.record("community_submit"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submittedCommunity = append(f.submittedCommunity, req)
	return &models.CommunityReport{
		ID:             "CR-000001",
		MaskedURL:      MaskURL(req.URLText),
		ThreatCategory: req.ThreatCategory,
		Language:       req.Language,
	}, nil
}

func (f *fakeBackend) CommunityReports(context.Context, string, int) ([]models.CommunityReport, error) {
	if err := f.record("community_feed"); err != nil {
		return nil, err
	}
	return f.community, nil
}

func (f *fakeBackend) SubmitReport(_ context.Context, req models.ReportRequest) (*models.Report, error) {
	if err := f.record("report_submit"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submittedReports = append(f.submittedReports, req)
	return &models.Report{ID: 1, InputType: string(req.InputType), InputText: req.InputText, Status: "pending"}, nil
}

func (f *fakeBackend) Reports(context.Context, string, int) ([]models.Report, error) {
	if err := f.record("reports"); err != nil {
		return nil, err
	}
	return f.reports, nil
}

func (f *fakeBackend) SubmitFeedback(_ context.Context, req models.FeedbackRequest) (*models.Feedback, error) {
	if err := f.record("feedback_submit"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submittedFeedback = append(f.submittedFeedback, req)
	return &models.Feedback{ID: 7, FeedbackType: req.FeedbackType, Status: "pending"}, nil
}

func (f *fakeBackend) FeedbackStats(context.Context) (*models.FeedbackStats, error) {
	if err := f.record("feedback_stats"); err != nil {
		return nil, err
	}
	return f.stats, nil
}

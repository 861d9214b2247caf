package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scamshield/internal/domain/models"
	"scamshield/internal/i18n"
	"scamshield/internal/infrastructure/backend"
)

// run executes scamscan with args and returns what it printed
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestScanURLOffline(t *testing.T) {
	out, _, err := run(t, "", "--offline", "scan", "url", "http://192.168.1.1/verify-account")
	if err != nil {
		t.Fatalf("scan url: %v", err)
	}
	for _, want := range []string{"70/100", string(models.RiskTierHighRisk), "Host: 192.168.1.1", i18n.T(i18n.English, "notice_local_analysis")} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestScanURLRemoteJSON(t *testing.T) {
	var got models.ScanRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != backend.PathScanURL {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"input_type":"url","risk_score":88,"label":"Phishing","is_safe":false,"reasons":["Lookalike domain"],"suggestions":["Do not log in"],"model_version":"v3"}`)
	}))
	defer srv.Close()

	out, _, err := run(t, "", "--backend", srv.URL, "--json", "scan", "url", "paypal.secure-login.tk")
	if err != nil {
		t.Fatalf("scan url: %v", err)
	}
	var result models.ScanResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if result.RiskScore != 88 || result.Source != models.ScanSourceRemote || result.Tier != models.RiskTierHighRisk {
		t.Errorf("result = %+v", result)
	}
	if got.Content != "paypal.secure-login.tk" {
		t.Errorf("backend got content %q", got.Content)
	}
}

func TestScanURLBatchOffline(t *testing.T) {
	out, _, err := run(t, "", "--offline", "scan", "url", "google.com", "http://10.0.0.1/login")
	if err != nil {
		t.Fatalf("scan url batch: %v", err)
	}
	if !strings.Contains(out, "2 scanned: 1 high risk, 0 suspicious, 1 safe") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestScanTextFromStdin(t *testing.T) {
	msg := "URGENT: your KYC is pending, bank account will be suspended. Call +91 98765 43210"
	out, _, err := run(t, msg, "--offline", "scan", "text", "-")
	if err != nil {
		t.Fatalf("scan text: %v", err)
	}
	if !strings.Contains(out, "55/100") || !strings.Contains(out, "KYC/Bank Fraud") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestScanScreenshotWithHint(t *testing.T) {
	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "message.png")
	if err := os.WriteFile(path, img.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "", "--offline", "scan", "screenshot", "--hint", "URGENT: your KYC is pending, bank account will be suspended", path)
	if err != nil {
		t.Fatalf("scan screenshot: %v", err)
	}
	if !strings.Contains(out, "Text: URGENT") {
		t.Errorf("extracted text not shown:\n%s", out)
	}
}

func TestScanValidationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, _, err := run(t, "", "--offline", "scan", "screenshot", path)
	if err == nil {
		t.Fatal("expected an error for a non-image upload")
	}
	if got := describeError(err); got != "File must be an image" {
		t.Errorf("describeError = %q", got)
	}
}

func TestChatInteractiveOffline(t *testing.T) {
	out, _, err := run(t, "Explain phishing\n\nexit\n", "--offline", "chat")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(out, i18n.T(i18n.English, "kb_phishing_general")) {
		t.Errorf("knowledge base answer missing:\n%s", out)
	}
	if !strings.Contains(out, i18n.T(i18n.English, "notice_chat_offline")) {
		t.Errorf("offline notice missing:\n%s", out)
	}
}

func TestChatThreadsConversation(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.ChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		ids = append(ids, req.ConversationID)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ChatResponse{Response: "ok", ConversationID: "conv-42", Language: "en"})
	}))
	defer srv.Close()

	if _, _, err := run(t, "first\nsecond\n", "--backend", srv.URL, "chat"); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(ids) != 2 || ids[0] == "" || ids[1] != "conv-42" {
		t.Errorf("conversation ids sent = %q", ids)
	}
}

func TestTipsLanguage(t *testing.T) {
	out, _, err := run(t, "", "--offline", "--lang", "mr", "--json", "tips")
	if err != nil {
		t.Fatalf("tips: %v", err)
	}
	var resp models.TipsResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Language != "mr" || len(resp.Tips) == 0 {
		t.Errorf("tips = %+v", resp)
	}
}

func TestCommunityReportOffline(t *testing.T) {
	out, _, err := run(t, "", "--offline", "community", "report", "--category", "scam", "http://paypal.secure-login.tk")
	if err != nil {
		t.Fatalf("community report: %v", err)
	}
	if !strings.Contains(out, "paypal[.]secure-login[.]tk") || !strings.Contains(out, "LOCAL-") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestFeedbackQueuedOffline(t *testing.T) {
	out, _, err := run(t, "", "--offline", "feedback", "--was", "safe", "--is", "malicious", "http://secure-login.tk")
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if !strings.Contains(out, "Feedback queued ("+string(models.FeedbackFalseNegative)+")") {
		t.Errorf("unexpected output:\n%s", out)
	}
	// without a database the queue dies with the process
	if !strings.Contains(out, i18n.T(i18n.English, "notice_queued_memory")) {
		t.Errorf("in-memory queue should not claim the submission was saved:\n%s", out)
	}
}

func TestReportListRequiresBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Not authenticated"}`)
	}))
	defer srv.Close()

	_, _, err := run(t, "", "--backend", srv.URL, "report", "--list")
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := describeError(err); got != "Not authenticated" {
		t.Errorf("describeError = %q", got)
	}
}

func TestLoginPrintsToken(t *testing.T) {
	var got models.LoginRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != backend.PathLogin {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"tok-123","token_type":"bearer"}`)
	}))
	defer srv.Close()

	out, _, err := run(t, "hunter22\n", "--backend", srv.URL, "login", "--email", "a@example.com")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if strings.TrimSpace(out) != "tok-123" {
		t.Errorf("output = %q", out)
	}
	if got.Email != "a@example.com" || got.Password != "hunter22" {
		t.Errorf("backend got %+v", got)
	}
}

func TestHealthOffline(t *testing.T) {
	out, _, err := run(t, "", "--offline", "health")
	if err == nil {
		t.Fatal("expected an error for an unreachable backend")
	}
	if !strings.Contains(out, "unreachable") {
		t.Errorf("output = %q", out)
	}
}

func TestMissingArgument(t *testing.T) {
	if _, _, err := run(t, "", "--offline", "scan", "text"); err == nil {
		t.Error("scan text without a message should fail")
	}
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"scamshield/internal/domain/models"
	"scamshield/internal/i18n"
)

func TestMaskURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://paypal.secure-login.tk/verify", "paypal[.]secure-login[.]tk/verify"},
		{"HTTP://evil.com", "evil[.]com"},
		{"  bit.ly/x ", "bit[.]ly/x"},
		{"ftp://files.example.com", "ftp://files[.]example[.]com"},
	}
	for _, tt := range tests {
		if got := MaskURL(tt.in); got != tt.want {
			t.Errorf("MaskURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := UnmaskURL("paypal[.]secure-login[.]tk"); got != "paypal.secure-login.tk" {
		t.Errorf("UnmaskURL = %q", got)
	}
	if got := UnmaskURL(MaskURL("https://a.b.example.com/x?y=1")); got != "a.b.example.com/x?y=1" {
		t.Errorf("round trip = %q", got)
	}
}

func TestCommunitySubmit(t *testing.T) {
	t.Run("remote", func(t *testing.T) {
		fb := newFakeBackend()
		s := NewCommunityService(fb, nil, nil, testLogger)
		got, err := s.Submit(context.Background(), models.CommunityReportRequest{
			URLText:        " https://evil.tk ",
			ThreatCategory: "Fake Login",
			Language:       "xx",
		})
		if err != nil {
			t.Fatal(err)
		}
		if got.ID != "CR-000001" || got.Local {
			t.Errorf("got %+v", got)
		}
		sent := fb.submittedCommunity[0]
		if sent.URLText != "https://evil.tk" || sent.ThreatCategory != "fake_login" || sent.Language != "en" {
			t.Errorf("sent %+v", sent)
		}
	})

	t.Run("offline queues", func(t *testing.T) {
		fb := newFakeBackend()
		fb.setErr(errNetwork)
		outbox, store := newTestOutbox(fb, 5)
		s := NewCommunityService(fb, outbox, nil, testLogger)

		got, err := s.Submit(context.Background(), models.CommunityReportRequest{
			URLText:        "http://paypal.secure-login.tk",
			ThreatCategory: "phishing",
			Language:       "hi",
		})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(got.ID, "LOCAL-") || len(got.ID) != len("LOCAL-")+8 || !got.Local {
			t.Errorf("id = %q local = %v", got.ID, got.Local)
		}
		if got.MaskedURL != "paypal[.]secure-login[.]tk" {
			t.Errorf("masked = %q", got.MaskedURL)
		}
		if got.ThreatCategory != i18n.T(i18n.Hindi, "category_phishing") {
			t.Errorf("category = %q", got.ThreatCategory)
		}
		if got.Notice != i18n.T(i18n.Hindi, "notice_queued_memory") || got.SafetyTip != i18n.T(i18n.Hindi, "tip_general") {
			t.Errorf("notice = %q tip = %q", got.Notice, got.SafetyTip)
		}
		if len(got.AttackPatterns) == 0 || got.Explanation == i18n.T(i18n.Hindi, "community_no_patterns") {
			t.Errorf("patterns = %v explanation = %q", got.AttackPatterns, got.Explanation)
		}
		if n, _ := store.CountPending(context.Background()); n != 1 {
			t.Errorf("pending = %d", n)
		}
	})

	t.Run("client error", func(t *testing.T) {
		fb := newFakeBackend()
		fb.setErr(errClient)
		outbox, store := newTestOutbox(fb, 5)
		s := NewCommunityService(fb, outbox, nil, testLogger)
		if _, err := s.Submit(context.Background(), models.CommunityReportRequest{URLText: "evil.tk"}); !errors.Is(err, errClient) {
			t.Errorf("err = %v", err)
		}
		if n, _ := store.CountPending(context.Background()); n != 0 {
			t.Errorf("client error was queued")
		}
	})

	t.Run("validation", func(t *testing.T) {
		s := NewCommunityService(newFakeBackend(), nil, nil, testLogger)
		for _, req := range []models.CommunityReportRequest{
			{URLText: "ab"},
			{URLText: strings.Repeat("a", models.CommunityURLMaxLen+1)},
			{URLText: "evil.tk", OptionalDescription: strings.Repeat("d", models.CommunityDescriptionMaxLen+1)},
		} {
			if _, err := s.Submit(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Submit(%d chars) err = %v", len(req.URLText), err)
			}
		}
	})
}

func TestCommunityFeedOffline(t *testing.T) {
	ctx := context.Background()
	fb := newFakeBackend()
	fb.setErr(errNetwork)
	outbox, _ := newTestOutbox(fb, 5)
	s := NewCommunityService(fb, outbox, nil, testLogger)

	for _, u := range []string{"https://google.com", "http://first.tk", "http://second.tk"} {
		if _, err := s.Submit(ctx, models.CommunityReportRequest{URLText: u, ThreatCategory: "scam"}); err != nil {
			t.Fatal(err)
		}
	}

	feed, err := s.Feed(ctx, i18n.English, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(feed) != 2 {
		t.Fatalf("feed has %d entries, want 2", len(feed))
	}
	for _, r := range feed {
		if !r.Local || r.ThreatCategory != i18n.T(i18n.English, "category_scam") {
			t.Errorf("entry %+v", r)
		}
	}

	all, _ := s.Feed(ctx, i18n.English, 0)
	if len(all) != 1 {
		t.Errorf("limit 0 returned %d entries, want 1", len(all))
	}
}

func TestCommunityWarning(t *testing.T) {
	s := NewCommunityService(newFakeBackend(), nil, nil, testLogger)
	got := s.Warning(i18n.Marathi)
	if got.Language != "mr" || got.Warning != i18n.T(i18n.Marathi, "community_warning") {
		t.Errorf("got %+v", got)
	}
}

func TestRelaySubmitReport(t *testing.T) {
	ctx := context.Background()

	fb := newFakeBackend()
	r := NewRelayService(fb, nil, testLogger)
	got, err := r.SubmitReport(ctx, models.ReportRequest{InputType: models.ScanKindText, InputText: "  send OTP  "}, i18n.English)
	if err != nil {
		t.Fatal(err)
	}
	if got.Queued || fb.submittedReports[0].InputText != "send OTP" {
		t.Errorf("got %+v sent %+v", got, fb.submittedReports)
	}

	fb.setErr(errServer)
	outbox, _ := newTestOutbox(fb, 5)
	r = NewRelayService(fb, outbox, testLogger)
	got, err = r.SubmitReport(ctx, models.ReportRequest{InputType: models.ScanKindURL, InputText: "evil.tk/pay", Comment: "got this on SMS"}, i18n.English)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Queued || got.Status != "pending" || got.Comment == nil || *got.Comment != "got this on SMS" {
		t.Errorf("queued report = %+v", got)
	}

	list, err := r.Reports(ctx, "", 0, i18n.English)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].InputText != "evil.tk/pay" {
		t.Errorf("offline reports = %+v", list)
	}
	if _, err := r.Reports(ctx, "reviewed", 0, i18n.English); !errors.Is(err, errServer) {
		t.Errorf("reviewed filter offline err = %v", err)
	}

	for _, bad := range []models.ReportRequest{
		{InputType: "video", InputText: "hello there"},
		{InputType: models.ScanKindText, InputText: "hey"},
	} {
		if _, err := r.SubmitReport(ctx, bad, i18n.English); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("SubmitReport(%+v) err = %v", bad, err)
		}
	}
}

func TestRelaySubmitFeedback(t *testing.T) {
	ctx := context.Background()
	fb := newFakeBackend()
	r := NewRelayService(fb, nil, testLogger)

	req := models.FeedbackRequest{
		InputType:       models.ScanKindURL,
		InputText:       "google.com",
		OriginalVerdict: models.VerdictMalicious,
		UserVerdict:     models.VerdictSafe,
	}
	if _, err := r.SubmitFeedback(ctx, req, i18n.English); err != nil {
		t.Fatal(err)
	}
	if got := fb.submittedFeedback[0].FeedbackType; got != models.FeedbackFalsePositive {
		t.Errorf("feedback type = %q", got)
	}

	fb.setErr(errNetwork)
	outbox, _ := newTestOutbox(fb, 5)
	r = NewRelayService(fb, outbox, testLogger)
	req.UserVerdict = models.VerdictMalicious
	got, err := r.SubmitFeedback(ctx, req, i18n.English)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Queued || got.FeedbackType != models.FeedbackCorrect {
		t.Errorf("queued feedback = %+v", got)
	}

	req.UserVerdict = "unsure"
	if _, err := r.SubmitFeedback(ctx, req, i18n.English); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad verdict err = %v", err)
	}

	if _, err := r.FeedbackStats(ctx); !errors.Is(err, errNetwork) {
		t.Errorf("stats offline err = %v", err)
	}
}

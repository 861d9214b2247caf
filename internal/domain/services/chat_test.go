package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"scamshield/internal/domain/models"
	"scamshield/internal/i18n"
)

func TestLocalAnswerRouting(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		lang i18n.Lang
		want string
	}{
		{"double tld", "Why is google.com.com bad?", i18n.English, "kb_double_tld"},
		{"brand", "What is brand impersonation?", i18n.English, "kb_brand_impersonation"},
		{"clicked", "I clicked a link, what should I do", i18n.English, "kb_clicked_suspicious"},
		{"phishing", "Explain phishing", i18n.English, "kb_phishing_general"},
		{"safe", "Is it safe to browse here?", i18n.English, "kb_safe_browsing"},
		{"default", "hello there", i18n.English, "chat_default"},
		{"double tld first", "double extension phishing", i18n.English, "kb_double_tld"},
		{"hindi clicked falls back to safe browsing", "I clicked it", i18n.Hindi, "kb_safe_browsing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, ok := i18n.Lookup(tt.lang, tt.want)
			if !ok {
				t.Fatalf("no %s text for %s", tt.want, tt.lang)
			}
			if got := LocalAnswer(tt.msg, nil, tt.lang); got != want {
				t.Errorf("LocalAnswer(%q) = %q, want %s", tt.msg, got, tt.want)
			}
		})
	}
}

func TestLocalAnswerScanContext(t *testing.T) {
	sc := &models.ScanContext{
		Verdict: "malicious",
		Reasons: []string{"r1", "r2", "r3", "r4"},
	}
	got := LocalAnswer("hmm?", sc, i18n.English)
	if !strings.Contains(got, "r1\n• r2\n• r3") || strings.Contains(got, "r4") {
		t.Errorf("reasons not summarized: %q", got)
	}
	if !strings.Contains(got, i18n.T(i18n.English, "chat_context_tip")) {
		t.Errorf("default tip missing: %q", got)
	}

	sc.SafetyTip = "Check the sender"
	if got := LocalAnswer("hmm?", sc, i18n.English); !strings.Contains(got, "Check the sender") {
		t.Errorf("context tip missing: %q", got)
	}

	sc.Verdict = ""
	if got := LocalAnswer("hmm?", sc, i18n.English); got != i18n.T(i18n.English, "chat_default") {
		t.Errorf("context without verdict = %q", got)
	}
}

func TestChatAsk(t *testing.T) {
	t.Run("remote", func(t *testing.T) {
		fb := newFakeBackend()
		fb.chat = &models.ChatResponse{Response: "from the backend"}
		s := NewChatService(fb, testLogger)

		got, err := s.Ask(context.Background(), models.ChatRequest{Message: "  hi  ", Language: "fr"})
		if err != nil {
			t.Fatal(err)
		}
		if got.Response != "from the backend" || got.Source != models.ScanSourceRemote {
			t.Errorf("got %+v", got)
		}
		if fb.lastChat.Message != "hi" || fb.lastChat.Language != "en" || fb.lastChat.ConversationID == "" {
			t.Errorf("backend got %+v", fb.lastChat)
		}
		if got.ConversationID != fb.lastChat.ConversationID {
			t.Errorf("conversation id = %q, want %q", got.ConversationID, fb.lastChat.ConversationID)
		}
	})

	t.Run("offline", func(t *testing.T) {
		fb := newFakeBackend()
		fb.setErr(errNetwork)
		s := NewChatService(fb, testLogger)

		got, err := s.Ask(context.Background(), models.ChatRequest{Message: "phishing?", Language: "hi", ConversationID: "c-1"})
		if err != nil {
			t.Fatal(err)
		}
		if got.Source != models.ScanSourceLocal || got.ConversationID != "c-1" || got.Language != "hi" {
			t.Errorf("got %+v", got)
		}
		if got.Notice != i18n.T(i18n.Hindi, "notice_chat_offline") {
			t.Errorf("notice = %q", got.Notice)
		}
	})

	t.Run("client error", func(t *testing.T) {
		fb := newFakeBackend()
		fb.setErr(errClient)
		s := NewChatService(fb, testLogger)
		if _, err := s.Ask(context.Background(), models.ChatRequest{Message: "hi"}); !errors.Is(err, errClient) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		s := NewChatService(newFakeBackend(), testLogger)
		for _, msg := range []string{"", "   ", strings.Repeat("a", models.ChatMessageMaxLen+1)} {
			if _, err := s.Ask(context.Background(), models.ChatRequest{Message: msg}); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Ask(len %d) err = %v", len(msg), err)
			}
		}
	})
}

func TestChatTips(t *testing.T) {
	fb := newFakeBackend()
	fb.setErr(errServer)
	s := NewChatService(fb, testLogger)

	got, err := s.Tips(context.Background(), i18n.Marathi)
	if err != nil {
		t.Fatal(err)
	}
	if got.Language != "mr" || len(got.Tips) != len(i18n.Tips(i18n.Marathi)) {
		t.Errorf("got %+v", got)
	}
}

func TestChatSession(t *testing.T) {
	fb := newFakeBackend()
	fb.setErr(errNetwork)
	s := NewChatService(fb, testLogger)
	session := s.NewSession(i18n.English)

	session.AttachScan(&models.ScanResult{
		RiskScore:      80,
		Tier:           models.RiskTierHighRisk,
		InputType:      models.ScanKindURL,
		RawInput:       "paypal.secure-login.tk",
		MatchedSignals: []string{"Brand name in subdomain"},
	})

	first, err := session.Send(context.Background(), "explain this result")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(first.Response, "Brand name in subdomain") {
		t.Errorf("scan context not used: %q", first.Response)
	}
	second, err := session.Send(context.Background(), "thanks")
	if err != nil {
		t.Fatal(err)
	}
	if first.ConversationID == "" || second.ConversationID != first.ConversationID {
		t.Errorf("conversation ids = %q, %q", first.ConversationID, second.ConversationID)
	}
	if session.ConversationID() != first.ConversationID {
		t.Errorf("session id = %q", session.ConversationID())
	}
}

// slowChat counts overlapping Chat calls and echoes the conversation id
type slowChat struct {
	mu       sync.Mutex
	inFlight int
	maxSeen  int
}

func (c *slowChat) Chat(_ context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	c.mu.Lock()
	c.inFlight++
	c.maxSeen = max(c.maxSeen, c.inFlight)
	c.mu.Unlock()

	time.Sleep(10 * time.Millisecond)

	c.mu.Lock()
	c.inFlight--
	c.mu.Unlock()
	return &models.ChatResponse{Response: "ok", ConversationID: req.ConversationID}, nil
}

func (c *slowChat) Tips(context.Context, string) (*models.TipsResponse, error) {
	return &models.TipsResponse{}, nil
}

func TestChatSessionSerializesSends(t *testing.T) {
	backend := &slowChat{}
	session := NewChatService(backend, testLogger).NewSession(i18n.English)

	const senders = 4
	ids := make([]string, senders)
	var wg sync.WaitGroup
	for i := range senders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := session.Send(context.Background(), "is this message a scam?")
			if err != nil {
				t.Error(err)
				return
			}
			ids[i] = resp.ConversationID
		}()
	}
	wg.Wait()

	if backend.maxSeen != 1 {
		t.Errorf("max concurrent exchanges = %d, want 1", backend.maxSeen)
	}
	for i, id := range ids {
		if id == "" || id != ids[0] {
			t.Errorf("ids[%d] = %q, want %q", i, id, ids[0])
		}
	}
}

package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"scamshield/internal/domain/models"
	"scamshield/internal/i18n"
	"scamshield/internal/infrastructure/backend"
	"scamshield/pkg/logger"
)

// ChatBackend is the part of the remote API the assistant uses
type ChatBackend interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	Tips(ctx context.Context, language string) (*models.TipsResponse, error)
}

// contextReasonLimit caps how many scan reasons a context reply repeats
const contextReasonLimit = 3

// knowledgeTopic routes a question to a knowledge base entry when any of
// its triggers occurs in the message. fallback is used when the entry has
// no translation in the requested language.
type knowledgeTopic struct {
	key      string
	fallback string
	triggers []string
}

// knowledgeTopics are tried in order; the first match wins
var knowledgeTopics = []knowledgeTopic{
	{key: "kb_double_tld", fallback: "kb_phishing_general", triggers: []string{"double", ".com.com", "tld", "two extensions"}},
	{key: "kb_brand_impersonation", triggers: []string{"brand", "impersonation", "subdomain", "fake name"}},
	{key: "kb_clicked_suspicious", fallback: "kb_safe_browsing", triggers: []string{"clicked", "visited", "opened", "what should i do"}},
	{key: "kb_phishing_general", triggers: []string{"phishing", "how", "trick", "work"}},
	{key: "kb_safe_browsing", triggers: []string{"safe", "tips", "protect", "browse"}},
}

// ChatService answers safety questions through the backend assistant,
// falling back to the built-in knowledge base
type ChatService struct {
	backend ChatBackend
	logger  *logger.Logger
}

// NewChatService creates a chat service
func NewChatService(b ChatBackend, log *logger.Logger) *ChatService {
	return &ChatService{
		backend: b,
		logger:  log.WithComponent("chat"),
	}
}

// Ask answers one user turn. A conversation id is minted when the request
// carries none.
func (s *ChatService) Ask(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	msg, err := ValidateChatMessage(req.Message)
	if err != nil {
		return nil, err
	}
	lang := i18n.Parse(req.Language)
	req.Message = msg
	req.Language = lang.String()
	if req.ConversationID == "" {
		req.ConversationID = uuid.NewString()
	}

	resp, err := s.backend.Chat(ctx, req)
	if err == nil {
		if resp.ConversationID == "" {
			resp.ConversationID = req.ConversationID
		}
		if resp.Language == "" {
			resp.Language = req.Language
		}
		resp.Source = models.ScanSourceRemote
		return resp, nil
	}
	if !backend.IsFallbackEligible(err) {
		return nil, err
	}

	s.logger.Warn().Err(err).Str("conversation_id", req.ConversationID).Msg("assistant unavailable, answering locally")
	return &models.ChatResponse{
		Response:       LocalAnswer(msg, req.ScanContext, lang),
		ConversationID: req.ConversationID,
		Language:       req.Language,
		Source:         models.ScanSourceLocal,
		Notice:         i18n.T(lang, "notice_chat_offline"),
	}, nil
}

// Tips returns the safety tips list, built-in when the backend is down
func (s *ChatService) Tips(ctx context.Context, lang i18n.Lang) (*models.TipsResponse, error) {
	resp, err := s.backend.Tips(ctx, lang.String())
	if err == nil {
		return resp, nil
	}
	if !backend.IsFallbackEligible(err) {
		return nil, err
	}
	s.logger.Debug().Err(err).Msg("serving built-in tips")
	return &models.TipsResponse{Tips: i18n.Tips(lang), Language: lang.String()}, nil
}

// LocalAnswer picks a knowledge base reply for msg. A scan context with a
// verdict is summarized when no topic matches.
func LocalAnswer(msg string, sc *models.ScanContext, lang i18n.Lang) string {
	lowered := strings.ToLower(msg)
	for _, topic := range knowledgeTopics {
		for _, trigger := range topic.triggers {
			if strings.Contains(lowered, trigger) {
				return topic.text(lang)
			}
		}
	}

	if sc != nil && sc.Verdict != "" && len(sc.Reasons) > 0 {
		reasons := sc.Reasons
		if len(reasons) > contextReasonLimit {
			reasons = reasons[:contextReasonLimit]
		}
		tip := sc.SafetyTip
		if tip == "" {
			tip = i18n.T(lang, "chat_context_tip")
		}
		return i18n.Format(lang, "chat_context", map[string]string{
			"reasons": strings.Join(reasons, "\n• "),
			"tip":     tip,
		})
	}

	return i18n.T(lang, "chat_default")
}

func (t knowledgeTopic) text(lang i18n.Lang) string {
	if s, ok := i18n.Lookup(lang, t.key); ok {
		return s
	}
	if t.fallback != "" {
		if s, ok := i18n.Lookup(lang, t.fallback); ok {
			return s
		}
	}
	return i18n.T(i18n.English, t.key)
}

// ScanContextFrom summarizes a scan result for follow-up questions
func ScanContextFrom(r *models.ScanResult) *models.ScanContext {
	if r == nil {
		return nil
	}
	score := r.RiskScore
	sc := &models.ScanContext{
		RiskScore:      &score,
		Verdict:        string(models.VerdictForTier(r.Tier)),
		AttackPatterns: r.AttackPatterns,
		Reasons:        r.MatchedSignals,
		Explanation:    r.Explanation,
		SafetyTip:      r.SafetyTip,
	}
	if r.InputType == models.ScanKindURL {
		sc.URL = r.RawInput
	}
	return sc
}

// ChatSession threads one conversation through successive turns. It is
// safe for concurrent use.
type ChatSession struct {
	service *ChatService
	lang    i18n.Lang

	// held for a whole Send so one exchange is in flight at a time
	exchange sync.Mutex

	mu             sync.Mutex
	conversationID string
	scanContext    *models.ScanContext
}

// NewSession starts a conversation in lang
func (s *ChatService) NewSession(lang i18n.Lang) *ChatSession {
	return &ChatSession{service: s, lang: lang}
}

// AttachScan makes r the context of subsequent turns
func (cs *ChatSession) AttachScan(r *models.ScanResult) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.scanContext = ScanContextFrom(r)
}

// ConversationID returns the id assigned by the first turn
func (cs *ChatSession) ConversationID() string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.conversationID
}

// Send asks msg within the session's conversation. Concurrent calls wait
// for the previous exchange so every turn sees the same conversation id.
func (cs *ChatSession) Send(ctx context.Context, msg string) (*models.ChatResponse, error) {
	cs.exchange.Lock()
	defer cs.exchange.Unlock()

	cs.mu.Lock()
	req := models.ChatRequest{
		Message:        msg,
		ConversationID: cs.conversationID,
		ScanContext:    cs.scanContext,
		Language:       cs.lang.String(),
	}
	cs.mu.Unlock()

	resp, err := cs.service.Ask(ctx, req)
	if err != nil {
		return nil, err
	}

	cs.mu.Lock()
	cs.conversationID = resp.ConversationID
	cs.mu.Unlock()
	return resp, nil
}

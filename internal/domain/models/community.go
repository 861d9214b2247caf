package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ThreatCategory is the user-selected kind of a community report
type ThreatCategory string

const (
	ThreatCategoryPhishing  ThreatCategory = "phishing"
	ThreatCategoryScam      ThreatCategory = "scam"
	ThreatCategoryFakeLogin ThreatCategory = "fake_login"
	ThreatCategoryUnknown   ThreatCategory = "unknown"
)

// ThreatCategories lists the accepted categories in display order
var ThreatCategories = []ThreatCategory{
	ThreatCategoryPhishing,
	ThreatCategoryScam,
	ThreatCategoryFakeLogin,
	ThreatCategoryUnknown,
}

// NormalizeThreatCategory lower-cases, replaces spaces with underscores and
// maps anything unrecognized to unknown.
func NormalizeThreatCategory(s string) ThreatCategory {
	c := ThreatCategory(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_"))
	for _, known := range ThreatCategories {
		if c == known {
			return c
		}
	}
	return ThreatCategoryUnknown
}

// Community report limits
const (
	CommunityURLMinLen         = 3
	CommunityURLMaxLen         = 2000
	CommunityDescriptionMaxLen = 500
	CommunityDefaultLimit      = 20
	CommunityMaxLimit          = 50
)

// CommunityReportRequest submits a suspicious URL to the community feed
type CommunityReportRequest struct {
	URLText             string `json:"url_text"`
	ThreatCategory      string `json:"threat_category"`
	OptionalDescription string `json:"optional_description,omitempty"`
	Language            string `json:"language"`
}

// CommunityReport is a masked, explained entry of the community feed
type CommunityReport struct {
	ID             string   `json:"id"`
	MaskedURL      string   `json:"masked_url"`
	ThreatCategory string   `json:"threat_category"`
	AttackPatterns []string `json:"attack_patterns"`
	Explanation    string   `json:"explanation"`
	SafetyTip      string   `json:"safety_tip"`
	SubmittedAt    string   `json:"submitted_at"`
	Language       string   `json:"language"`
	Local          bool     `json:"local,omitempty"`
	Notice         string   `json:"notice,omitempty"`
}

// CommunityWarning is the awareness banner shown above the feed
type CommunityWarning struct {
	Warning  string `json:"warning"`
	Language string `json:"language"`
}

// ScanContext summarizes a recent scan for the chat assistant
type ScanContext struct {
	URL            string   `json:"url,omitempty"`
	RiskScore      *int     `json:"risk_score,omitempty"`
	Verdict        string   `json:"verdict,omitempty"`
	AttackPatterns []string `json:"attack_patterns,omitempty"`
	Reasons        []string `json:"reasons,omitempty"`
	Explanation    string   `json:"explanation,omitempty"`
	SafetyTip      string   `json:"safety_tip,omitempty"`
}

// ChatMessageMaxLen is the longest accepted chat message, in characters
const ChatMessageMaxLen = 1000

// ChatRequest is one user turn
type ChatRequest struct {
	Message        string       `json:"message"`
	ConversationID string       `json:"conversation_id,omitempty"`
	ScanContext    *ScanContext `json:"scan_context,omitempty"`
	Language       string       `json:"language"`
}

// ChatResponse is the assistant's reply to one turn
type ChatResponse struct {
	Response       string     `json:"response"`
	ConversationID string     `json:"conversation_id"`
	Language       string     `json:"language"`
	Source         ScanSource `json:"source,omitempty"`
	Notice         string     `json:"notice,omitempty"`
}

// SafetyTip is one entry of the tips list
type SafetyTip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TipsResponse is the payload of GET /chat/tips
type TipsResponse struct {
	Tips     []SafetyTip `json:"tips"`
	Language string      `json:"language"`
}

// SubmissionKind identifies what an outbox row should be sent as
type SubmissionKind string

const (
	SubmissionCommunityReport SubmissionKind = "community_report"
	SubmissionScamReport      SubmissionKind = "scam_report"
	SubmissionFeedback        SubmissionKind = "feedback"
)

// SubmissionStatus tracks an outbox row through delivery
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionDelivered SubmissionStatus = "delivered"
	SubmissionFailed    SubmissionStatus = "failed"
)

// PendingSubmission is a request that could not reach the backend and
// awaits redelivery
type PendingSubmission struct {
	ID            uuid.UUID        `json:"id"`
	Kind          SubmissionKind   `json:"kind"`
	Payload       json.RawMessage  `json:"payload"`
	Status        SubmissionStatus `json:"status"`
	Attempts      int              `json:"attempts"`
	LastError     string           `json:"last_error,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	NextAttemptAt time.Time        `json:"next_attempt_at"`
}

// NewPendingSubmission marshals payload into a fresh outbox row due now
func NewPendingSubmission(kind SubmissionKind, payload any) (*PendingSubmission, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &PendingSubmission{
		ID:            uuid.New(),
		Kind:          kind,
		Payload:       data,
		Status:        SubmissionPending,
		CreatedAt:     now,
		NextAttemptAt: now,
	}, nil
}

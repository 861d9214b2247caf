package models

import "time"

// RemoteScanResponse is the scan payload returned by the backend for every
// scan endpoint. Screenshot and audio scans add ExtractedText / Transcript.
type RemoteScanResponse struct {
	InputType      string   `json:"input_type" msgpack:"input_type"`
	InputText      string   `json:"input_text" msgpack:"input_text"`
	RiskScore      int      `json:"risk_score" msgpack:"risk_score"`
	Label          string   `json:"label" msgpack:"label"`
	IsSafe         bool     `json:"is_safe" msgpack:"is_safe"`
	Reasons        []string `json:"reasons" msgpack:"reasons"`
	Suggestions    []string `json:"suggestions" msgpack:"suggestions"`
	AttackPatterns []string `json:"attack_patterns,omitempty" msgpack:"attack_patterns,omitempty"`
	Explanation    string   `json:"explanation,omitempty" msgpack:"explanation,omitempty"`
	SafetyTip      string   `json:"safety_tip,omitempty" msgpack:"safety_tip,omitempty"`
	ModelVersion   string   `json:"model_version" msgpack:"model_version"`
	ScanID         *int64   `json:"scan_id,omitempty" msgpack:"scan_id,omitempty"`
	ExtractedText  string   `json:"extracted_text,omitempty" msgpack:"extracted_text,omitempty"`
	Transcript     string   `json:"transcript,omitempty" msgpack:"transcript,omitempty"`
}

// ScanRequest is the JSON body for URL and text scans
type ScanRequest struct {
	Content string `json:"content"`
}

// BatchURLScanRequest is the gateway body for scanning several URLs at once
type BatchURLScanRequest struct {
	URLs     []string `json:"urls"`
	Language string   `json:"language,omitempty"`
}

// BatchURLScanResponse preserves request order
type BatchURLScanResponse struct {
	Results    []*ScanResult `json:"results"`
	Total      int           `json:"total"`
	HighRisk   int           `json:"high_risk"`
	Suspicious int           `json:"suspicious"`
	Safe       int           `json:"safe"`
}

// Upload is a file submitted for screenshot or audio scanning. Hint is
// optional caller-supplied text used only by offline analysis.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
	Hint        string
}

// BackendHealth is the payload of GET /health on the backend
type BackendHealth struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Services  map[string]string `json:"services,omitempty"`
	Reachable bool              `json:"reachable"`
	LatencyMS int64             `json:"latency_ms"`
	CheckedAt time.Time         `json:"checked_at"`
}

// User is the authenticated account as returned by /auth/me
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SignupRequest registers a new account
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest exchanges credentials for a bearer token
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is a bearer access token
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ReportRequest submits a scam report
type ReportRequest struct {
	InputType ScanKind `json:"input_type"`
	InputText string   `json:"input_text"`
	Comment   string   `json:"comment,omitempty"`
}

// Report is a stored scam report
type Report struct {
	ID        int64     `json:"id"`
	InputType string    `json:"input_type"`
	InputText string    `json:"input_text"`
	Comment   *string   `json:"comment"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Queued    bool      `json:"queued,omitempty"`
	Notice    string    `json:"notice,omitempty"`
}

// Verdict values a user can give when correcting a scan
type Verdict string

const (
	VerdictSafe       Verdict = "safe"
	VerdictSuspicious Verdict = "suspicious"
	VerdictMalicious  Verdict = "malicious"
)

// Valid reports whether v is an accepted feedback verdict
func (v Verdict) Valid() bool {
	switch v {
	case VerdictSafe, VerdictSuspicious, VerdictMalicious:
		return true
	}
	return false
}

// FeedbackRequest corrects the verdict of an earlier scan
type FeedbackRequest struct {
	ScanID          *int64       `json:"scan_id,omitempty"`
	InputType       ScanKind     `json:"input_type"`
	InputText       string       `json:"input_text"`
	OriginalVerdict Verdict      `json:"original_verdict"`
	UserVerdict     Verdict      `json:"user_verdict"`
	FeedbackType    FeedbackType `json:"feedback_type"`
	Comment         string       `json:"comment,omitempty"`
}

// FeedbackType classifies a correction relative to the original verdict
type FeedbackType string

const (
	FeedbackFalsePositive FeedbackType = "false_positive"
	FeedbackFalseNegative FeedbackType = "false_negative"
	FeedbackCorrect       FeedbackType = "correct"
)

// ClassifyFeedback compares the user's verdict with the original one: a
// riskier user verdict means the scan missed something (false negative), a
// safer one means it over-flagged (false positive).
func ClassifyFeedback(original, user Verdict) FeedbackType {
	switch o, u := verdictRank(original), verdictRank(user); {
	case u > o:
		return FeedbackFalseNegative
	case u < o:
		return FeedbackFalsePositive
	default:
		return FeedbackCorrect
	}
}

func verdictRank(v Verdict) int {
	switch v {
	case VerdictSuspicious:
		return 1
	case VerdictMalicious:
		return 2
	default:
		return 0
	}
}

// VerdictForTier maps a risk tier onto the feedback verdict vocabulary
func VerdictForTier(t RiskTier) Verdict {
	switch t {
	case RiskTierSafe:
		return VerdictSafe
	case RiskTierSuspicious:
		return VerdictSuspicious
	default:
		return VerdictMalicious
	}
}

// Feedback is a stored verdict correction
type Feedback struct {
	ID              int64        `json:"id"`
	InputType       string       `json:"input_type"`
	InputText       string       `json:"input_text"`
	OriginalVerdict string       `json:"original_verdict"`
	UserVerdict     string       `json:"user_verdict"`
	FeedbackType    FeedbackType `json:"feedback_type"`
	Comment         *string      `json:"comment"`
	Status          string       `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	Queued          bool         `json:"queued,omitempty"`
	Notice          string       `json:"notice,omitempty"`
}

// FeedbackStats aggregates verdict corrections
type FeedbackStats struct {
	TotalFeedback  int `json:"total_feedback"`
	FalsePositives int `json:"false_positives"`
	FalseNegatives int `json:"false_negatives"`
	Correct        int `json:"correct"`
	PendingReview  int `json:"pending_review"`
}

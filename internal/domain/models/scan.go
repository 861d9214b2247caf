package models

import (
	"math"
	"time"
)

// RiskTier is the three-level verdict derived from a risk score
type RiskTier string

const (
	RiskTierSafe       RiskTier = "Safe"
	RiskTierSuspicious RiskTier = "Suspicious"
	RiskTierHighRisk   RiskTier = "High Risk"
)

// Tier boundaries, inclusive upper bounds
const (
	SafeMaxScore       = 30
	SuspiciousMaxScore = 60
)

// Severity is the notification level a UI shows alongside a verdict
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ScanKind identifies the type of input that was scanned
type ScanKind string

const (
	ScanKindURL        ScanKind = "url"
	ScanKindText       ScanKind = "text"
	ScanKindScreenshot ScanKind = "screenshot"
	ScanKindAudio      ScanKind = "audio"
)

// Valid reports whether k is a known scan kind
func (k ScanKind) Valid() bool {
	switch k {
	case ScanKindURL, ScanKindText, ScanKindScreenshot, ScanKindAudio:
		return true
	}
	return false
}

// ScanSource records which analyzer produced a result
type ScanSource string

const (
	ScanSourceRemote ScanSource = "remote"
	ScanSourceLocal  ScanSource = "local"
	ScanSourceCache  ScanSource = "cache"
)

// Category labels used when no scam category is eligible
const (
	CategoryUnknown = "Unknown"
	CategorySafe    = "Safe"
)

// InvalidURLScore is the fixed score for input that cannot be parsed as a URL
const InvalidURLScore = 75

// ScanResult is the rendered outcome of a single scan
type ScanResult struct {
	RiskScore       int            `json:"risk_score"`
	Tier            RiskTier       `json:"tier"`
	Severity        Severity       `json:"severity"`
	MatchedCategory string         `json:"matched_category"`
	MatchedSignals  []string       `json:"matched_signals"`
	SuggestedAction string         `json:"suggested_action"`
	Suggestions     []string       `json:"suggestions,omitempty"`
	RawInput        string         `json:"raw_input"`
	InputType       ScanKind       `json:"input_type"`
	IsSafe          bool           `json:"is_safe"`
	Source          ScanSource     `json:"source"`
	Fallback        bool           `json:"fallback"`
	Notice          string         `json:"notice,omitempty"`
	AttackPatterns  []string       `json:"attack_patterns,omitempty"`
	Explanation     string         `json:"explanation,omitempty"`
	SafetyTip       string         `json:"safety_tip,omitempty"`
	Breakdown       *URLComponents `json:"breakdown,omitempty"`
	ExtractedText   string         `json:"extracted_text,omitempty"`
	Transcript      string         `json:"transcript,omitempty"`
	ScanID          *int64         `json:"scan_id,omitempty"`
	ModelVersion    string         `json:"model_version,omitempty"`
	ScannedAt       time.Time      `json:"scanned_at"`
}

// ApplyScore clamps score into [0,100] and derives tier, severity and
// safety from it. Every producer of a ScanResult goes through here.
func (r *ScanResult) ApplyScore(score int) {
	r.RiskScore = ClampScore(score)
	r.Tier = TierFor(r.RiskScore)
	r.Severity = SeverityFor(r.RiskScore)
	r.IsSafe = r.Tier == RiskTierSafe
}

// URLComponents is the structural breakdown of a URL host. Display only.
type URLComponents struct {
	FullHost         string `json:"full_host"`
	Subdomain        string `json:"subdomain"`
	Domain           string `json:"domain"`
	RegisteredDomain string `json:"registered_domain"`
	TLD              string `json:"tld"`
	IsIPLiteral      bool   `json:"is_ip"`
	Path             string `json:"path"`
	Port             string `json:"port"`
}

// ClampScore bounds a raw score to [0,100]
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ClampFloatScore rounds and clamps a fractional score
func ClampFloatScore(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	return ClampScore(int(math.Round(math.Max(math.Min(score, 100), 0))))
}

// TierFor maps a score to its risk tier
func TierFor(score int) RiskTier {
	switch {
	case score <= SafeMaxScore:
		return RiskTierSafe
	case score <= SuspiciousMaxScore:
		return RiskTierSuspicious
	default:
		return RiskTierHighRisk
	}
}

// SeverityFor maps a score to the notification severity of its tier
func SeverityFor(score int) Severity {
	switch TierFor(score) {
	case RiskTierSafe:
		return SeveritySuccess
	case RiskTierSuspicious:
		return SeverityWarning
	default:
		return SeverityError
	}
}

package services

import (
	"net/url"
	"regexp"
	"strings"
)

// MaxLoggedInputLen bounds user content written to logs
const MaxLoggedInputLen = 500

type redaction struct {
	re          *regexp.Regexp
	replacement string
}

// Applied in order: specific shapes first so the loose phone pattern
// does not swallow card or account numbers.
var redactions = []redaction{
	{regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), "[EMAIL_REDACTED]"},
	{regexp.MustCompile(`[a-zA-Z0-9._-]+@[a-zA-Z]+`), "[UPI_REDACTED]"},
	{regexp.MustCompile(`(?i)\b(?:a/?c|account)[:\s#]*\d{9,18}\b`), "Account: [REDACTED]"},
	{regexp.MustCompile(`\b(?:\d{4}[\s\-]?){3}\d{4}\b`), "[CARD_REDACTED]"},
	{regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`), "[AADHAAR_REDACTED]"},
	{regexp.MustCompile(`(?i)\b[A-Z]{5}\d{4}[A-Z]\b`), "[PAN_REDACTED]"},
	{regexp.MustCompile(`(?i)\b[A-Z]{4}0[A-Z0-9]{6}\b`), "[IFSC_REDACTED]"},
	{regexp.MustCompile(`(?i)\b(?:otp|code|pin|verify)[:\s]*\d{4,8}\b`), "OTP: [REDACTED]"},
	{regexp.MustCompile(`(?i)\bcvv[:\s]*\d{3,4}\b`), "CVV: [REDACTED]"},
	{regexp.MustCompile(`\+?\d[\d\s\-()]{8,13}\d`), "[PHONE_REDACTED]"},
}

// Redact replaces personal identifiers in text with fixed placeholders
func Redact(text string) string {
	for _, r := range redactions {
		text = r.re.ReplaceAllString(text, r.replacement)
	}
	return text
}

// SanitizeForLogging redacts text and truncates it to MaxLoggedInputLen runes
func SanitizeForLogging(text string) string {
	text = Redact(text)
	runes := []rune(text)
	if len(runes) > MaxLoggedInputLen {
		return string(runes[:MaxLoggedInputLen]) + "... [TRUNCATED]"
	}
	return text
}

var sensitiveQueryParams = map[string]bool{
	"password": true,
	"pwd":      true,
	"token":    true,
	"key":      true,
	"api_key":  true,
	"secret":   true,
	"auth":     true,
}

// SanitizeURL drops credential-like query parameters and userinfo from raw.
// Unparsable input is redacted as plain text.
func SanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return SanitizeForLogging(raw)
	}
	u.User = nil
	q := u.Query()
	for k := range q {
		if sensitiveQueryParams[strings.ToLower(k)] {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()
	return SanitizeForLogging(u.String())
}

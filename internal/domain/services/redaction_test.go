package services

import (
	"strings"
	"testing"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		absent string
	}{
		{"email", "mail me at ravi.k@example.com now", "[EMAIL_REDACTED]", "ravi.k@example.com"},
		{"upi", "pay to ravi@okaxis", "[UPI_REDACTED]", "ravi@okaxis"},
		{"card", "card 4111 1111 1111 1111 exp", "[CARD_REDACTED]", "4111"},
		{"aadhaar", "aadhaar 2345 6789 0123", "[AADHAAR_REDACTED]", "6789"},
		{"pan", "PAN ABCDE1234F", "[PAN_REDACTED]", "ABCDE1234F"},
		{"ifsc", "IFSC SBIN0001234", "[IFSC_REDACTED]", "SBIN0001234"},
		{"otp", "your OTP: 482913", "OTP: [REDACTED]", "482913"},
		{"cvv", "cvv 123", "CVV: [REDACTED]", "123"},
		{"account", "A/C 123456789012", "Account: [REDACTED]", "123456789012"},
		{"phone", "call +91 98765 43210", "[PHONE_REDACTED]", "98765"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Redact(tt.in)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Redact(%q) = %q, want it to contain %q", tt.in, got, tt.want)
			}
			if strings.Contains(got, tt.absent) {
				t.Errorf("Redact(%q) = %q still contains %q", tt.in, got, tt.absent)
			}
		})
	}
}

func TestRedactLeavesPlainText(t *testing.T) {
	in := "Your parcel is waiting at the post office"
	if got := Redact(in); got != in {
		t.Errorf("Redact(%q) = %q", in, got)
	}
}

func TestSanitizeForLoggingTruncates(t *testing.T) {
	got := SanitizeForLogging(strings.Repeat("x", MaxLoggedInputLen+20))
	if !strings.HasSuffix(got, "... [TRUNCATED]") {
		t.Fatalf("missing truncation marker: %q", got[len(got)-20:])
	}
	if n := len([]rune(strings.TrimSuffix(got, "... [TRUNCATED]"))); n != MaxLoggedInputLen {
		t.Errorf("kept %d runes, want %d", n, MaxLoggedInputLen)
	}
}

func TestSanitizeURL(t *testing.T) {
	got := SanitizeURL("https://user:pw@example.com/login?token=abc&page=2&API_KEY=z")
	for _, bad := range []string{"token", "abc", "API_KEY", "user:pw"} {
		if strings.Contains(got, bad) {
			t.Errorf("SanitizeURL kept %q: %s", bad, got)
		}
	}
	if !strings.Contains(got, "page=2") {
		t.Errorf("SanitizeURL dropped a harmless param: %s", got)
	}
}

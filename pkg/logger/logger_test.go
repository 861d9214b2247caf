package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"trace", zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWithComponentWritesField(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf}).WithComponent("scan-flow")

	log.Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["component"] != "scan-flow" {
		t.Errorf("component = %v, want scan-flow", entry["component"])
	}
	if entry["message"] != "hello" {
		t.Errorf("message = %v, want hello", entry["message"])
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	scoped := New(Config{Level: "info", Format: "json", Output: &buf}).WithRequest("req-7", "POST", "/api/v1/scan/text")

	ctx := scoped.WithContext(context.Background())
	FromContext(ctx).Info().Msg("scoped")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["request_id"] != "req-7" || entry["method"] != "POST" {
		t.Errorf("entry = %v", entry)
	}

	if FromContext(context.Background()) != global {
		t.Error("empty context should fall back to the global logger")
	}
}

func TestNewCLILevel(t *testing.T) {
	if got := NewCLI(&bytes.Buffer{}, false).GetLevel(); got != zerolog.WarnLevel {
		t.Errorf("quiet level = %v", got)
	}
	if got := NewCLI(&bytes.Buffer{}, true).GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("verbose level = %v", got)
	}
}

func TestForEnvironmentProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := ForEnvironment("production", Config{Level: "info", Format: "console", Output: &buf})
	log.Info().Msg("started")

	if !json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Errorf("production output is not JSON: %s", buf.String())
	}
}

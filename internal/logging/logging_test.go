package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// captureLogOutput reinitializes the logger onto a buffer for the duration of f.
func captureLogOutput(level Level, format Format, f func()) string {
	var buf bytes.Buffer
	InitLoggerTo(&buf, level, format)
	defer InitLogger(LevelWarn, FormatText)
	f()
	return buf.String()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) succeeded")
	}
}

func TestLevelFiltering(t *testing.T) {
	out := captureLogOutput(LevelWarn, FormatText, func() {
		Debug("hidden")
		Info("hidden too")
		Warn("shown")
	})
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered messages: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("output missing warning: %s", out)
	}
}

func TestPageErrorJSON(t *testing.T) {
	out := captureLogOutput(LevelDebug, FormatJSON, func() {
		PageError(7, errors.New("bad page"), "offset", 24576)
	})

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if entry["msg"] != "page_decode_failed" || entry["page"] != float64(7) || entry["error"] != "bad page" {
		t.Errorf("entry = %v", entry)
	}
	if entry["offset"] != float64(24576) {
		t.Errorf("offset = %v", entry["offset"])
	}
}

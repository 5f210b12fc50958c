package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONIncludesService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: JSON, Output: &buf, Service: "bookings"})

	log.Info("Booking created", "id", "abc")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if entry[SERVICE] != "bookings" {
		t.Errorf("service = %v, want bookings", entry[SERVICE])
	}
	if entry["id"] != "abc" {
		t.Errorf("id = %v, want abc", entry["id"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		level    string
		logDebug bool
		logInfo  bool
		logWarn  bool
	}{
		{DEBUG, true, true, true},
		{INFO, false, true, true},
		{WARN, false, false, true},
		{"bogus", false, true, true},
		{EMPTY, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Level: tt.level, Format: TEXT, Output: &buf})

			log.Debug("debug-line")
			log.Info("info-line")
			log.Warn("warn-line")

			out := buf.String()
			if strings.Contains(out, "debug-line") != tt.logDebug {
				t.Errorf("debug logged = %v, want %v", !tt.logDebug, tt.logDebug)
			}
			if strings.Contains(out, "info-line") != tt.logInfo {
				t.Errorf("info logged = %v, want %v", !tt.logInfo, tt.logInfo)
			}
			if strings.Contains(out, "warn-line") != tt.logWarn {
				t.Errorf("warn logged = %v, want %v", !tt.logWarn, tt.logWarn)
			}
		})
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"DEBUG", LevelDebug},
		{"Warn", LevelWarn},
		{"", LevelInfo},
		{"trace", LevelInfo},
		{"fatal", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if got := ParseFormat("json"); got != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, want %v", got, FormatJSON)
	}
	if got := ParseFormat("JSON"); got != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %v, want %v", got, FormatJSON)
	}
	if got := ParseFormat("text"); got != FormatText {
		t.Errorf("ParseFormat(text) = %v, want %v", got, FormatText)
	}
	if got := ParseFormat("yaml"); got != FormatText {
		t.Errorf("ParseFormat(yaml) = %v, want %v", got, FormatText)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})
	logger.Info("hello", "transport", "stdio")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", entry["msg"])
	}
	if entry["transport"] != "stdio" {
		t.Errorf("transport = %v, want stdio", entry["transport"])
	}
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatText, Output: &buf})
	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Error("info entry should have been filtered")
	}
	if !strings.Contains(out, "loud") {
		t.Error("warn entry should have been written")
	}
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "proxmoxd.log")
	logger, closer, err := NewWithFile(Config{Level: LevelInfo, Format: FormatText}, path)
	if err != nil {
		t.Fatalf("NewWithFile() error = %v", err)
	}
	logger.Info("written to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("close log file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing entry: %q", string(data))
	}
}

func TestNop_DiscardsOutput(t *testing.T) {
	// Must not panic and must not write anywhere observable.
	Nop().Error("dropped", "error", "ignored")
}

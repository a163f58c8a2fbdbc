package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "screentime.log")
	l, err := New("debug", path)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("fetch failed", zap.String("page", "rankings"))
	l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", line)
	}
	if entry["msg"] != "fetch failed" || entry["page"] != "rankings" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Fatalf("missing timestamp key: %v", entry)
	}
}

func TestLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screentime.log")
	l, err := New("error", path)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Fatal("info entry written at error level")
	}
}

func TestInvalidLevel(t *testing.T) {
	if _, err := New("loud", filepath.Join(t.TempDir(), "x.log")); err == nil {
		t.Fatal("expected error")
	}
}

func TestEmptyPathIsNop(t *testing.T) {
	l, err := New("info", "")
	if err != nil {
		t.Fatal(err)
	}
	l.Info("discarded")
	if l.Core().Enabled(zap.ErrorLevel) {
		t.Fatal("nop logger should have nothing enabled")
	}
}

func TestWith(t *testing.T) {
	l := Nop().With(zap.String("page", "home"))
	if l == nil || l.Logger == nil {
		t.Fatal("With returned nil")
	}
}

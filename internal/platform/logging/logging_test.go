package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Config{Level: "debug", Dir: dir, Filename: "test.log"})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(func() { _ = logger.Close() })

	logger.Slog().Info("request sent", "method", "GET", "endpoint", "/api/User")

	name := dailyFilename("test.log", time.Now())
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "request sent") {
		t.Fatalf("expected log entry, got %q", string(data))
	}
}

func TestDailyFilename(t *testing.T) {
	day := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want string
	}{
		{"", "dashboard-2026-09-01.log"},
		{"dashboard.log", "dashboard-2026-09-01.log"},
		{"client", "client-2026-09-01.log"},
		{"api.txt", "api-2026-09-01.txt"},
	}
	for _, tt := range tests {
		if got := dailyFilename(tt.in, day); got != tt.want {
			t.Errorf("dailyFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

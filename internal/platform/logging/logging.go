package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config captures logging configuration options.
type Config struct {
	Level    string
	Dir      string
	Filename string
}

// Logger wraps slog with console plus optional file output.
type Logger struct {
	slog *slog.Logger
	file *os.File
}

// New creates a Logger. When Dir is set a date-stamped log file is opened
// in append mode alongside console output; a missing directory is created.
// Each day gets its own file, so a long-lived process rolls over on the
// next open rather than growing one file forever.
func New(cfg Config) (*Logger, error) {
	level := parseLevel(cfg.Level)

	var writers []io.Writer
	writers = append(writers, os.Stdout)

	var file *os.File
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		name := dailyFilename(cfg.Filename, time.Now())
		f, err := os.OpenFile(filepath.Join(cfg.Dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		file = f
		writers = append(writers, f)
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		slog: slog.New(handler),
		file: file,
	}, nil
}

// Slog exposes the structured logger.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Close releases the log file handle, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// dailyFilename turns "dashboard.log" into "dashboard-2026-09-01.log".
// An empty name uses the default stem.
func dailyFilename(name string, now time.Time) string {
	if name == "" {
		name = "dashboard.log"
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if ext == "" {
		ext = ".log"
	}
	return fmt.Sprintf("%s-%s%s", stem, now.Format("2006-01-02"), ext)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

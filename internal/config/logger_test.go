package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/simp-lee/logger"
)

func boolPtr(b bool) *bool { return &b }

func TestSetupLogger_NilConfig(t *testing.T) {
	if _, err := SetupLogger(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestSetupLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log, err := SetupLogger(&LogConfig{Level: tt.level, Format: "text", Color: boolPtr(false)})
			if err != nil {
				t.Fatalf("SetupLogger: %v", err)
			}
			defer log.Close()

			if !log.Enabled(context.Background(), tt.want) {
				t.Errorf("level %v should be enabled", tt.want)
			}
			if tt.want > slog.LevelDebug && log.Enabled(context.Background(), tt.want-1) {
				t.Errorf("level below %v should be disabled", tt.want)
			}
		})
	}
}

func TestSetupLogger_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := SetupLogger(&LogConfig{
		Level:           "info",
		Format:          "json",
		FilePath:        path,
		MaxSizeMB:       5,
		RetentionDays:   3,
		MaxBackups:      2,
		CompressRotated: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}
	log.Info("hello")
	if err := log.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]logger.OutputFormat{
		"text":   logger.FormatText,
		"JSON":   logger.FormatJSON,
		"custom": logger.FormatCustom,
		"":       logger.FormatCustom,
	}
	for in, want := range tests {
		if got := parseFormat(in); got != want {
			t.Errorf("parseFormat(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerOptions_Count(t *testing.T) {
	const base = 4

	tests := []struct {
		name string
		cfg  *LogConfig
		want int
	}{
		{"console only", &LogConfig{Level: "info", Format: "text"}, base},
		{"rotation ignored without file", &LogConfig{MaxSizeMB: 10, MaxBackups: 2}, base},
		{"file", &LogConfig{FilePath: "app.log"}, base + 2},
		{"file with rotation", &LogConfig{FilePath: "app.log", MaxSizeMB: 10, RetentionDays: 7, MaxBackups: 3}, base + 5},
		{"file with compression", &LogConfig{FilePath: "app.log", CompressRotated: boolPtr(false)}, base + 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(loggerOptions(tt.cfg)); got != tt.want {
				t.Errorf("options = %d, want %d", got, tt.want)
			}
		})
	}
}

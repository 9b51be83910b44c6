package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/simp-lee/logger"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

var logFormats = map[string]logger.OutputFormat{
	"text": logger.FormatText,
	"json": logger.FormatJSON,
}

// SetupLogger builds the application logger from cfg and installs it as the
// slog default. The caller must Close the returned logger.
func SetupLogger(cfg *LogConfig) (*logger.Logger, error) {
	if cfg == nil {
		return nil, errors.New("log config is nil")
	}

	log, err := logger.New(loggerOptions(cfg)...)
	if err != nil {
		return nil, err
	}
	log.SetDefault()
	return log, nil
}

// loggerOptions maps cfg onto logger options. Console output is always on;
// file output is added when a file path is set. Context attrs such as the
// request id are attached by the context middleware.
func loggerOptions(cfg *LogConfig) []logger.Option {
	format := parseFormat(cfg.Format)
	color := cfg.Color == nil || *cfg.Color

	opts := []logger.Option{
		logger.WithLevel(parseLevel(cfg.Level)),
		logger.WithMiddleware(logger.ContextMiddleware()),
		logger.WithConsoleFormat(format),
		logger.WithConsoleColor(color),
	}
	if cfg.FilePath == "" {
		return opts
	}

	opts = append(opts, logger.WithFilePath(cfg.FilePath), logger.WithFileFormat(format))
	if cfg.MaxSizeMB > 0 {
		opts = append(opts, logger.WithMaxSizeMB(cfg.MaxSizeMB))
	}
	if cfg.RetentionDays > 0 {
		opts = append(opts, logger.WithRetentionDays(cfg.RetentionDays))
	}
	if cfg.MaxBackups > 0 {
		opts = append(opts, logger.WithMaxBackups(cfg.MaxBackups))
	}
	if cfg.CompressRotated != nil {
		opts = append(opts, logger.WithCompressRotated(*cfg.CompressRotated))
	}
	return opts
}

// parseLevel returns the slog level named by s, or info when s is unknown.
func parseLevel(s string) slog.Level {
	if level, ok := logLevels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return level
	}
	return slog.LevelInfo
}

// parseFormat returns the output format named by s, or the logger's custom
// format when s is unknown.
func parseFormat(s string) logger.OutputFormat {
	if format, ok := logFormats[strings.ToLower(strings.TrimSpace(s))]; ok {
		return format
	}
	return logger.FormatCustom
}

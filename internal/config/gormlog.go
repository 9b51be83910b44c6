package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// gormLogger sends GORM output to slog with real levels and the caller's
// context, so request-scoped attrs such as request_id reach the record.
type gormLogger struct {
	logger        *slog.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// newGormLogger traces every statement when logger is enabled at debug.
// Otherwise only slow statements and errors are logged.
func newGormLogger(logger *slog.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		level = gormlogger.Info
	}
	return &gormLogger{logger: logger, level: level, slowThreshold: slowQueryThreshold}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, gormlogger.Info, slog.LevelInfo, fmt.Sprintf(msg, args...))
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, gormlogger.Warn, slog.LevelWarn, fmt.Sprintf(msg, args...))
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, gormlogger.Error, slog.LevelError, fmt.Sprintf(msg, args...))
}

func (l *gormLogger) log(ctx context.Context, need gormlogger.LogLevel, level slog.Level, msg string, attrs ...slog.Attr) {
	if l.level < need {
		return
	}
	attrs = append(attrs, slog.String("component", "gorm"))
	l.logger.LogAttrs(ctx, level, msg, attrs...)
}

// Trace logs a finished statement: failures at error, slow statements at
// warn and everything else at debug. Record-not-found is not a failure.
func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	var (
		need  gormlogger.LogLevel
		level slog.Level
		msg   string
	)
	switch {
	case failed:
		need, level, msg = gormlogger.Error, slog.LevelError, "sql error"
	case slow:
		need, level, msg = gormlogger.Warn, slog.LevelWarn, "slow sql"
	default:
		need, level, msg = gormlogger.Info, slog.LevelDebug, "sql"
	}
	if l.level < need {
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
		slog.String("source", utils.FileWithLineNum()),
	}
	if failed {
		attrs = append(attrs, slog.Any("error", err))
	}
	l.log(ctx, need, level, msg, attrs...)
}

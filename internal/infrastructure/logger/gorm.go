package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

// GormLogger adapts a zap logger to GORM's logger interface. Queries are
// traced at debug level, slow queries at warn, failures at error.
type GormLogger struct {
	log                *zap.Logger
	level              gormlogger.LogLevel
	slowThreshold      time.Duration
	skipRecordNotFound bool
}

// GormLoggerOption configures a GormLogger.
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold overrides the slow query threshold. Zero disables
// slow query detection.
func WithSlowThreshold(d time.Duration) GormLoggerOption {
	return func(l *GormLogger) { l.slowThreshold = d }
}

// WithIgnoreRecordNotFoundError controls whether gorm.ErrRecordNotFound
// is reported as an error. Lookups that legitimately miss are the common
// case, so it is skipped by default.
func WithIgnoreRecordNotFoundError(skip bool) GormLoggerOption {
	return func(l *GormLogger) { l.skipRecordNotFound = skip }
}

// NewGormLogger builds a GORM logger on top of zap.
func NewGormLogger(log *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{
		log:                log.Named("gorm"),
		level:              level,
		slowThreshold:      defaultSlowThreshold,
		skipRecordNotFound: true,
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.log.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.log.Error(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	switch {
	case err != nil && l.level >= gormlogger.Error:
		if l.skipRecordNotFound && errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		l.log.Error("SQL Error", append(fields, zap.Error(err))...)

	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		l.log.Warn(fmt.Sprintf("SLOW SQL >= %v", l.slowThreshold), fields...)

	case l.level >= gormlogger.Info:
		l.log.Debug("SQL Query", fields...)
	}
}

// MapGormLogLevel translates the application log level into GORM's scale.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

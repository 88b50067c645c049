package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	// LoggerKey holds the request-scoped logger.
	LoggerKey contextKey = "logger"
	// RequestIDKey holds the correlation ID set by the RequestID middleware.
	RequestIDKey contextKey = "request_id"
	// StoreIDKey holds the acting vendor's store ID.
	StoreIDKey contextKey = "store_id"
	// UserIDKey holds the authenticated user ID.
	UserIDKey contextKey = "user_id"
)

// WithContext attaches the logger to the context.
func WithContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, log)
}

// FromContext returns the attached logger, or a no-op logger when none
// was attached.
func FromContext(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return log
	}
	return zap.NewNop()
}

// enrich stores value under key and returns the context plus a child
// logger carrying the value as a field.
func enrich(ctx context.Context, log *zap.Logger, key contextKey, value string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, key, value)
	child := log.With(zap.String(string(key), value))
	return WithContext(ctx, child), child
}

// WithRequestID records the request ID on both context and logger.
func WithRequestID(ctx context.Context, log *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	return enrich(ctx, log, RequestIDKey, requestID)
}

// WithStoreID records the acting store ID on both context and logger.
func WithStoreID(ctx context.Context, log *zap.Logger, storeID string) (context.Context, *zap.Logger) {
	return enrich(ctx, log, StoreIDKey, storeID)
}

// WithUserID records the user ID on both context and logger.
func WithUserID(ctx context.Context, log *zap.Logger, userID string) (context.Context, *zap.Logger) {
	return enrich(ctx, log, UserIDKey, userID)
}

func stringValue(ctx context.Context, key contextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// GetRequestID returns the request ID from context, or "".
func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, RequestIDKey)
}

// GetStoreID returns the acting store ID from context, or "".
func GetStoreID(ctx context.Context) string {
	return stringValue(ctx, StoreIDKey)
}

// GetUserID returns the user ID from context, or "".
func GetUserID(ctx context.Context) string {
	return stringValue(ctx, UserIDKey)
}

// ContextLogger binds a logger to a context so every entry carries the
// request_id, store_id and user_id correlation fields found there.
type ContextLogger struct {
	ctx context.Context
	log *zap.Logger
}

// L is the usual entry point:
//
//	logger.L(ctx).Info("store created", zap.String("handle", handle))
func L(ctx context.Context) *ContextLogger {
	return &ContextLogger{ctx: ctx, log: FromContext(ctx)}
}

// WithLogger binds the given logger instead of the one stored in ctx.
func WithLogger(ctx context.Context, log *zap.Logger) *ContextLogger {
	return &ContextLogger{ctx: ctx, log: log}
}

// With returns a child ContextLogger carrying extra fields.
func (cl *ContextLogger) With(fields ...zap.Field) *ContextLogger {
	return &ContextLogger{ctx: cl.ctx, log: cl.log.With(fields...)}
}

func (cl *ContextLogger) correlated() *zap.Logger {
	log := cl.log
	if log == nil {
		log = zap.NewNop()
	}

	for _, key := range []contextKey{RequestIDKey, StoreIDKey, UserIDKey} {
		if v := stringValue(cl.ctx, key); v != "" {
			log = log.With(zap.String(string(key), v))
		}
	}
	return log
}

func (cl *ContextLogger) Debug(msg string, fields ...zap.Field) {
	cl.correlated().Debug(msg, fields...)
}

func (cl *ContextLogger) Info(msg string, fields ...zap.Field) {
	cl.correlated().Info(msg, fields...)
}

func (cl *ContextLogger) Warn(msg string, fields ...zap.Field) {
	cl.correlated().Warn(msg, fields...)
}

func (cl *ContextLogger) Error(msg string, fields ...zap.Field) {
	cl.correlated().Error(msg, fields...)
}

// Fatal logs and then exits the process.
func (cl *ContextLogger) Fatal(msg string, fields ...zap.Field) {
	cl.correlated().Fatal(msg, fields...)
}

// Zap returns the underlying zap.Logger with correlation fields applied,
// for callers that need the raw logger.
func (cl *ContextLogger) Zap() *zap.Logger {
	return cl.correlated()
}

// Sugar returns the correlated logger in sugared form.
func (cl *ContextLogger) Sugar() *zap.SugaredLogger {
	return cl.correlated().Sugar()
}

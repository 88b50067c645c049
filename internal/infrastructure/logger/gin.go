package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ginLoggerKey = "logger"

// GinMiddleware logs every request once it completes. A request-scoped
// logger carrying request_id, method and path is stored in the gin context
// under "logger" for handlers to pick up.
func GinMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		reqLog := log.With(
			zap.String("request_id", requestIDFromGin(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
		)
		c.Set(ginLoggerKey, reqLog)

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			reqLog.Error("HTTP Request", fields...)
		case status >= http.StatusBadRequest:
			reqLog.Warn("HTTP Request", fields...)
		default:
			reqLog.Info("HTTP Request", fields...)
		}
	}
}

// Recovery converts panics into a logged 500 response.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Panic recovered",
					zap.String("request_id", requestIDFromGin(c)),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", r),
					zap.Stack("stacktrace"),
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// GetGinLogger returns the request-scoped logger set by GinMiddleware,
// or a no-op logger when none is present.
func GetGinLogger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(ginLoggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}

func requestIDFromGin(c *gin.Context) string {
	v, _ := c.Get("request_id")
	id, _ := v.(string)
	return id
}

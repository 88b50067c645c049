package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CORSConfig controls which cross-origin callers may reach the API.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig returns the baseline CORS settings. The origin
// whitelist starts empty, so cross-origin requests get no CORS headers
// until origins are configured via config.toml or environment variables.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:     []string{},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Request-ID", "Accept", "Origin", "Cache-Control"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORS returns the CORS middleware with default settings.
func CORS() gin.HandlerFunc {
	return CORSWithConfig(DefaultCORSConfig())
}

// CORSWithConfig returns the CORS middleware for the given settings.
// Preflight requests are always answered with 204; allow headers are
// only attached when the Origin matches the whitelist.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	wildcard := slices.Contains(cfg.AllowOrigins, "*")

	// resolve maps a request Origin to the value for
	// Access-Control-Allow-Origin, or "" when the caller is not allowed.
	resolve := func(origin string) string {
		switch {
		case wildcard:
			return "*"
		case origin != "" && slices.Contains(cfg.AllowOrigins, origin):
			return origin
		default:
			return ""
		}
	}

	return func(c *gin.Context) {
		granted := resolve(c.Request.Header.Get("Origin"))
		if granted != "" {
			writeAllowHeaders(c.Writer.Header(), cfg, granted)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func writeAllowHeaders(h http.Header, cfg CORSConfig, origin string) {
	h.Set("Access-Control-Allow-Origin", origin)
	// Credentials must never be combined with a wildcard origin.
	if cfg.AllowCredentials && origin != "*" {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
	h.Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
	if len(cfg.ExposeHeaders) > 0 {
		h.Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
	}
	if cfg.MaxAge > 0 {
		h.Set("Access-Control-Max-Age", strconv.Itoa(int(cfg.MaxAge.Seconds())))
	}
}

// RequestID assigns every request a correlation ID, honoring one sent
// by the client so IDs survive proxy hops.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = newRequestID()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func newRequestID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// Timestamp fallback keeps IDs unique enough for log correlation.
		return time.Now().Format("20060102150405.000000000")
	}
	return hex.EncodeToString(buf)
}

// Secure attaches baseline security headers to every response.
func Secure() gin.HandlerFunc {
	headers := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	return func(c *gin.Context) {
		for k, v := range headers {
			c.Writer.Header().Set(k, v)
		}
		c.Next()
	}
}

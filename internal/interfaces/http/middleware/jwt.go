package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Keys under which validated claims are stashed in the gin context.
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTStoreIDKey = "jwt_store_id"
	JWTEmailKey   = "jwt_email"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig configures bearer-token authentication.
type JWTMiddlewareConfig struct {
	// JWTService validates tokens. Required.
	JWTService *auth.JWTService
	// SkipPaths lists exact paths served without authentication.
	SkipPaths []string
	// SkipPathPrefixes lists path prefixes served without authentication.
	SkipPathPrefixes []string
	// OnError replaces the default 401 response when set.
	OnError func(c *gin.Context, err error)
	Logger  *zap.Logger
}

// DefaultJWTConfig leaves health checks and the public storefront and
// webhook surfaces unauthenticated.
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService:       jwtService,
		SkipPaths:        []string{"/health", "/healthz"},
		SkipPathPrefixes: []string{"/store/", "/stores/", "/hooks/"},
	}
}

func (cfg JWTMiddlewareConfig) skips(path string) bool {
	for _, p := range cfg.SkipPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range cfg.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// bearerToken extracts the token from the Authorization header. The
// second result names what was wrong when extraction fails.
func bearerToken(c *gin.Context) (string, string) {
	header := c.GetHeader(AuthHeaderKey)
	switch {
	case header == "":
		return "", "Missing authorization header"
	case !strings.HasPrefix(header, BearerPrefix):
		return "", "Invalid authorization header format"
	}
	token := strings.TrimPrefix(header, BearerPrefix)
	if token == "" {
		return "", "Missing token"
	}
	return token, ""
}

// JWTAuthMiddleware authenticates requests with the default config.
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthMiddlewareWithConfig authenticates bearer tokens and exposes
// the validated claims to handlers and to the request-scoped logger.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.skips(c.Request.URL.Path) {
			c.Next()
			return
		}

		token, problem := bearerToken(c)
		if problem != "" {
			rejectUnauthorized(c, cfg, auth.ErrInvalidToken, problem)
			return
		}

		claims, err := cfg.JWTService.ValidateToken(token)
		if err != nil {
			rejectUnauthorized(c, cfg, err, "Token validation failed")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTStoreIDKey, claims.StoreID)
		c.Set(JWTEmailKey, claims.Email)

		// Tag the request context so repository and handler logs carry
		// the acting user and store.
		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, log = logger.WithUserID(ctx, log, claims.UserID)
		if claims.StoreID != "" {
			ctx, _ = logger.WithStoreID(ctx, log, claims.StoreID)
		}
		c.Request = c.Request.WithContext(ctx)

		if cfg.Logger != nil {
			cfg.Logger.Debug("JWT authentication successful",
				zap.String("user_id", claims.UserID),
				zap.String("store_id", claims.StoreID),
			)
		}

		c.Next()
	}
}

func rejectUnauthorized(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	if cfg.OnError != nil {
		cfg.OnError(c, err)
		return
	}

	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	reason := "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		reason = "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		reason = "Token is not yet valid"
	case errors.Is(err, auth.ErrInvalidToken):
		reason = "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(reason, err.Error()))
}

// GetJWTClaims returns the validated claims, or nil before authentication.
func GetJWTClaims(c *gin.Context) *auth.Claims {
	claims, _ := c.Get(JWTClaimsKey)
	typed, _ := claims.(*auth.Claims)
	return typed
}

// GetJWTUserID returns the authenticated user's ID, or "".
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTStoreID returns the session's store ID, or "".
func GetJWTStoreID(c *gin.Context) string {
	return c.GetString(JWTStoreIDKey)
}

// CurrentUserID parses the authenticated user's ID from context.
// Returns ErrUnauthorized when the request carries no valid session.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(GetJWTUserID(c))
	if err != nil {
		return uuid.Nil, shared.ErrUnauthorized
	}
	return id, nil
}

// CurrentStoreID parses the authenticated seller's store ID from context.
// Returns ErrNoStoreContext when the session is not bound to a store.
func CurrentStoreID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(GetJWTStoreID(c))
	if err != nil {
		return uuid.Nil, shared.ErrNoStoreContext
	}
	return id, nil
}

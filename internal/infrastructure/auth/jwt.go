package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/infrastructure/config"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingUserID    = errors.New("missing user_id in claims")
)

// Claims represents the vendor session claims carried by an access token.
// StoreID is empty until the user owns a store; handlers that require a
// store scope reject tokens without it.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	StoreID string `json:"store_id,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Token is a signed access token together with its expiry.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// JWTService signs and validates HS256 access tokens.
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		issuer:     cfg.Issuer,
	}
}

// GenerateTokenInput carries the session identity to encode. StoreID is
// nil for users who have not registered a store yet.
type GenerateTokenInput struct {
	UserID  uuid.UUID
	StoreID *uuid.UUID
	Email   string
}

// GenerateToken issues a signed access token for a vendor session.
func (s *JWTService) GenerateToken(input GenerateTokenInput) (*Token, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   input.UserID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: input.UserID.String(),
		Email:  input.Email,
	}
	if input.StoreID != nil {
		claims.StoreID = input.StoreID.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &Token{Value: signed, ExpiresAt: expiresAt}, nil
}

// ValidateToken parses and verifies an access token. Parse failures are
// collapsed into the package sentinel errors so callers never see
// library internals.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	keyFunc := func(*jwt.Token) (any, error) { return s.secret, nil }

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	case err != nil:
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}
	return claims, nil
}

// GetExpiration returns the configured token lifetime.
func (s *JWTService) GetExpiration() time.Duration {
	return s.expiration
}

// GetUserUUID parses the user ID from claims.
func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// GetStoreUUID parses the store ID from claims. Returns (nil, nil) when
// the token carries no store scope.
func (c *Claims) GetStoreUUID() (*uuid.UUID, error) {
	if c.StoreID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(c.StoreID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// GetExpiresAtTime returns the expiry as a time.Time, zero when unset.
func (c *Claims) GetExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// GetRemainingTTL returns the time left before expiry, floored at zero.
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(time.Until(c.ExpiresAt.Time), 0)
}

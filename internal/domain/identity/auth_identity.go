package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// ProviderEmailPass is the email/password authentication provider
const ProviderEmailPass = "emailpass"

// Password cost for bcrypt
const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthIdentity represents an authentication identity (credentials) for a vendor.
// It is created first during store registration and later bound to a User.
type AuthIdentity struct {
	shared.BaseAggregateRoot
	Provider     string
	Email        string
	PasswordHash string
	UserID       *uuid.UUID // nil until bound to a user
}

// NewEmailPassIdentity creates a new email/password identity
func NewEmailPassIdentity(email, password string) (*AuthIdentity, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &AuthIdentity{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Provider:          ProviderEmailPass,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      hash,
	}, nil
}

// BindUser attaches a user to this identity
func (a *AuthIdentity) BindUser(userID uuid.UUID) {
	a.UserID = &userID
	a.UpdatedAt = time.Now()
}

// VerifyPassword verifies the provided password against the stored hash
func (a *AuthIdentity) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email is required")
	}
	if len(email) > 200 || !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password is required")
	}
	if len(password) > 72 {
		// bcrypt only considers the first 72 bytes
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

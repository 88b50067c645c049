package identity

import (
	"strings"
	"time"

	"github.com/marketplace/backend/internal/domain/shared"
)

// User represents an application user (vendor account owner)
type User struct {
	shared.BaseAggregateRoot
	Email     string
	FirstName string
	LastName  string
	Metadata  map[string]interface{}
}

// NewUser creates a new user with the given email
func NewUser(email string) (*User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Metadata:          map[string]interface{}{},
	}, nil
}

// SetName sets the user's first and last name
func (u *User) SetName(first, last string) {
	u.FirstName = strings.TrimSpace(first)
	u.LastName = strings.TrimSpace(last)
	u.UpdatedAt = time.Now()
}

// SetMetadataValue sets a single metadata key
func (u *User) SetMetadataValue(key string, value interface{}) {
	if u.Metadata == nil {
		u.Metadata = map[string]interface{}{}
	}
	u.Metadata[key] = value
	u.UpdatedAt = time.Now()
}

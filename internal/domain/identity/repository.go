package identity

import (
	"context"

	"github.com/google/uuid"
)

// AuthIdentityRepository provides access to auth identities
type AuthIdentityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthIdentity, error)
	FindByEmail(ctx context.Context, provider, email string) (*AuthIdentity, error)
	Save(ctx context.Context, identity *AuthIdentity) error
	Update(ctx context.Context, identity *AuthIdentity) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository provides access to users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

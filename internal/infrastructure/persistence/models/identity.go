package models

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/identity"
)

// AuthIdentityModel is the persistence model for the AuthIdentity domain entity.
// The (provider, email) pair is unique among non-deleted rows via a partial
// index created in migrations.
type AuthIdentityModel struct {
	BaseModel
	Provider     string     `gorm:"type:varchar(50);not null"`
	Email        string     `gorm:"type:varchar(200);not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	UserID       *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (AuthIdentityModel) TableName() string {
	return "auth_identities"
}

// ToDomain converts the persistence model to a domain AuthIdentity entity.
func (m *AuthIdentityModel) ToDomain() *identity.AuthIdentity {
	return &identity.AuthIdentity{
		BaseAggregateRoot: aggregateRootFromBase(m.BaseModel),
		Provider:          m.Provider,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		UserID:            m.UserID,
	}
}

// FromDomain populates the persistence model from a domain AuthIdentity entity.
func (m *AuthIdentityModel) FromDomain(a *identity.AuthIdentity) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Provider = a.Provider
	m.Email = a.Email
	m.PasswordHash = a.PasswordHash
	m.UserID = a.UserID
}

// AuthIdentityModelFromDomain creates a new persistence model from a domain AuthIdentity entity.
func AuthIdentityModelFromDomain(a *identity.AuthIdentity) *AuthIdentityModel {
	m := &AuthIdentityModel{}
	m.FromDomain(a)
	return m
}

// UserModel is the persistence model for the User domain entity.
// Email is unique among non-deleted rows via a partial index.
type UserModel struct {
	BaseModel
	Email     string  `gorm:"type:varchar(200);not null"`
	FirstName string  `gorm:"type:varchar(100)"`
	LastName  string  `gorm:"type:varchar(100)"`
	Metadata  JSONMap `gorm:"type:jsonb;default:'{}'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: aggregateRootFromBase(m.BaseModel),
		Email:             m.Email,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Metadata:          m.Metadata,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Metadata = u.Metadata
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

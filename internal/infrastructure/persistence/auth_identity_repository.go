package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAuthIdentityRepository implements identity.AuthIdentityRepository using GORM
type GormAuthIdentityRepository struct {
	db *gorm.DB
}

// NewGormAuthIdentityRepository creates a new GormAuthIdentityRepository
func NewGormAuthIdentityRepository(db *gorm.DB) *GormAuthIdentityRepository {
	return &GormAuthIdentityRepository{db: db}
}

// FindByID finds an auth identity by its ID
func (r *GormAuthIdentityRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.AuthIdentity, error) {
	var model models.AuthIdentityModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds an auth identity by provider and email
func (r *GormAuthIdentityRepository) FindByEmail(ctx context.Context, provider, email string) (*identity.AuthIdentity, error) {
	var model models.AuthIdentityModel
	if err := r.db.WithContext(ctx).
		Where("provider = ? AND email = ?", provider, strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates an auth identity
func (r *GormAuthIdentityRepository) Save(ctx context.Context, authIdentity *identity.AuthIdentity) error {
	model := models.AuthIdentityModelFromDomain(authIdentity)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists changes to an existing auth identity
func (r *GormAuthIdentityRepository) Update(ctx context.Context, authIdentity *identity.AuthIdentity) error {
	model := models.AuthIdentityModelFromDomain(authIdentity)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft-deletes an auth identity
func (r *GormAuthIdentityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AuthIdentityModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

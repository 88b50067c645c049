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

var _ identity.UserRepository = (*GormUserRepository)(nil)

// GormUserRepository persists marketplace user accounts, both customers
// and vendor admins.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) findOne(ctx context.Context, conds ...any) (*identity.User, error) {
	var row models.UserModel
	err := r.db.WithContext(ctx).First(&row, conds...).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, shared.ErrNotFound
	case err != nil:
		return nil, err
	}
	return row.ToDomain(), nil
}

// FindByID loads a user by primary key.
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail loads a user by email. Emails are stored lowercased, so
// the lookup folds case the same way registration does.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	return r.findOne(ctx, "email = ?", strings.ToLower(email))
}

// Save inserts a new user. A duplicate email surfaces as
// shared.ErrAlreadyExists via the unique index.
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	row := models.UserModelFromDomain(user)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update writes the full user row back.
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Save(models.UserModelFromDomain(user)).Error
}

// Delete soft-deletes a user, reporting shared.ErrNotFound when no row
// matched.
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

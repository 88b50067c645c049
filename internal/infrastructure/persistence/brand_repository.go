package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBrandRepository implements catalog.BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// FindByID finds a brand by its ID
func (r *GormBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	var model models.BrandModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByHandle finds a brand by its handle
func (r *GormBrandRepository) FindByHandle(ctx context.Context, handle string) (*catalog.Brand, error) {
	var model models.BrandModel
	if err := r.db.WithContext(ctx).
		Where("handle = ?", handle).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds brands matching the filter and returns the unpaginated count
func (r *GormBrandRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Brand, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BrandModel{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if handle, ok := filter.Filters["handle"].(string); ok && handle != "" {
		query = query.Where("handle = ?", handle)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	orderBy := ValidateSortField(filter.OrderBy, BrandSortFields, "name")
	orderDir := "ASC"
	if filter.OrderDir != "" {
		orderDir = ValidateSortOrder(filter.OrderDir)
	}
	query = query.Order(orderBy + " " + orderDir)

	var brandModels []models.BrandModel
	if err := query.Find(&brandModels).Error; err != nil {
		return nil, 0, err
	}

	brands := make([]catalog.Brand, len(brandModels))
	for i, model := range brandModels {
		brands[i] = *model.ToDomain()
	}
	return brands, count, nil
}

// Save creates a brand. Handle collisions among non-deleted brands map to
// shared.ErrDuplicateHandle.
func (r *GormBrandRepository) Save(ctx context.Context, brand *catalog.Brand) error {
	model := models.BrandModelFromDomain(brand)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicateHandle
		}
		return err
	}
	return nil
}

// Update persists changes to an existing brand
func (r *GormBrandRepository) Update(ctx context.Context, brand *catalog.Brand) error {
	model := models.BrandModelFromDomain(brand)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicateHandle
		}
		return err
	}
	return nil
}

// Delete soft-deletes a brand
func (r *GormBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BrandModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

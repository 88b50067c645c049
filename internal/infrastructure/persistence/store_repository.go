package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/store"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStoreRepository implements store.StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByID finds a store by its ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds stores matching the filter and returns the unpaginated count
func (r *GormStoreRepository) FindAll(ctx context.Context, filter shared.Filter) ([]store.Store, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StoreModel{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if ids, ok := filter.Filters["ids"].([]uuid.UUID); ok && len(ids) > 0 {
		query = query.Where("id IN ?", ids)
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
	orderBy := ValidateSortField(filter.OrderBy, StoreSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	var storeModels []models.StoreModel
	if err := query.Find(&storeModels).Error; err != nil {
		return nil, 0, err
	}

	stores := make([]store.Store, len(storeModels))
	for i, model := range storeModels {
		stores[i] = *model.ToDomain()
	}
	return stores, count, nil
}

// Save creates a store
func (r *GormStoreRepository) Save(ctx context.Context, s *store.Store) error {
	model := models.StoreModelFromDomain(s)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing store
func (r *GormStoreRepository) Update(ctx context.Context, s *store.Store) error {
	model := models.StoreModelFromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft-deletes a store
func (r *GormStoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StoreModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormStoreAddressRepository implements store.StoreAddressRepository using GORM
type GormStoreAddressRepository struct {
	db *gorm.DB
}

// NewGormStoreAddressRepository creates a new GormStoreAddressRepository
func NewGormStoreAddressRepository(db *gorm.DB) *GormStoreAddressRepository {
	return &GormStoreAddressRepository{db: db}
}

// FindByID finds a store address by its ID
func (r *GormStoreAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.StoreAddress, error) {
	var model models.StoreAddressModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStore finds the address belonging to a store
func (r *GormStoreAddressRepository) FindByStore(ctx context.Context, storeID uuid.UUID) (*store.StoreAddress, error) {
	var model models.StoreAddressModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates a store address
func (r *GormStoreAddressRepository) Save(ctx context.Context, addr *store.StoreAddress) error {
	model := models.StoreAddressModelFromDomain(addr)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicateAddress
		}
		return err
	}
	return nil
}

// Update persists changes to an existing store address
func (r *GormStoreAddressRepository) Update(ctx context.Context, addr *store.StoreAddress) error {
	model := models.StoreAddressModelFromDomain(addr)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft-deletes a store address
func (r *GormStoreAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StoreAddressModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

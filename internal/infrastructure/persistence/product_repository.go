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

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product with its images by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_images.rank ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds products matching the filter and returns the unpaginated count.
// Brand and store constraints go through the link tables so listings respect
// soft-deleted links.
func (r *GormProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})

	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if len(filter.CollectionIDs) > 0 {
		query = query.Where("collection_id IN ?", filter.CollectionIDs)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if len(filter.BrandIDs) > 0 {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&models.ProductBrandLinkModel{}).
				Select("product_id").
				Where("brand_id IN ? AND deleted_at IS NULL", filter.BrandIDs),
		)
	}
	if filter.StoreID != nil {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&models.ProductStoreLinkModel{}).
				Select("product_id").
				Where("store_id = ? AND deleted_at IS NULL", *filter.StoreID),
		)
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
	orderBy := ValidateSortField(filter.OrderBy, ProductSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_images.rank ASC")
		})

	var productModels []models.ProductModel
	if err := query.Find(&productModels).Error; err != nil {
		return nil, 0, err
	}

	products := make([]catalog.Product, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, count, nil
}

// FindMissingThumbnail finds products that have images but no thumbnail yet
func (r *GormProductRepository) FindMissingThumbnail(ctx context.Context) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("(thumbnail IS NULL OR thumbnail = '')").
		Where(
			"id IN (?)",
			r.db.Model(&models.ProductImageModel{}).
				Select("product_id").
				Where("deleted_at IS NULL"),
		).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_images.rank ASC")
		}).
		Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// Save creates a product together with its images
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicateHandle
		}
		return err
	}
	return nil
}

// Update persists changes to an existing product and its images
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error
}

// Delete soft-deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

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

// GormProductBrandLinkRepository implements catalog.ProductBrandLinkRepository using GORM
type GormProductBrandLinkRepository struct {
	db *gorm.DB
}

// NewGormProductBrandLinkRepository creates a new GormProductBrandLinkRepository
func NewGormProductBrandLinkRepository(db *gorm.DB) *GormProductBrandLinkRepository {
	return &GormProductBrandLinkRepository{db: db}
}

// FindByProduct finds the active brand links of a product
func (r *GormProductBrandLinkRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductBrandLink, error) {
	var linkModels []models.ProductBrandLinkModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&linkModels).Error; err != nil {
		return nil, err
	}

	links := make([]catalog.ProductBrandLink, len(linkModels))
	for i, model := range linkModels {
		links[i] = model.ToDomain()
	}
	return links, nil
}

// Create links a product to a brand
func (r *GormProductBrandLinkRepository) Create(ctx context.Context, link *catalog.ProductBrandLink) error {
	model := models.ProductBrandLinkModelFromDomain(link)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicateLink
		}
		return err
	}
	return nil
}

// Remove soft-deletes the link between a product and a brand
func (r *GormProductBrandLinkRepository) Remove(ctx context.Context, productID, brandID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.ProductBrandLinkModel{}, "product_id = ? AND brand_id = ?", productID, brandID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// RemoveByProduct soft-deletes every brand link of a product. Removing
// nothing is not an error; it is the common case when tagging a product
// for the first time.
func (r *GormProductBrandLinkRepository) RemoveByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.ProductBrandLinkModel{}, "product_id = ?", productID).Error
}

// GormProductStoreLinkRepository implements catalog.ProductStoreLinkRepository using GORM
type GormProductStoreLinkRepository struct {
	db *gorm.DB
}

// NewGormProductStoreLinkRepository creates a new GormProductStoreLinkRepository
func NewGormProductStoreLinkRepository(db *gorm.DB) *GormProductStoreLinkRepository {
	return &GormProductStoreLinkRepository{db: db}
}

// FindByProduct finds the store link of a product
func (r *GormProductStoreLinkRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*catalog.ProductStoreLink, error) {
	var model models.ProductStoreLinkModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	link := model.ToDomain()
	return &link, nil
}

// FindByProducts finds the store links of multiple products
func (r *GormProductStoreLinkRepository) FindByProducts(ctx context.Context, productIDs []uuid.UUID) ([]catalog.ProductStoreLink, error) {
	if len(productIDs) == 0 {
		return []catalog.ProductStoreLink{}, nil
	}

	var linkModels []models.ProductStoreLinkModel
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&linkModels).Error; err != nil {
		return nil, err
	}

	links := make([]catalog.ProductStoreLink, len(linkModels))
	for i, model := range linkModels {
		links[i] = model.ToDomain()
	}
	return links, nil
}

// Create links a product to its owning store
func (r *GormProductStoreLinkRepository) Create(ctx context.Context, link *catalog.ProductStoreLink) error {
	model := models.ProductStoreLinkModelFromDomain(link)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicateLink
		}
		return err
	}
	return nil
}

// Remove soft-deletes the link between a product and a store
func (r *GormProductStoreLinkRepository) Remove(ctx context.Context, productID, storeID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.ProductStoreLinkModel{}, "product_id = ? AND store_id = ?", productID, storeID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// BrandRepository provides access to brands
type BrandRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)
	FindByHandle(ctx context.Context, handle string) (*Brand, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Brand, int64, error)
	Save(ctx context.Context, brand *Brand) error
	Update(ctx context.Context, brand *Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductFilter narrows product listings
type ProductFilter struct {
	Search        string
	IDs           []uuid.UUID
	CollectionIDs []uuid.UUID
	CategoryIDs   []uuid.UUID
	BrandIDs      []uuid.UUID
	StoreID       *uuid.UUID
	OrderBy       string
	OrderDir      string
	Limit         int
	Offset        int
}

// ProductRepository provides access to products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	FindMissingThumbnail(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductBrandLinkRepository maintains the product-brand association table
type ProductBrandLinkRepository interface {
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductBrandLink, error)
	Create(ctx context.Context, link *ProductBrandLink) error
	Remove(ctx context.Context, productID, brandID uuid.UUID) error
	RemoveByProduct(ctx context.Context, productID uuid.UUID) error
}

// ProductStoreLinkRepository maintains the product-store association table
type ProductStoreLinkRepository interface {
	FindByProduct(ctx context.Context, productID uuid.UUID) (*ProductStoreLink, error)
	FindByProducts(ctx context.Context, productIDs []uuid.UUID) ([]ProductStoreLink, error)
	Create(ctx context.Context, link *ProductStoreLink) error
	Remove(ctx context.Context, productID, storeID uuid.UUID) error
}

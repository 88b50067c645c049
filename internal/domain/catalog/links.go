package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ProductBrandLink joins a product to a brand. Application logic keeps at
// most one active link per product (last write wins); the database only
// enforces uniqueness of the pair among non-deleted rows.
type ProductBrandLink struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	BrandID   uuid.UUID
	CreatedAt time.Time
}

// ProductStoreLink joins a product to its owning store
type ProductStoreLink struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	StoreID   uuid.UUID
	CreatedAt time.Time
}

// NewProductBrandLink creates a product-brand link
func NewProductBrandLink(productID, brandID uuid.UUID) *ProductBrandLink {
	return &ProductBrandLink{
		ID:        uuid.New(),
		ProductID: productID,
		BrandID:   brandID,
		CreatedAt: time.Now(),
	}
}

// NewProductStoreLink creates a product-store link
func NewProductStoreLink(productID, storeID uuid.UUID) *ProductStoreLink {
	return &ProductStoreLink{
		ID:        uuid.New(),
		ProductID: productID,
		StoreID:   storeID,
		CreatedAt: time.Now(),
	}
}

package dto

import "github.com/marketplace/backend/internal/domain/store"

// RegisterStoreRequest is the body of the seller registration endpoint
type RegisterStoreRequest struct {
	Email            string              `json:"email" binding:"required,email"`
	Password         string              `json:"password" binding:"required,min=8"`
	FirstName        string              `json:"first_name"`
	LastName         string              `json:"last_name"`
	StoreName        string              `json:"store_name" binding:"required"`
	RegistrationCode string              `json:"registration_code"`
	Address          *store.AddressInput `json:"address"`
}

// CreateBrandRequest is the body for brand creation
type CreateBrandRequest struct {
	Name        string `json:"name" binding:"required"`
	Handle      string `json:"handle"`
	LogoURL     string `json:"logo_url"`
	Description string `json:"description"`
}

// UpdateBrandRequest carries partial brand updates; nil fields are untouched
type UpdateBrandRequest struct {
	Name        *string `json:"name"`
	Handle      *string `json:"handle"`
	LogoURL     *string `json:"logo_url"`
	Description *string `json:"description"`
}

// CreateProductRequest is the body for product creation
type CreateProductRequest struct {
	Title        string   `json:"title" binding:"required"`
	Handle       string   `json:"handle"`
	Description  string   `json:"description"`
	Thumbnail    string   `json:"thumbnail"`
	Images       []string `json:"images"`
	CollectionID string   `json:"collection_id"`
	CategoryID   string   `json:"category_id"`
}

// SetProductBrandRequest assigns a brand to a product
type SetProductBrandRequest struct {
	BrandID string `json:"brand_id" binding:"required,uuid"`
}

// SetStoreLogoRequest sets the authenticated seller's store logo
type SetStoreLogoRequest struct {
	LogoURL string `json:"logo_url" binding:"required,url"`
}

// OrderPlacedHookRequest is the body of the order placed webhook
type OrderPlacedHookRequest struct {
	OrderID string `json:"order_id" binding:"required,uuid"`
}

package dto

import (
	"time"

	appcatalog "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/store"
)

// UserResource is the public shape of a user
type UserResource struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// NewUserResource converts a domain user
func NewUserResource(u *identity.User) UserResource {
	return UserResource{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// StoreResource is the public shape of a store
type StoreResource struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewStoreResource converts a domain store
func NewStoreResource(s *store.Store) StoreResource {
	return StoreResource{
		ID:        s.ID.String(),
		Name:      s.Name,
		Metadata:  s.Metadata,
		CreatedAt: s.CreatedAt,
	}
}

// StoreAddressResource is the public shape of a store address
type StoreAddressResource struct {
	ID          string `json:"id"`
	StoreID     string `json:"store_id"`
	Address1    string `json:"address_1"`
	Address2    string `json:"address_2,omitempty"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Province    string `json:"province,omitempty"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone,omitempty"`
}

// NewStoreAddressResource converts a domain store address
func NewStoreAddressResource(a *store.StoreAddress) StoreAddressResource {
	return StoreAddressResource{
		ID:          a.ID.String(),
		StoreID:     a.StoreID.String(),
		Address1:    a.Address1,
		Address2:    a.Address2,
		City:        a.City,
		PostalCode:  a.PostalCode,
		Province:    a.Province,
		CountryCode: a.CountryCode,
		Phone:       a.Phone,
	}
}

// BrandResource is the public shape of a brand
type BrandResource struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Handle      string    `json:"handle"`
	LogoURL     string    `json:"logo_url,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewBrandResource converts a domain brand
func NewBrandResource(b *catalog.Brand) BrandResource {
	return BrandResource{
		ID:          b.ID.String(),
		Name:        b.Name,
		Handle:      b.Handle,
		LogoURL:     b.LogoURL,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
	}
}

// NewBrandResources converts a slice of domain brands
func NewBrandResources(brands []catalog.Brand) []BrandResource {
	out := make([]BrandResource, len(brands))
	for i := range brands {
		out[i] = NewBrandResource(&brands[i])
	}
	return out
}

// ProductImageResource is an ordered product image
type ProductImageResource struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Rank int    `json:"rank"`
}

// ProductResource is the public shape of a product, with its owning store
// joined in when one is linked.
type ProductResource struct {
	ID           string                 `json:"id"`
	Title        string                 `json:"title"`
	Handle       string                 `json:"handle"`
	Description  string                 `json:"description,omitempty"`
	Thumbnail    string                 `json:"thumbnail,omitempty"`
	Status       string                 `json:"status"`
	CollectionID *string                `json:"collection_id,omitempty"`
	CategoryID   *string                `json:"category_id,omitempty"`
	Images       []ProductImageResource `json:"images"`
	Store        *ProductStoreResource  `json:"store,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// ProductStoreResource is the store summary embedded in product listings
type ProductStoreResource struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Metadata map[string]interface{} `json:"metadata"`
}

// NewProductResource converts a domain product
func NewProductResource(p *catalog.Product) ProductResource {
	images := make([]ProductImageResource, len(p.Images))
	for i, img := range p.Images {
		images[i] = ProductImageResource{
			ID:   img.ID.String(),
			URL:  img.URL,
			Rank: img.Rank,
		}
	}

	r := ProductResource{
		ID:          p.ID.String(),
		Title:       p.Title,
		Handle:      p.Handle,
		Description: p.Description,
		Thumbnail:   p.Thumbnail,
		Status:      string(p.Status),
		Images:      images,
		CreatedAt:   p.CreatedAt,
	}
	if p.CollectionID != nil {
		id := p.CollectionID.String()
		r.CollectionID = &id
	}
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		r.CategoryID = &id
	}
	return r
}

// NewProductListingResources converts product listings, embedding each
// product's owning store.
func NewProductListingResources(listings []appcatalog.ProductListing) []ProductResource {
	out := make([]ProductResource, len(listings))
	for i := range listings {
		out[i] = NewProductResource(&listings[i].Product)
		if listings[i].Store != nil {
			out[i].Store = &ProductStoreResource{
				ID:       listings[i].Store.ID.String(),
				Name:     listings[i].Store.Name,
				Metadata: listings[i].Store.Metadata,
			}
		}
	}
	return out
}

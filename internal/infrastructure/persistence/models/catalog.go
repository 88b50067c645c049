package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// BrandModel is the persistence model for the Brand domain entity.
// handle is unique among non-deleted rows via a partial index.
type BrandModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null"`
	Handle      string `gorm:"type:varchar(200);not null"`
	LogoURL     string `gorm:"type:varchar(500)"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BrandModel) TableName() string {
	return "brands"
}

// ToDomain converts the persistence model to a domain Brand entity.
func (m *BrandModel) ToDomain() *catalog.Brand {
	return &catalog.Brand{
		BaseAggregateRoot: aggregateRootFromBase(m.BaseModel),
		Name:              m.Name,
		Handle:            m.Handle,
		LogoURL:           m.LogoURL,
		Description:       m.Description,
	}
}

// FromDomain populates the persistence model from a domain Brand entity.
func (m *BrandModel) FromDomain(b *catalog.Brand) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.Name = b.Name
	m.Handle = b.Handle
	m.LogoURL = b.LogoURL
	m.Description = b.Description
}

// BrandModelFromDomain creates a new persistence model from a domain Brand entity.
func BrandModelFromDomain(b *catalog.Brand) *BrandModel {
	m := &BrandModel{}
	m.FromDomain(b)
	return m
}

// ProductModel is the persistence model for the Product domain entity.
// handle is unique among non-deleted rows via a partial index.
type ProductModel struct {
	BaseModel
	Title        string                `gorm:"type:varchar(255);not null"`
	Handle       string                `gorm:"type:varchar(255);not null"`
	Description  string                `gorm:"type:text"`
	Thumbnail    string                `gorm:"type:varchar(500)"`
	Status       catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	CollectionID *uuid.UUID            `gorm:"type:uuid;index"`
	CategoryID   *uuid.UUID            `gorm:"type:uuid;index"`
	Images       []ProductImageModel   `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	images := make([]catalog.ProductImage, len(m.Images))
	for i, img := range m.Images {
		images[i] = img.ToDomain()
	}
	return &catalog.Product{
		BaseAggregateRoot: aggregateRootFromBase(m.BaseModel),
		Title:             m.Title,
		Handle:            m.Handle,
		Description:       m.Description,
		Thumbnail:         m.Thumbnail,
		Status:            m.Status,
		CollectionID:      m.CollectionID,
		CategoryID:        m.CategoryID,
		Images:            images,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Title = p.Title
	m.Handle = p.Handle
	m.Description = p.Description
	m.Thumbnail = p.Thumbnail
	m.Status = p.Status
	m.CollectionID = p.CollectionID
	m.CategoryID = p.CategoryID
	m.Images = make([]ProductImageModel, len(p.Images))
	for i, img := range p.Images {
		m.Images[i] = ProductImageModelFromDomain(img)
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductImageModel is the persistence model for product images.
type ProductImageModel struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:varchar(500);not null"`
	Rank      int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductImageModel) TableName() string {
	return "product_images"
}

// ToDomain converts the persistence model to a domain ProductImage.
func (m *ProductImageModel) ToDomain() catalog.ProductImage {
	return catalog.ProductImage{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		URL:        m.URL,
		Rank:       m.Rank,
	}
}

// ProductImageModelFromDomain creates a persistence model from a domain ProductImage.
func ProductImageModelFromDomain(img catalog.ProductImage) ProductImageModel {
	m := ProductImageModel{
		ProductID: img.ProductID,
		URL:       img.URL,
		Rank:      img.Rank,
	}
	m.FromDomainBaseEntity(img.BaseEntity)
	return m
}

// ProductBrandLinkModel joins products to brands.
// The (product_id, brand_id) pair is unique among non-deleted rows.
type ProductBrandLinkModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	BrandID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	DeletedAt gorm.DeletedAt
}

// TableName returns the table name for GORM
func (ProductBrandLinkModel) TableName() string {
	return "product_brand_links"
}

// ToDomain converts the persistence model to a domain ProductBrandLink.
func (m *ProductBrandLinkModel) ToDomain() catalog.ProductBrandLink {
	return catalog.ProductBrandLink{
		ID:        m.ID,
		ProductID: m.ProductID,
		BrandID:   m.BrandID,
		CreatedAt: m.CreatedAt,
	}
}

// ProductBrandLinkModelFromDomain creates a persistence model from a domain link.
func ProductBrandLinkModelFromDomain(l *catalog.ProductBrandLink) *ProductBrandLinkModel {
	return &ProductBrandLinkModel{
		ID:        l.ID,
		ProductID: l.ProductID,
		BrandID:   l.BrandID,
		CreatedAt: l.CreatedAt,
	}
}

// ProductStoreLinkModel joins products to their owning store.
// product_id is unique among non-deleted rows.
type ProductStoreLinkModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	DeletedAt gorm.DeletedAt
}

// TableName returns the table name for GORM
func (ProductStoreLinkModel) TableName() string {
	return "product_store_links"
}

// ToDomain converts the persistence model to a domain ProductStoreLink.
func (m *ProductStoreLinkModel) ToDomain() catalog.ProductStoreLink {
	return catalog.ProductStoreLink{
		ID:        m.ID,
		ProductID: m.ProductID,
		StoreID:   m.StoreID,
		CreatedAt: m.CreatedAt,
	}
}

// ProductStoreLinkModelFromDomain creates a persistence model from a domain link.
func ProductStoreLinkModelFromDomain(l *catalog.ProductStoreLink) *ProductStoreLinkModel {
	return &ProductStoreLinkModel{
		ID:        l.ID,
		ProductID: l.ProductID,
		StoreID:   l.StoreID,
		CreatedAt: l.CreatedAt,
	}
}
